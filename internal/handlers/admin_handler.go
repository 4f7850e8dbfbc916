package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles administrative configuration writes
type AdminHandler struct {
	admin  services.AdminService
	logger *slog.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admin services.AdminService, logger *slog.Logger) *AdminHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminHandler{admin: admin, logger: logger}
}

// UpsertConfig handles POST /admin/config
func (h *AdminHandler) UpsertConfig(c *gin.Context) {
	var req models.UpsertConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("malformed admin config body", "error", err)
		respondError(c, h.logger, services.Validation("category, collection, fields[] required"))
		return
	}

	record, err := h.admin.UpsertConfig(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "config": record})
}
