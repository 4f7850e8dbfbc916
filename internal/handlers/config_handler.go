package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArowuTest/category-proxy/internal/services"
	"github.com/gin-gonic/gin"
)

// ConfigHandler serves category configuration records
type ConfigHandler struct {
	configs services.ConfigService
	logger  *slog.Logger
}

// NewConfigHandler creates a new ConfigHandler
func NewConfigHandler(configs services.ConfigService, logger *slog.Logger) *ConfigHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigHandler{configs: configs, logger: logger}
}

// GetConfig handles GET /config?category=<name>
func (h *ConfigHandler) GetConfig(c *gin.Context) {
	record, err := h.configs.GetConfig(c.Request.Context(), c.Query("category"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"config": record})
}
