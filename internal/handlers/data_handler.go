package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ArowuTest/category-proxy/internal/services"
	"github.com/gin-gonic/gin"
)

// CategoryHeader may carry the category when it is not in the query string.
const CategoryHeader = "X-Category"

// DataHandler serves generic per-category documents.
type DataHandler struct {
	documents services.DocumentService
	logger    *slog.Logger
}

// NewDataHandler creates a new DataHandler
func NewDataHandler(documents services.DocumentService, logger *slog.Logger) *DataHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &DataHandler{documents: documents, logger: logger}
}

func categoryFrom(c *gin.Context) string {
	if category := c.Query("category"); category != "" {
		return category
	}
	return c.GetHeader(CategoryHeader)
}

// List handles GET /data?category=<name>[&limit=<n>]
func (h *DataHandler) List(c *gin.Context) {
	category := categoryFrom(c)
	if category == "" {
		respondError(c, h.logger, services.ErrCategoryRequired)
		return
	}

	items, err := h.documents.List(c.Request.Context(), category, services.ParseLimit(c.Query("limit")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create handles POST /data
func (h *DataHandler) Create(c *gin.Context) {
	category := categoryFrom(c)
	if category == "" {
		respondError(c, h.logger, services.ErrCategoryRequired)
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		respondError(c, h.logger, services.Validation("could not read request body"))
		return
	}
	var body map[string]interface{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			respondError(c, h.logger, services.Validation("request body must be a JSON object"))
			return
		}
	}

	id, err := h.documents.Create(c.Request.Context(), category, body)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"insertedId": id})
}
