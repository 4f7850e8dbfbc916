package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ArowuTest/category-proxy/internal/middleware"
	"github.com/ArowuTest/category-proxy/internal/services"
	"github.com/gin-gonic/gin"
)

// StatusFor maps a service error kind to its HTTP status.
func StatusFor(kind services.Kind) int {
	switch kind {
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindAuth:
		return http.StatusUnauthorized
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes {"error": message} with the status for err. Store
// failures are logged before their message is passed through.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	kind := services.KindOf(err)
	status := StatusFor(kind)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "path", c.Request.URL.Path, "error", err, "request_id", c.GetString(middleware.RequestIDKey))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, gin.H{"error": services.Message(err)})
}

// MethodNotAllowed handles requests for a known path with an unsupported method.
func MethodNotAllowed(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusMethodNotAllowed, gin.H{"error": services.ErrMethodNotAllowed.Message})
}
