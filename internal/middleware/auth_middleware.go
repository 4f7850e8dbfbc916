package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/ArowuTest/category-proxy/internal/auth"
	"github.com/ArowuTest/category-proxy/internal/services"
	"github.com/gin-gonic/gin"
)

// AdminTokenHeader carries the shared admin secret.
const AdminTokenHeader = "X-Admin-Token"

// AdminAuthMiddleware admits requests carrying the shared admin secret in
// X-Admin-Token or an admin bearer token in Authorization.
func AdminAuthMiddleware(verifier *auth.Verifier, logger *slog.Logger) gin.HandlerFunc {
	const BearerSchema = "Bearer "

	return func(c *gin.Context) {
		if verifier.CheckToken(c.GetHeader(AdminTokenHeader)) {
			c.Set("adminSubject", "token")
			c.Next()
			return
		}

		if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, BearerSchema) {
			sub, err := verifier.CheckBearer(authHeader[len(BearerSchema):])
			if err == nil {
				c.Set("adminSubject", sub)
				c.Next()
				return
			}
			logger.Warn("admin bearer token rejected", "error", err, "request_id", c.GetString(RequestIDKey))
		}

		_ = c.Error(services.ErrUnauthorized)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": services.ErrUnauthorized.Message})
	}
}
