package routes

import (
	"log/slog"
	"net/http"

	"github.com/ArowuTest/category-proxy/internal/auth"
	"github.com/ArowuTest/category-proxy/internal/handlers"
	"github.com/ArowuTest/category-proxy/internal/middleware"
	"github.com/gin-gonic/gin"
)

// HandlerDependencies groups everything the router wires to endpoints
type HandlerDependencies struct {
	DataHandler   *handlers.DataHandler
	AdminHandler  *handlers.AdminHandler
	ConfigHandler *handlers.ConfigHandler
	Verifier      *auth.Verifier
}

var routedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
}

var (
	dataCORS = middleware.CORSPolicy{
		AllowHeaders: []string{"Content-Type", handlers.CategoryHeader},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
	}
	adminCORS = middleware.CORSPolicy{
		AllowHeaders: []string{"Content-Type", middleware.AdminTokenHeader, "Authorization"},
		AllowMethods: []string{"POST", "OPTIONS"},
	}
	readCORS = middleware.CORSPolicy{
		AllowHeaders: []string{"Content-Type"},
		AllowMethods: []string{"GET", "OPTIONS"},
	}
)

// SetupRouter sets up the router
func SetupRouter(deps HandlerDependencies, logger *slog.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware(logger))
	router.HandleMethodNotAllowed = true
	router.NoMethod(handlers.MethodNotAllowed)

	v1 := router.Group("/api/v1")

	health := v1.Group("/health", middleware.CORSMiddleware(readCORS))
	endpoint(health, map[string]gin.HandlerFunc{
		http.MethodGet: func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		},
	})

	data := v1.Group("/data", middleware.CORSMiddleware(dataCORS))
	endpoint(data, map[string]gin.HandlerFunc{
		http.MethodGet:  deps.DataHandler.List,
		http.MethodPost: deps.DataHandler.Create,
	})

	config := v1.Group("/config", middleware.CORSMiddleware(readCORS))
	endpoint(config, map[string]gin.HandlerFunc{
		http.MethodGet: deps.ConfigHandler.GetConfig,
	})

	// Credentials are checked before the method, so unauthenticated callers
	// get 401 whatever they send. Pre-flight is answered by CORS first.
	admin := v1.Group("/admin/config",
		middleware.CORSMiddleware(adminCORS),
		middleware.AdminAuthMiddleware(deps.Verifier, logger),
	)
	endpoint(admin, map[string]gin.HandlerFunc{
		http.MethodPost: deps.AdminHandler.UpsertConfig,
	})

	return router
}

// endpoint registers the given method handlers on the group root, an OPTIONS
// route so the group's CORS middleware sees pre-flight requests, and 405 for
// every other method.
func endpoint(g *gin.RouterGroup, byMethod map[string]gin.HandlerFunc) {
	g.OPTIONS("", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for _, method := range routedMethods {
		if h, ok := byMethod[method]; ok {
			g.Handle(method, "", h)
			continue
		}
		g.Handle(method, "", handlers.MethodNotAllowed)
	}
}
