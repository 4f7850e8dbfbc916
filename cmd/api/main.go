package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ArowuTest/category-proxy/api/routes"
	"github.com/ArowuTest/category-proxy/internal/app"
	"github.com/ArowuTest/category-proxy/internal/auth"
	"github.com/ArowuTest/category-proxy/internal/config"
	"github.com/ArowuTest/category-proxy/internal/handlers"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := app.NewLogger(cfg)
	gin.SetMode(cfg.Server.Mode)

	a, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		if err := a.Close(context.Background()); err != nil {
			logger.Error("error disconnecting from MongoDB", "error", err)
		}
	}()

	if cfg.Admin.Token == "" && cfg.Admin.TokenHash == "" && cfg.JWT.Secret == "" {
		logger.Warn("no admin credential configured; admin endpoint will reject every request")
	}

	router := routes.SetupRouter(routes.HandlerDependencies{
		DataHandler:   handlers.NewDataHandler(a.Documents, logger),
		AdminHandler:  handlers.NewAdminHandler(a.Admin, logger),
		ConfigHandler: handlers.NewConfigHandler(a.Configs, logger),
		Verifier:      auth.NewVerifier(cfg.Admin.Token, cfg.Admin.TokenHash, cfg.JWT.Secret),
	}, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	logger.Info("server starting", "port", cfg.Server.Port, "storage", cfg.Storage.Driver)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exiting")
}
