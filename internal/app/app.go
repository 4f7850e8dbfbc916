// Package app wires configuration into repositories and services.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/ArowuTest/category-proxy/internal/catalog"
	"github.com/ArowuTest/category-proxy/internal/config"
	"github.com/ArowuTest/category-proxy/internal/repositories"
	"github.com/ArowuTest/category-proxy/internal/repositories/memory"
	mongorepo "github.com/ArowuTest/category-proxy/internal/repositories/mongodb"
	"github.com/ArowuTest/category-proxy/internal/services"
	"github.com/ArowuTest/category-proxy/pkg/mongodb"
)

// App holds the process-wide dependencies.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Fallback  *catalog.Table
	Resolver  *services.CategoryResolver
	Documents *services.DocumentServiceImpl
	Admin     *services.AdminServiceImpl
	Configs   *services.ConfigServiceImpl

	mongo *mongodb.Client
}

// NewLogger builds the JSON slog logger used by every command.
func NewLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// New builds repositories for the configured storage driver and the
// services on top of them. MongoDB connects lazily on first use.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	var (
		configRepo   repositories.ConfigRepository
		categoryRepo repositories.CategoryRepository
		documentRepo repositories.DocumentRepository
		client       *mongodb.Client
	)

	switch cfg.Storage.Driver {
	case config.DriverMongoDB:
		client = mongodb.NewClient(cfg.MongoDB.URI, cfg.MongoDB.Database, cfg.MongoDB.ConnectTimeout)
		if !client.Configured() {
			logger.Warn("MONGODB_URI not set; only bundled categories will resolve and store calls will fail")
		}
		configRepo = mongorepo.NewConfigRepository(client)
		categoryRepo = mongorepo.NewCategoryRepository(client)
		documentRepo = mongorepo.NewDocumentRepository(client)
	case config.DriverMemory:
		logger.Warn("using in-memory storage; data is lost on exit")
		configRepo = memory.NewConfigRepository()
		categoryRepo = memory.NewCategoryRepository()
		documentRepo = memory.NewDocumentRepository()
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	fallback := catalog.Default()
	resolver := services.NewCategoryResolver(categoryRepo, fallback, logger)

	return &App{
		Config:    cfg,
		Logger:    logger,
		Fallback:  fallback,
		Resolver:  resolver,
		Documents: services.NewDocumentService(resolver, documentRepo, logger),
		Admin:     services.NewAdminService(configRepo, categoryRepo, logger),
		Configs:   services.NewConfigService(configRepo, fallback, logger),
		mongo:     client,
	}, nil
}

// Close releases the database connection, if one was opened.
func (a *App) Close(ctx context.Context) error {
	if a.mongo == nil {
		return nil
	}
	return a.mongo.Disconnect(ctx)
}
