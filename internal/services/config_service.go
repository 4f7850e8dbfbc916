package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ArowuTest/category-proxy/internal/catalog"
	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
	"github.com/ArowuTest/category-proxy/pkg/mongodb"
)

var _ ConfigService = (*ConfigServiceImpl)(nil)

// ConfigServiceImpl serves configuration records, preferring the configs
// collection and falling back to the bundled table.
type ConfigServiceImpl struct {
	configs  repositories.ConfigRepository
	fallback *catalog.Table
	logger   *slog.Logger
}

// NewConfigService creates a new ConfigServiceImpl
func NewConfigService(configs repositories.ConfigRepository, fallback *catalog.Table, logger *slog.Logger) *ConfigServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigServiceImpl{
		configs:  configs,
		fallback: fallback,
		logger:   logger,
	}
}

// GetConfig returns the configuration record for category. A store that is
// not configured at all is treated like an empty one; any other store error
// is returned.
func (s *ConfigServiceImpl) GetConfig(ctx context.Context, category string) (*models.ConfigRecord, error) {
	if category == "" {
		return nil, ErrCategoryRequired
	}

	rec, err := s.configs.FindByCategory(ctx, category)
	switch {
	case err == nil:
		return rec, nil
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, mongodb.ErrNotConfigured):
	default:
		s.logger.Error("failed to read config", "category", category, "error", err)
		return nil, StoreFailure(err)
	}

	if s.fallback != nil {
		if local, ok := s.fallback.Record(category); ok {
			return &local, nil
		}
	}
	return nil, ErrConfigNotFound
}
