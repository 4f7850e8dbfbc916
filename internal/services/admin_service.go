package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
)

var _ AdminService = (*AdminServiceImpl)(nil)

const upsertRequiredMsg = "category, collection, fields[] required"

// AdminServiceImpl writes category configuration to the configs collection
// and mirrors the lookup entry into _categories. The two writes are
// sequential with no rollback: if the second fails the first stays applied.
type AdminServiceImpl struct {
	configs    repositories.ConfigRepository
	categories repositories.CategoryRepository
	logger     *slog.Logger
	now        func() time.Time
}

// NewAdminService creates a new AdminServiceImpl
func NewAdminService(configs repositories.ConfigRepository, categories repositories.CategoryRepository, logger *slog.Logger) *AdminServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminServiceImpl{
		configs:    configs,
		categories: categories,
		logger:     logger,
		now:        time.Now,
	}
}

// ValidateUpsert checks that the request names a category, a collection and
// carries a field list.
func ValidateUpsert(req *models.UpsertConfigRequest) error {
	if req == nil ||
		strings.TrimSpace(req.Category) == "" ||
		strings.TrimSpace(req.Collection) == "" ||
		req.Fields == nil {
		return Validation(upsertRequiredMsg)
	}
	return nil
}

// UpsertConfig stores the configuration for req.Category and returns the
// stored record.
func (s *AdminServiceImpl) UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigRecord, error) {
	if err := ValidateUpsert(req); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	stored, err := s.configs.UpsertByCategory(ctx, &models.ConfigRecord{
		Category:   req.Category,
		Collection: req.Collection,
		Fields:     req.Fields,
		Extra:      req.Extra,
	}, now)
	if err != nil {
		s.logger.Error("failed to upsert config", "category", req.Category, "error", err)
		return nil, StoreFailure(err)
	}

	err = s.categories.UpsertByCategory(ctx, &models.CategoryMeta{
		Category:   req.Category,
		Collection: req.Collection,
		Fields:     req.Fields,
	})
	if err != nil {
		s.logger.Error("config stored but _categories update failed", "category", req.Category, "error", err)
		return nil, StoreFailure(err)
	}

	s.logger.Info("category config upserted", "category", req.Category, "collection", req.Collection, "fields", len(req.Fields))
	return stored, nil
}
