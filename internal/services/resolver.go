package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ArowuTest/category-proxy/internal/catalog"
	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
)

var _ Resolver = (*CategoryResolver)(nil)

// CategoryResolver looks a category up in the metadata store first and falls
// back to the bundled table. Store failures are logged, never returned; the
// fallback is never written back.
type CategoryResolver struct {
	categories repositories.CategoryRepository
	fallback   *catalog.Table
	logger     *slog.Logger
}

// NewCategoryResolver creates a resolver. A nil fallback behaves as an empty table.
func NewCategoryResolver(categories repositories.CategoryRepository, fallback *catalog.Table, logger *slog.Logger) *CategoryResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &CategoryResolver{
		categories: categories,
		fallback:   fallback,
		logger:     logger,
	}
}

// Resolve returns the descriptor for category or ErrCategoryNotFound.
func (r *CategoryResolver) Resolve(ctx context.Context, category string) (models.Descriptor, error) {
	if category == "" {
		return models.Descriptor{}, ErrCategoryRequired
	}

	meta, err := r.categories.FindByCategory(ctx, category)
	switch {
	case err == nil:
		d := meta.Descriptor()
		if d.Valid() {
			return d, nil
		}
		r.logger.Warn("ignoring malformed _categories entry", "category", category)
	case errors.Is(err, repositories.ErrNotFound):
	default:
		r.logger.Warn("error reading _categories, using bundled table", "category", category, "error", err)
	}

	if r.fallback != nil {
		if d, ok := r.fallback.Lookup(category); ok {
			return d, nil
		}
	}
	return models.Descriptor{}, ErrCategoryNotFound
}
