package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
)

// ErrNotFound is returned when a lookup by key matches no record.
var ErrNotFound = errors.New("record not found")

// ConfigRepository stores administrative configuration records, one per category.
type ConfigRepository interface {
	FindByCategory(ctx context.Context, category string) (*models.ConfigRecord, error)
	// UpsertByCategory writes the record keyed by category and returns the
	// stored version. CreatedAt is only assigned on insert.
	UpsertByCategory(ctx context.Context, record *models.ConfigRecord, now time.Time) (*models.ConfigRecord, error)
}

// CategoryRepository is the resolver's primary metadata source.
type CategoryRepository interface {
	FindByCategory(ctx context.Context, category string) (*models.CategoryMeta, error)
	UpsertByCategory(ctx context.Context, meta *models.CategoryMeta) error
}

// DocumentRepository reads and writes generic documents in any collection.
type DocumentRepository interface {
	FindRecent(ctx context.Context, collection string, limit int64) ([]models.Document, error)
	Insert(ctx context.Context, collection string, doc models.Document) (string, error)
}
