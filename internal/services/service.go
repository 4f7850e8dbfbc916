package services

import (
	"context"

	"github.com/ArowuTest/category-proxy/internal/models"
)

// Resolver maps a category to its descriptor.
type Resolver interface {
	Resolve(ctx context.Context, category string) (models.Descriptor, error)
}

// DocumentService lists and creates generic documents for a category.
type DocumentService interface {
	List(ctx context.Context, category string, limit int) ([]models.Document, error)
	Create(ctx context.Context, category string, body map[string]interface{}) (string, error)
}

// AdminService writes category configuration.
type AdminService interface {
	UpsertConfig(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigRecord, error)
}

// ConfigService reads category configuration.
type ConfigService interface {
	GetConfig(ctx context.Context, category string) (*models.ConfigRecord, error)
}
