package services

import (
	"context"
	"testing"
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
	"github.com/ArowuTest/category-proxy/internal/repositories/memory"
	"github.com/ArowuTest/category-proxy/pkg/mongodb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unconfiguredConfigs struct{}

func (unconfiguredConfigs) FindByCategory(context.Context, string) (*models.ConfigRecord, error) {
	return nil, mongodb.ErrNotConfigured
}

func (unconfiguredConfigs) UpsertByCategory(context.Context, *models.ConfigRecord, time.Time) (*models.ConfigRecord, error) {
	return nil, mongodb.ErrNotConfigured
}

var _ repositories.ConfigRepository = unconfiguredConfigs{}

func TestGetConfigFromStore(t *testing.T) {
	ctx := context.Background()
	configs := memory.NewConfigRepository()
	_, err := configs.UpsertByCategory(ctx, &models.ConfigRecord{
		Category:   "reviews",
		Collection: "reviews_db",
		Fields:     []models.FieldDefinition{{Name: "rating"}},
	}, time.Now())
	require.NoError(t, err)

	svc := NewConfigService(configs, testTable(t), quietLogger())
	rec, err := svc.GetConfig(ctx, "reviews")
	require.NoError(t, err)
	assert.Equal(t, "reviews_db", rec.Collection)
}

func TestGetConfigFallback(t *testing.T) {
	tests := []struct {
		name    string
		configs repositories.ConfigRepository
	}{
		{"absent", memory.NewConfigRepository()},
		{"not configured", unconfiguredConfigs{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewConfigService(tt.configs, testTable(t), quietLogger())
			rec, err := svc.GetConfig(context.Background(), "faq")
			require.NoError(t, err)
			assert.Equal(t, "faq", rec.Category)
			assert.Equal(t, "faq", rec.Collection)

			_, err = svc.GetConfig(context.Background(), "ghost")
			assert.ErrorIs(t, err, ErrConfigNotFound)
		})
	}
}

func TestGetConfigStoreError(t *testing.T) {
	svc := NewConfigService(failingConfigs{}, testTable(t), quietLogger())
	_, err := svc.GetConfig(context.Background(), "faq")
	require.Error(t, err)
	assert.Equal(t, KindStore, KindOf(err))
}

func TestGetConfigRequiresCategory(t *testing.T) {
	svc := NewConfigService(memory.NewConfigRepository(), nil, quietLogger())
	_, err := svc.GetConfig(context.Background(), "")
	assert.ErrorIs(t, err, ErrCategoryRequired)
}
