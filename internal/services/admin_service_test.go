package services

import (
	"context"
	"testing"
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewsRequest() *models.UpsertConfigRequest {
	return &models.UpsertConfigRequest{
		Category:   "reviews",
		Collection: "reviews",
		Fields: []models.FieldDefinition{
			{Name: "rating", Type: "number", Required: true},
			{Name: "text", Type: "textarea"},
		},
	}
}

func TestUpsertConfigWritesBothStores(t *testing.T) {
	ctx := context.Background()
	configs := memory.NewConfigRepository()
	cats := memory.NewCategoryRepository()
	svc := NewAdminService(configs, cats, quietLogger())

	rec, err := svc.UpsertConfig(ctx, reviewsRequest())
	require.NoError(t, err)
	assert.Equal(t, "reviews", rec.Category)
	assert.Len(t, rec.Fields, 2)

	meta, err := cats.FindByCategory(ctx, "reviews")
	require.NoError(t, err)
	assert.Equal(t, models.Descriptor{Collection: "reviews", Fields: []string{"rating", "text"}}, meta.Descriptor())
}

func TestUpsertConfigIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := NewAdminService(memory.NewConfigRepository(), memory.NewCategoryRepository(), quietLogger())

	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = fixedClock(t0)
	first, err := svc.UpsertConfig(ctx, reviewsRequest())
	require.NoError(t, err)

	svc.now = fixedClock(t0.Add(time.Minute))
	second, err := svc.UpsertConfig(ctx, reviewsRequest())
	require.NoError(t, err)

	assert.Equal(t, t0.Add(time.Minute), second.UpdatedAt)
	second.UpdatedAt = first.UpdatedAt
	assert.Equal(t, first, second)
}

func TestUpsertConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.UpsertConfigRequest
	}{
		{"nil", nil},
		{"no category", &models.UpsertConfigRequest{Collection: "c", Fields: []models.FieldDefinition{}}},
		{"blank collection", &models.UpsertConfigRequest{Category: "c", Collection: "  ", Fields: []models.FieldDefinition{}}},
		{"no fields", &models.UpsertConfigRequest{Category: "c", Collection: "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAdminService(failingConfigs{}, &failingCategories{}, quietLogger())
			_, err := svc.UpsertConfig(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, KindValidation, KindOf(err))
			assert.Equal(t, "category, collection, fields[] required", Message(err))
		})
	}
}

func TestUpsertConfigAllowsEmptyFieldList(t *testing.T) {
	svc := NewAdminService(memory.NewConfigRepository(), memory.NewCategoryRepository(), quietLogger())
	rec, err := svc.UpsertConfig(context.Background(), &models.UpsertConfigRequest{
		Category:   "pings",
		Collection: "pings",
		Fields:     []models.FieldDefinition{},
	})
	require.NoError(t, err)
	assert.Empty(t, rec.Fields)
}

func TestUpsertConfigStoresMetadata(t *testing.T) {
	ctx := context.Background()
	configs := memory.NewConfigRepository()
	cats := memory.NewCategoryRepository()
	svc := NewAdminService(configs, cats, quietLogger())

	req := reviewsRequest()
	req.Extra = map[string]interface{}{"title": "Customer reviews", "public": true}
	rec, err := svc.UpsertConfig(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Customer reviews", rec.Extra["title"])

	stored, err := configs.FindByCategory(ctx, "reviews")
	require.NoError(t, err)
	assert.Equal(t, true, stored.Extra["public"])

	meta, err := cats.FindByCategory(ctx, "reviews")
	require.NoError(t, err)
	assert.Equal(t, []string{"rating", "text"}, meta.Descriptor().Fields)
}

func TestUpsertConfigSecondWriteFailureKeepsFirst(t *testing.T) {
	ctx := context.Background()
	configs := memory.NewConfigRepository()
	svc := NewAdminService(configs, &failingCategories{}, quietLogger())

	_, err := svc.UpsertConfig(ctx, reviewsRequest())
	require.Error(t, err)
	assert.Equal(t, KindStore, KindOf(err))

	// no rollback: the configs write stays applied
	rec, err := configs.FindByCategory(ctx, "reviews")
	require.NoError(t, err)
	assert.Equal(t, "reviews", rec.Collection)
}

func TestUpsertConfigFirstWriteFailure(t *testing.T) {
	cats := &failingCategories{}
	svc := NewAdminService(failingConfigs{}, cats, quietLogger())

	_, err := svc.UpsertConfig(context.Background(), reviewsRequest())
	require.ErrorIs(t, err, errStoreDown)
	assert.Zero(t, cats.calls)
}
