package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
	"github.com/ArowuTest/category-proxy/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CategoryCollection is the resolver's metadata collection.
const CategoryCollection = "_categories"

// CategoryRepository implements repositories.CategoryRepository
type CategoryRepository struct {
	client *mongodb.Client
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(client *mongodb.Client) repositories.CategoryRepository {
	return &CategoryRepository{client: client}
}

// FindByCategory finds the lookup entry for a category
func (r *CategoryRepository) FindByCategory(ctx context.Context, category string) (*models.CategoryMeta, error) {
	col, err := r.client.Collection(ctx, CategoryCollection)
	if err != nil {
		return nil, err
	}

	var meta models.CategoryMeta
	err = col.FindOne(ctx, bson.M{"category": category}).Decode(&meta)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read _categories for %q: %w", category, err)
	}
	return &meta, nil
}

// UpsertByCategory stores the collection and field names for a category.
// Fields are written as a plain list of names.
func (r *CategoryRepository) UpsertByCategory(ctx context.Context, meta *models.CategoryMeta) error {
	col, err := r.client.Collection(ctx, CategoryCollection)
	if err != nil {
		return err
	}

	filter := bson.M{"category": meta.Category}
	update := bson.M{
		"$set": bson.M{
			"collection": meta.Collection,
			"fields":     models.FieldNames(meta.Fields),
		},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := col.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to upsert _categories for %q: %w", meta.Category, err)
	}
	return nil
}
