package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
	"github.com/ArowuTest/category-proxy/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ConfigCollection holds one administrative configuration record per category.
const ConfigCollection = "configs"

// ConfigRepository implements repositories.ConfigRepository
type ConfigRepository struct {
	client *mongodb.Client
}

// NewConfigRepository creates a new ConfigRepository
func NewConfigRepository(client *mongodb.Client) repositories.ConfigRepository {
	return &ConfigRepository{client: client}
}

// FindByCategory finds a configuration record by category
func (r *ConfigRepository) FindByCategory(ctx context.Context, category string) (*models.ConfigRecord, error) {
	col, err := r.client.Collection(ctx, ConfigCollection)
	if err != nil {
		return nil, err
	}

	var record models.ConfigRecord
	err = col.FindOne(ctx, bson.M{"category": category}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repositories.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find config for category %q: %w", category, err)
	}
	return &record, nil
}

// configUpdate builds the upsert for record. Metadata keys are merged into
// the stored document; category and createdAt are only written on insert.
func configUpdate(record *models.ConfigRecord, now time.Time) bson.M {
	set := bson.M{
		"collection": record.Collection,
		"fields":     record.Fields,
		"updatedAt":  now,
	}
	for k, v := range record.Extra {
		if models.IsReservedConfigKey(k) {
			continue
		}
		set[k] = v
	}
	return bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"category":  record.Category,
			"createdAt": now,
		},
	}
}

// UpsertByCategory updates the record for its category, or creates it if it
// doesn't exist, and returns the stored document.
func (r *ConfigRepository) UpsertByCategory(ctx context.Context, record *models.ConfigRecord, now time.Time) (*models.ConfigRecord, error) {
	col, err := r.client.Collection(ctx, ConfigCollection)
	if err != nil {
		return nil, err
	}

	filter := bson.M{"category": record.Category}
	update := configUpdate(record, now)
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.ConfigRecord
	if err := col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&stored); err != nil {
		return nil, fmt.Errorf("failed to upsert config for category %q: %w", record.Category, err)
	}
	return &stored, nil
}
