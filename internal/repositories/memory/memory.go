// Package memory provides in-process repositories for local runs without a
// database and for tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ConfigRepository implements repositories.ConfigRepository
type ConfigRepository struct {
	mu      sync.RWMutex
	records map[string]models.ConfigRecord
}

// NewConfigRepository creates an empty ConfigRepository
func NewConfigRepository() *ConfigRepository {
	return &ConfigRepository{records: make(map[string]models.ConfigRecord)}
}

// FindByCategory finds a configuration record by category
func (r *ConfigRepository) FindByCategory(_ context.Context, category string) (*models.ConfigRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[category]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return copyRecord(rec), nil
}

// UpsertByCategory mirrors the $set / $setOnInsert split of the MongoDB
// implementation: CreatedAt and ID are kept from the first insert.
func (r *ConfigRepository) UpsertByCategory(_ context.Context, record *models.ConfigRecord, now time.Time) (*models.ConfigRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[record.Category]
	if !ok {
		stored = models.ConfigRecord{
			ID:        primitive.NewObjectID(),
			Category:  record.Category,
			CreatedAt: now,
		}
	}
	stored.Collection = record.Collection
	stored.Fields = append([]models.FieldDefinition(nil), record.Fields...)
	stored.UpdatedAt = now
	for k, v := range record.Extra {
		if models.IsReservedConfigKey(k) {
			continue
		}
		if stored.Extra == nil {
			stored.Extra = make(map[string]interface{})
		}
		stored.Extra[k] = v
	}
	r.records[record.Category] = stored
	return copyRecord(stored), nil
}

func copyRecord(rec models.ConfigRecord) *models.ConfigRecord {
	rec.Fields = append([]models.FieldDefinition(nil), rec.Fields...)
	if rec.Extra != nil {
		extra := make(map[string]interface{}, len(rec.Extra))
		for k, v := range rec.Extra {
			extra[k] = v
		}
		rec.Extra = extra
	}
	return &rec
}

// CategoryRepository implements repositories.CategoryRepository
type CategoryRepository struct {
	mu    sync.RWMutex
	metas map[string]models.CategoryMeta
}

// NewCategoryRepository creates an empty CategoryRepository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{metas: make(map[string]models.CategoryMeta)}
}

// FindByCategory finds the lookup entry for a category
func (r *CategoryRepository) FindByCategory(_ context.Context, category string) (*models.CategoryMeta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	meta, ok := r.metas[category]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	meta.Fields = append([]models.FieldDefinition(nil), meta.Fields...)
	return &meta, nil
}

// UpsertByCategory stores the collection and field names for a category
func (r *CategoryRepository) UpsertByCategory(_ context.Context, meta *models.CategoryMeta) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := models.FieldNames(meta.Fields)
	fields := make([]models.FieldDefinition, len(names))
	for i, n := range names {
		fields[i] = models.FieldDefinition{Name: n}
	}
	r.metas[meta.Category] = models.CategoryMeta{
		Category:   meta.Category,
		Collection: meta.Collection,
		Fields:     fields,
	}
	return nil
}

// DocumentRepository implements repositories.DocumentRepository
type DocumentRepository struct {
	mu          sync.RWMutex
	collections map[string][]models.Document
}

// NewDocumentRepository creates an empty DocumentRepository
func NewDocumentRepository() *DocumentRepository {
	return &DocumentRepository{collections: make(map[string][]models.Document)}
}

// FindRecent returns up to limit documents ordered by createdAt descending
func (r *DocumentRepository) FindRecent(_ context.Context, collection string, limit int64) ([]models.Document, error) {
	r.mu.RLock()
	docs := make([]models.Document, 0, len(r.collections[collection]))
	for _, d := range r.collections[collection] {
		docs = append(docs, copyDocument(d))
	}
	r.mu.RUnlock()

	sort.SliceStable(docs, func(i, j int) bool {
		return createdAt(docs[i]).After(createdAt(docs[j]))
	})
	if limit > 0 && int64(len(docs)) > limit {
		docs = docs[:limit]
	}
	return docs, nil
}

// Insert stores doc under a new ObjectID
func (r *DocumentRepository) Insert(_ context.Context, collection string, doc models.Document) (string, error) {
	id := primitive.NewObjectID()
	stored := copyDocument(doc)
	stored["_id"] = id

	r.mu.Lock()
	r.collections[collection] = append(r.collections[collection], stored)
	r.mu.Unlock()
	return id.Hex(), nil
}

// Documents returns a snapshot of a collection in insertion order.
func (r *DocumentRepository) Documents(collection string) []models.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Document, 0, len(r.collections[collection]))
	for _, d := range r.collections[collection] {
		out = append(out, copyDocument(d))
	}
	return out
}

func copyDocument(d models.Document) models.Document {
	out := make(models.Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func createdAt(d models.Document) time.Time {
	t, _ := d[models.CreatedAtField].(time.Time)
	return t
}
