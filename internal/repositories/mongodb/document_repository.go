package mongodb

import (
	"context"
	"fmt"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
	"github.com/ArowuTest/category-proxy/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DocumentRepository implements repositories.DocumentRepository over
// arbitrary collections.
type DocumentRepository struct {
	client *mongodb.Client
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(client *mongodb.Client) repositories.DocumentRepository {
	return &DocumentRepository{client: client}
}

// FindRecent returns up to limit documents, newest first
func (r *DocumentRepository) FindRecent(ctx context.Context, collection string, limit int64) ([]models.Document, error) {
	col, err := r.client.Collection(ctx, collection)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: models.CreatedAtField, Value: -1}}).
		SetLimit(limit)

	cursor, err := col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}

	docs := make([]models.Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, models.Document(m))
	}
	return docs, nil
}

// Insert stores doc and returns the generated identifier
func (r *DocumentRepository) Insert(ctx context.Context, collection string, doc models.Document) (string, error) {
	col, err := r.client.Collection(ctx, collection)
	if err != nil {
		return "", err
	}

	result, err := col.InsertOne(ctx, bson.M(doc))
	if err != nil {
		return "", err
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(result.InsertedID), nil
}
