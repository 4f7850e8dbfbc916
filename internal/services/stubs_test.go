package services

import (
	"context"
	"errors"
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
)

var errStoreDown = errors.New("server selection timeout")

type failingCategories struct {
	calls int
}

func (f *failingCategories) FindByCategory(context.Context, string) (*models.CategoryMeta, error) {
	f.calls++
	return nil, errStoreDown
}

func (f *failingCategories) UpsertByCategory(context.Context, *models.CategoryMeta) error {
	f.calls++
	return errStoreDown
}

type failingConfigs struct{}

func (failingConfigs) FindByCategory(context.Context, string) (*models.ConfigRecord, error) {
	return nil, errStoreDown
}

func (failingConfigs) UpsertByCategory(context.Context, *models.ConfigRecord, time.Time) (*models.ConfigRecord, error) {
	return nil, errStoreDown
}

// recordingDocuments counts calls and optionally fails them.
type recordingDocuments struct {
	finds   int
	inserts int
	fail    bool

	lastCollection string
	lastLimit      int64
	lastDoc        models.Document
}

func (r *recordingDocuments) FindRecent(_ context.Context, collection string, limit int64) ([]models.Document, error) {
	r.finds++
	r.lastCollection = collection
	r.lastLimit = limit
	if r.fail {
		return nil, errStoreDown
	}
	return []models.Document{}, nil
}

func (r *recordingDocuments) Insert(_ context.Context, collection string, doc models.Document) (string, error) {
	r.inserts++
	r.lastCollection = collection
	r.lastDoc = doc
	if r.fail {
		return "", errStoreDown
	}
	return "65a1f0c2e4b0a1b2c3d4e5f6", nil
}
