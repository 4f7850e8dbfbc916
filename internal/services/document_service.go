package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/ArowuTest/category-proxy/internal/models"
	"github.com/ArowuTest/category-proxy/internal/repositories"
)

var _ DocumentService = (*DocumentServiceImpl)(nil)

// DocumentServiceImpl implements DocumentService on top of a resolver and a
// document repository.
type DocumentServiceImpl struct {
	resolver  Resolver
	documents repositories.DocumentRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewDocumentService creates a new DocumentServiceImpl
func NewDocumentService(resolver Resolver, documents repositories.DocumentRepository, logger *slog.Logger) *DocumentServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentServiceImpl{
		resolver:  resolver,
		documents: documents,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns the newest documents of a category, at most limit of them
// after clamping.
func (s *DocumentServiceImpl) List(ctx context.Context, category string, limit int) ([]models.Document, error) {
	desc, err := s.resolver.Resolve(ctx, category)
	if err != nil {
		return nil, err
	}

	docs, err := s.documents.FindRecent(ctx, desc.Collection, int64(ClampLimit(limit)))
	if err != nil {
		s.logger.Error("failed to list documents", "category", category, "collection", desc.Collection, "error", err)
		return nil, StoreFailure(err)
	}
	return docs, nil
}

// Create filters body through the category's whitelist and stores it.
func (s *DocumentServiceImpl) Create(ctx context.Context, category string, body map[string]interface{}) (string, error) {
	desc, err := s.resolver.Resolve(ctx, category)
	if err != nil {
		return "", err
	}

	doc := FilterFields(body, desc.Fields, s.now().UTC())
	id, err := s.documents.Insert(ctx, desc.Collection, doc)
	if err != nil {
		s.logger.Error("failed to insert document", "category", category, "collection", desc.Collection, "error", err)
		return "", StoreFailure(err)
	}

	s.logger.Debug("document created", "category", category, "collection", desc.Collection, "id", id)
	return id, nil
}
