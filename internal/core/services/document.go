package services

import (
	"context"
	"errors"
	"time"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService answers queries from the search index.
type DocumentService struct {
	docStore  driven.DocumentStore
	evaluator *AccessEvaluator
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, evaluator *AccessEvaluator) *DocumentService {
	if evaluator == nil {
		evaluator = NewAccessEvaluator()
	}
	return &DocumentService{
		docStore:  docStore,
		evaluator: evaluator,
	}
}

// ListModifiedSince returns documents modified at or after since, oldest first.
func (s *DocumentService) ListModifiedSince(ctx context.Context, since time.Time) ([]domain.Document, error) {
	return s.docStore.ListModifiedSince(ctx, since)
}

// Get retrieves a document by storage ID.
func (s *DocumentService) Get(ctx context.Context, id int64) (*domain.Document, error) {
	return s.docStore.Get(ctx, id)
}

// CheckAccess decides whether the requester may see the document.
// Lookup failures deny.
func (s *DocumentService) CheckAccess(ctx context.Context, id int64, requester domain.Requester) domain.Access {
	doc, err := s.docStore.Get(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("access check for document %d: %v", id, err)
		}
		return domain.AccessDenied
	}
	return s.evaluator.Decide(doc, requester)
}
