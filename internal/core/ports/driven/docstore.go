package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// DocumentStore persists documents in the documents table.
// Documents are unique on (source, external id).
type DocumentStore interface {
	// Insert stores a new document and returns its assigned ID.
	// Returns domain.ErrAlreadyExists if the (source, external id) pair is taken.
	Insert(ctx context.Context, doc *domain.Document) (int64, error)

	// Update rewrites the stored document with doc.ID.
	// The ID, source and external id are never changed.
	Update(ctx context.Context, doc *domain.Document) error

	// Delete removes documents by ID.
	Delete(ctx context.Context, ids []int64) error

	// DeleteByExternalIDs removes documents of a source by external id and
	// returns the number removed. Never touches other sources.
	DeleteByExternalIDs(ctx context.Context, source string, externalIDs []string) (int, error)

	// Get retrieves a document by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// GetByExternalID retrieves a document by its source key.
	// Returns domain.ErrNotFound if it does not exist.
	GetByExternalID(ctx context.Context, source, externalID string) (*domain.Document, error)

	// ListBySource returns every document of a source.
	ListBySource(ctx context.Context, source string) ([]domain.Document, error)

	// ListModifiedSince returns documents modified at or after since,
	// ordered by modification time ascending.
	ListModifiedSince(ctx context.Context, since time.Time) ([]domain.Document, error)
}
