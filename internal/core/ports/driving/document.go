package driving

import (
	"context"
	"time"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// DocumentService is the query interface consumed by the search index.
type DocumentService interface {
	// ListModifiedSince returns documents modified at or after since,
	// oldest first.
	ListModifiedSince(ctx context.Context, since time.Time) ([]domain.Document, error)

	// Get retrieves a document by storage ID.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// CheckAccess decides whether the requester may see the document.
	// A missing document is denied, never an error.
	CheckAccess(ctx context.Context, id int64, requester domain.Requester) domain.Access
}
