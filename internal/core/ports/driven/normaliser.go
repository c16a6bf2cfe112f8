package driven

import (
	"context"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// Normaliser applies the document model rules to a connector's output
// before it reaches the store.
type Normaliser interface {
	// Normalise cleans doc in place.
	// Returns a *domain.ValidationError when the document must be dropped.
	Normalise(ctx context.Context, doc *domain.Document) error
}
