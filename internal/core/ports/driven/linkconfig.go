package driven

import (
	"context"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// LinkConfigProvider loads the quick-links configuration.
type LinkConfigProvider interface {
	// Load decodes the current configuration.
	// Returns domain.ErrNotFound when no configuration exists.
	Load(ctx context.Context) (*domain.LinkConfig, error)

	// Path returns where the configuration lives, for logging and watching.
	Path() string
}
