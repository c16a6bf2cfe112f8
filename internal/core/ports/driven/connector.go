package driven

import (
	"context"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// Connector produces snapshots of the documents a source currently holds.
// Connectors never write to the document store.
type Connector interface {
	// Type returns the connector type identifier ("sites", "quicklinks", "users").
	Type() string

	// Snapshots fetches the current state of every source the connector
	// serves. A failure limited to one origin is reported through that
	// snapshot's Err; the returned error is reserved for failures that
	// prevent the connector from producing anything at all.
	Snapshots(ctx context.Context) ([]domain.Snapshot, error)
}
