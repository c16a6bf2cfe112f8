package driving

import (
	"context"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// SyncOrchestrator runs connectors and reconciles their snapshots.
type SyncOrchestrator interface {
	// SyncAll runs every configured connector once.
	// Per-source failures are reported in the returned report; the error
	// is only set when the run could not start.
	SyncAll(ctx context.Context) (*domain.SyncReport, error)

	// Sync runs a single connector by type.
	Sync(ctx context.Context, connectorType string) (*domain.SyncReport, error)

	// Connectors lists the configured connector types.
	Connectors() []string

	// Status returns the state of the current or last run.
	Status(ctx context.Context) (*SyncStatus, error)
}

// SyncStatus represents the current state of a sync operation.
type SyncStatus struct {
	// Running indicates if a sync is currently in progress.
	Running bool

	// LastReport is the report of the last completed run, if any.
	LastReport *domain.SyncReport
}
