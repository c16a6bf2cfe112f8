package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// Ensure SyncOrchestrator implements the interface.
var _ driving.SyncOrchestrator = (*SyncOrchestrator)(nil)

// SyncOrchestrator runs connectors and reconciles their snapshots.
// Only one run is active at a time.
type SyncOrchestrator struct {
	connectors []driven.Connector
	reconciler *Reconciler
	normaliser driven.Normaliser
	syncStore  driven.SyncStateStore

	mu      sync.RWMutex
	running bool
	last    *domain.SyncReport
}

// NewSyncOrchestrator creates a new sync orchestrator. Connectors run in
// the order given. normaliser may be nil.
func NewSyncOrchestrator(
	docStore driven.DocumentStore,
	syncStore driven.SyncStateStore,
	normaliser driven.Normaliser,
	connectors ...driven.Connector,
) *SyncOrchestrator {
	return &SyncOrchestrator{
		connectors: connectors,
		reconciler: NewReconciler(docStore),
		normaliser: normaliser,
		syncStore:  syncStore,
	}
}

// Connectors lists the configured connector types.
func (o *SyncOrchestrator) Connectors() []string {
	types := make([]string, 0, len(o.connectors))
	for _, c := range o.connectors {
		types = append(types, c.Type())
	}
	return types
}

// SyncAll runs every connector once.
func (o *SyncOrchestrator) SyncAll(ctx context.Context) (*domain.SyncReport, error) {
	return o.run(ctx, o.connectors)
}

// Sync runs the connector of the given type.
func (o *SyncOrchestrator) Sync(ctx context.Context, connectorType string) (*domain.SyncReport, error) {
	for _, c := range o.connectors {
		if c.Type() == connectorType {
			return o.run(ctx, []driven.Connector{c})
		}
	}
	return nil, fmt.Errorf("connector %q: %w", connectorType, domain.ErrUnsupportedType)
}

// Status returns whether a run is active and the last completed report.
func (o *SyncOrchestrator) Status(_ context.Context) (*driving.SyncStatus, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return &driving.SyncStatus{Running: o.running, LastReport: o.last}, nil
}

func (o *SyncOrchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.running {
		return false
	}
	o.running = true
	return true
}

func (o *SyncOrchestrator) end(report *domain.SyncReport) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.running = false
	o.last = report
}

// run processes connectors in order. Per-source failures are recorded in
// the report and never stop the other sources. Only cancellation aborts.
func (o *SyncOrchestrator) run(ctx context.Context, connectors []driven.Connector) (*domain.SyncReport, error) {
	if !o.begin() {
		return nil, domain.ErrSyncInProgress
	}

	report := &domain.SyncReport{
		RunID:     uuid.NewString(),
		StartedAt: time.Now(),
	}
	defer func() {
		report.EndedAt = time.Now()
		o.end(report)
	}()

	logger.Section("Sync " + report.RunID)

	for _, c := range connectors {
		snapshots, err := c.Snapshots(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return report, ctx.Err()
			}
			logger.Error("%s: %v", c.Type(), err)
			report.Sources = append(report.Sources, domain.SourceReport{Origin: c.Type(), Err: err.Error()})
			continue
		}

		for i := range snapshots {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			report.Sources = append(report.Sources, o.process(ctx, &snapshots[i]))
		}
	}

	totals := report.Totals()
	logger.Info("Sync complete: %d added, %d updated, %d deleted, %d skipped, %d failed sources",
		totals.Added, totals.Updated, totals.Deleted, totals.Skipped, report.FailedSources())
	return report, nil
}

// process normalises and reconciles one snapshot, then saves its cursor.
func (o *SyncOrchestrator) process(ctx context.Context, snap *domain.Snapshot) domain.SourceReport {
	if snap.Err == nil && !snap.Unchanged {
		o.normalise(ctx, snap)
	}

	result, err := o.reconciler.Reconcile(ctx, *snap)
	if err != nil {
		logger.Error("%s: %v", result.Label(), err)
		return result
	}

	if snap.Unchanged {
		logger.Info("%s: unchanged", result.Label())
		return result
	}

	logger.Info("%s: %d added, %d updated, %d deleted, %d unchanged, %d skipped",
		result.Label(), result.Added, result.Updated, result.Deleted, result.Unchanged, result.Skipped)

	if snap.Cursor != "" && o.syncStore != nil {
		state := domain.SyncState{SourceID: snap.Source, Cursor: snap.Cursor, LastSync: time.Now()}
		if err := o.syncStore.Save(ctx, state); err != nil {
			logger.Warn("%s: saving sync state: %v", snap.Source, err)
		}
	}
	return result
}

// normalise drops documents failing validation, counting them as dropped.
func (o *SyncOrchestrator) normalise(ctx context.Context, snap *domain.Snapshot) {
	if o.normaliser == nil {
		return
	}

	kept := snap.Documents[:0]
	for i := range snap.Documents {
		doc := snap.Documents[i]
		if err := o.normaliser.Normalise(ctx, &doc); err != nil {
			logger.Warn("%s: %v", snap.Source, err)
			snap.Dropped++
			continue
		}
		kept = append(kept, doc)
	}
	snap.Documents = kept
}
