package services

import (
	"context"
	"errors"
	"sync"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// Reconciler makes the stored documents of one source match a snapshot.
type Reconciler struct {
	docs driven.DocumentStore

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewReconciler creates a reconciler writing to docs.
func NewReconciler(docs driven.DocumentStore) *Reconciler {
	return &Reconciler{
		docs:  docs,
		locks: make(map[string]*sync.Mutex),
	}
}

// lock serialises reconciliations of the same source.
func (r *Reconciler) lock(source string) func() {
	r.mu.Lock()
	l, ok := r.locks[source]
	if !ok {
		l = &sync.Mutex{}
		r.locks[source] = l
	}
	r.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Reconcile applies a snapshot to the store:
//
//  1. documents tagged with another source and repeated external ids are dropped
//  2. stored documents of the source missing from the snapshot are deleted,
//     unless the snapshot is empty
//  3. new documents are inserted, changed ones updated in place keeping their ID
//  4. ids listed in Remove are deleted within the source
//
// A failed or unchanged snapshot never touches the store. A store error
// aborts the remaining writes and is returned as *domain.StoreError; the
// writes already made are kept and counted in the report.
func (r *Reconciler) Reconcile(ctx context.Context, snap domain.Snapshot) (domain.SourceReport, error) {
	report := domain.SourceReport{
		Source:  snap.Source,
		Origin:  snap.Origin,
		Skipped: snap.Dropped,
	}

	if snap.Err != nil {
		report.Err = snap.Err.Error()
		return report, snap.Err
	}
	if snap.Source == "" || snap.Unchanged {
		return report, nil
	}

	defer r.lock(snap.Source)()

	docs := r.filter(&snap, &report)

	err := r.apply(ctx, &snap, docs, &report)
	if err != nil {
		report.Err = err.Error()
	}
	return report, err
}

// filter drops foreign and duplicate documents, keeping first occurrences.
func (r *Reconciler) filter(snap *domain.Snapshot, report *domain.SourceReport) []domain.Document {
	seen := make(map[string]struct{}, len(snap.Documents))
	docs := make([]domain.Document, 0, len(snap.Documents))

	for _, doc := range snap.Documents {
		var reason string
		switch _, dup := seen[doc.ExternalID]; {
		case doc.Source != snap.Source:
			reason = "belongs to source " + doc.Source
		case doc.ExternalID == "":
			reason = "has no external id"
		case dup:
			reason = "is a duplicate"
		}
		if reason != "" {
			logger.Warn("%s: dropping document %q: %s", snap.Source, doc.ExternalID, reason)
			report.Skipped++
			continue
		}

		seen[doc.ExternalID] = struct{}{}
		docs = append(docs, doc)
	}

	return docs
}

func (r *Reconciler) apply(
	ctx context.Context,
	snap *domain.Snapshot,
	docs []domain.Document,
	report *domain.SourceReport,
) error {
	source, remove := snap.Source, snap.Remove

	switch {
	case snap.Partial:
		logger.Warn("%s: partial snapshot, skipping deletion", source)
	case len(docs) > 0:
		n, err := r.deleteMissing(ctx, source, docs)
		report.Deleted += n
		if err != nil {
			return err
		}
	default:
		logger.Warn("%s: empty snapshot, skipping deletion", source)
	}

	for i := range docs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.upsert(ctx, &docs[i], report); err != nil {
			return err
		}
	}

	if len(remove) > 0 {
		n, err := r.docs.DeleteByExternalIDs(ctx, source, remove)
		report.Deleted += n
		if err != nil {
			return &domain.StoreError{Op: "delete", Err: err}
		}
		if n > 0 {
			logger.Debug("%s: removed %d documents", source, n)
		}
	}

	return nil
}

// deleteMissing removes stored documents of source absent from docs.
func (r *Reconciler) deleteMissing(ctx context.Context, source string, docs []domain.Document) (int, error) {
	keep := make(map[string]struct{}, len(docs))
	for i := range docs {
		keep[docs[i].ExternalID] = struct{}{}
	}

	stored, err := r.docs.ListBySource(ctx, source)
	if err != nil {
		return 0, &domain.StoreError{Op: "list", Err: err}
	}

	var ids []int64
	for i := range stored {
		if _, ok := keep[stored[i].ExternalID]; !ok {
			ids = append(ids, stored[i].ID)
			logger.Debug("%s: deleting %q (id %d)", source, stored[i].ExternalID, stored[i].ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	if err := r.docs.Delete(ctx, ids); err != nil {
		return 0, &domain.StoreError{Op: "delete", Err: err}
	}
	return len(ids), nil
}

func (r *Reconciler) upsert(ctx context.Context, doc *domain.Document, report *domain.SourceReport) error {
	existing, err := r.docs.GetByExternalID(ctx, doc.Source, doc.ExternalID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		id, err := r.docs.Insert(ctx, doc)
		if err != nil {
			return &domain.StoreError{Op: "insert", Err: err}
		}
		logger.Debug("%s: adding %q (id %d)", doc.Source, doc.ExternalID, id)
		report.Added++
	case err != nil:
		return &domain.StoreError{Op: "get", Err: err}
	case domain.Changed(existing, doc):
		doc.ID = existing.ID
		if err := r.docs.Update(ctx, doc); err != nil {
			return &domain.StoreError{Op: "update", Err: err}
		}
		logger.Debug("%s: updating %q (id %d)", doc.Source, doc.ExternalID, doc.ID)
		report.Updated++
	default:
		report.Unchanged++
	}
	return nil
}
