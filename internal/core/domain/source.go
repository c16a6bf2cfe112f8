package domain

import "time"

// Reserved source tags. External sites report their own tags.
const (
	// SourceQuickLinks tags documents built from the quick-links config.
	SourceQuickLinks = "ql"

	// SourceUsers tags documents built from the user directory.
	SourceUsers = "usr"
)

// IsReservedSource reports whether the tag belongs to an internal adapter.
// External sites may not claim these tags.
func IsReservedSource(source string) bool {
	return source == SourceQuickLinks || source == SourceUsers
}

// Snapshot is the full set of documents a connector reports for one
// source in one run.
type Snapshot struct {
	// Source is the tag every document in the snapshot carries.
	Source string

	// Origin describes where the snapshot came from (endpoint URL,
	// config path). Used for logging only.
	Origin string

	// Documents is the current set. An empty set never deletes.
	Documents []Document

	// Remove lists external ids to delete from Source regardless of
	// Documents. Used for proactive cleanup (suspended users).
	Remove []string

	// Partial is set when Documents may be incomplete, e.g. another
	// endpoint serving the same source failed. Documents are upserted but
	// missing ones are not deleted.
	Partial bool

	// Unchanged is set when the connector detected that its input has
	// not changed since the last run; nothing is reconciled.
	Unchanged bool

	// Cursor is saved as the sync state of Source after a successful
	// reconciliation. Empty means no state is kept.
	Cursor string

	// Err is set when the snapshot could not be produced. The source is
	// skipped for this run and the store is not touched.
	Err error

	// Dropped counts records rejected before reconciliation.
	Dropped int
}

// SyncState tracks the last processed input of a source.
type SyncState struct {
	// SourceID is the source tag.
	SourceID string

	// Cursor is an opaque token, e.g. a config modification time.
	Cursor string

	// LastSync is when the last successful sync completed.
	LastSync time.Time
}

// SourceReport holds the outcome of reconciling one snapshot.
type SourceReport struct {
	Source  string
	Origin  string
	Added   int
	Updated int
	Deleted int

	// Unchanged counts documents already stored with the same change key.
	Unchanged int

	// Skipped counts records dropped as invalid or duplicate.
	Skipped int

	Err string
}

// Writes returns the number of store writes performed.
func (r SourceReport) Writes() int {
	return r.Added + r.Updated + r.Deleted
}

// Label names the report for logs: the source tag, or the origin when
// the snapshot failed before its tag was known.
func (r SourceReport) Label() string {
	if r.Source == "" {
		return r.Origin
	}
	return r.Source
}

// Failed reports whether the source hit an error.
func (r SourceReport) Failed() bool {
	return r.Err != ""
}

// SyncReport summarises one run across all sources.
type SyncReport struct {
	RunID     string
	StartedAt time.Time
	EndedAt   time.Time
	Sources   []SourceReport
}

// Totals sums the counts of every source.
func (r *SyncReport) Totals() SourceReport {
	var total SourceReport
	for _, s := range r.Sources {
		total.Added += s.Added
		total.Updated += s.Updated
		total.Deleted += s.Deleted
		total.Unchanged += s.Unchanged
		total.Skipped += s.Skipped
	}
	return total
}

// FailedSources returns the number of sources that reported an error.
func (r *SyncReport) FailedSources() int {
	n := 0
	for _, s := range r.Sources {
		if s.Failed() {
			n++
		}
	}
	return n
}
