package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/sitesync/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to
// all metadata store interfaces through wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.sitesync/data/sitesync.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".sitesync", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "sitesync.db")

	// WAL lets the HTTP API read while a sync writes
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// SyncStateStore returns a SyncStateStore interface backed by this store.
func (s *Store) SyncStateStore() driven.SyncStateStore {
	return &syncStateStore{store: s}
}

// SchedulerStore returns a SchedulerStore interface backed by this store.
func (s *Store) SchedulerStore() driven.SchedulerStore {
	return &schedulerStore{store: s}
}

// UserDirectory returns a UserDirectory interface backed by this store.
func (s *Store) UserDirectory() driven.UserDirectory {
	return &userDirectory{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// "001_initial.up.sql" -> 1
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue
		}

		if version <= currentVersion {
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec("INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

const documentColumns = `id, source, extid, author, title, url, audiences, keywords, content, excerpt,
	timecreated, timemodified`

// Insert stores a new document and returns its assigned ID.
func (s *documentStore) Insert(ctx context.Context, doc *domain.Document) (int64, error) {
	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (source, extid, author, title, url, audiences, keywords, content, excerpt,
			timecreated, timemodified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, doc.Source, doc.ExternalID, doc.Author, doc.Title, doc.URL, doc.Audiences.String(),
		doc.Keywords, doc.Content, doc.Excerpt, unixSeconds(doc.CreatedAt), unixSeconds(doc.ModifiedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("inserting document %s/%s: %w", doc.Source, doc.ExternalID, domain.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("inserting document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

// Update rewrites the stored document with doc.ID.
func (s *documentStore) Update(ctx context.Context, doc *domain.Document) error {
	res, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET
			author = ?, title = ?, url = ?, audiences = ?, keywords = ?, content = ?, excerpt = ?,
			timecreated = ?, timemodified = ?
		WHERE id = ?
	`, doc.Author, doc.Title, doc.URL, doc.Audiences.String(), doc.Keywords, doc.Content, doc.Excerpt,
		unixSeconds(doc.CreatedAt), unixSeconds(doc.ModifiedAt), doc.ID)
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating document: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes documents by ID.
func (s *documentStore) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	_, err := s.store.db.ExecContext(ctx,
		"DELETE FROM documents WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return fmt.Errorf("deleting documents: %w", err)
	}
	return nil
}

// DeleteByExternalIDs removes documents of one source by external id.
func (s *documentStore) DeleteByExternalIDs(ctx context.Context, source string, externalIDs []string) (int, error) {
	if len(externalIDs) == 0 {
		return 0, nil
	}

	args := make([]any, 0, len(externalIDs)+1)
	args = append(args, source)
	for _, id := range externalIDs {
		args = append(args, id)
	}

	res, err := s.store.db.ExecContext(ctx,
		"DELETE FROM documents WHERE source = ? AND extid IN ("+placeholders(len(externalIDs))+")", args...)
	if err != nil {
		return 0, fmt.Errorf("deleting documents by external id: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("deleting documents by external id: %w", err)
	}
	return int(n), nil
}

// Get retrieves a document by ID.
func (s *documentStore) Get(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id)
	return scanDocument(row)
}

// GetByExternalID retrieves a document by its source key.
func (s *documentStore) GetByExternalID(ctx context.Context, source, externalID string) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE source = ? AND extid = ?", source, externalID)
	return scanDocument(row)
}

// ListBySource returns every document of a source.
func (s *documentStore) ListBySource(ctx context.Context, source string) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE source = ? ORDER BY id", source)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ListModifiedSince returns documents modified at or after since, oldest first.
func (s *documentStore) ListModifiedSince(ctx context.Context, since time.Time) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE timemodified >= ? ORDER BY timemodified ASC, id ASC",
		unixSeconds(since))
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	return scanDocuments(rows)
}

// ==================== Sync State Store ====================

// syncStateStore implements driven.SyncStateStore.
type syncStateStore struct {
	store *Store
}

var _ driven.SyncStateStore = (*syncStateStore)(nil)

// Save stores or updates sync state.
func (s *syncStateStore) Save(ctx context.Context, state domain.SyncState) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_states (source_id, cursor, last_sync)
		VALUES (?, ?, ?)
		ON CONFLICT(source_id) DO UPDATE SET
			cursor = excluded.cursor,
			last_sync = excluded.last_sync
	`, state.SourceID, state.Cursor, state.LastSync)

	if err != nil {
		return fmt.Errorf("saving sync state: %w", err)
	}
	return nil
}

// Get retrieves sync state for a source.
func (s *syncStateStore) Get(ctx context.Context, sourceID string) (*domain.SyncState, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT source_id, cursor, last_sync
		FROM sync_states WHERE source_id = ?
	`, sourceID)

	var state domain.SyncState
	var lastSync sql.NullTime
	if err := row.Scan(&state.SourceID, &state.Cursor, &lastSync); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning sync state: %w", err)
	}

	if lastSync.Valid {
		state.LastSync = lastSync.Time
	}

	return &state, nil
}

// Delete removes sync state for a source.
func (s *syncStateStore) Delete(ctx context.Context, sourceID string) error {
	_, err := s.store.db.ExecContext(ctx, "DELETE FROM sync_states WHERE source_id = ?", sourceID)
	if err != nil {
		return fmt.Errorf("deleting sync state: %w", err)
	}
	return nil
}

// ==================== Helper Functions ====================

type rowScanner interface {
	Scan(dest ...any) error
}

// scanDocument scans a single document row.
func scanDocument(row *sql.Row) (*domain.Document, error) {
	doc, err := scanDocumentFrom(row)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	return doc, err
}

// scanDocuments scans every remaining row.
func scanDocuments(rows *sql.Rows) ([]domain.Document, error) {
	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		doc, err := scanDocumentFrom(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}

	return docs, nil
}

func scanDocumentFrom(row rowScanner) (*domain.Document, error) {
	var doc domain.Document
	var audiences string
	var created, modified int64

	if err := row.Scan(&doc.ID, &doc.Source, &doc.ExternalID, &doc.Author, &doc.Title, &doc.URL,
		&audiences, &doc.Keywords, &doc.Content, &doc.Excerpt, &created, &modified); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Audiences = domain.ParseAudience(audiences)
	doc.CreatedAt = fromUnix(created)
	doc.ModifiedAt = fromUnix(modified)
	return &doc, nil
}

// placeholders returns "?, ?, ?" for n arguments.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

// unixSeconds stores zero times as 0 rather than year-1 seconds.
func unixSeconds(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
