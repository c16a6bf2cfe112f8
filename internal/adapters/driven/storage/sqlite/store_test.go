package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) (*Store, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sitesync-test-*")
	require.NoError(t, err)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)

	cleanup := func() {
		assert.NoError(t, store.Close())
		assert.NoError(t, os.RemoveAll(tempDir))
	}

	return store, cleanup
}

func testDocument(source, extid string, modified time.Time) *domain.Document {
	return &domain.Document{
		Source:     source,
		ExternalID: extid,
		Title:      "Title " + extid,
		URL:        "https://example.org/" + extid,
		Audiences:  domain.NewAudience("staff", "students"),
		Keywords:   "kw",
		Content:    "content " + extid,
		Excerpt:    "excerpt",
		CreatedAt:  modified.Add(-time.Hour),
		ModifiedAt: modified,
	}
}

// ==================== Store Creation and Initialization Tests ====================

func TestNewStore_ErrorHandling(t *testing.T) {
	_, err := NewStore("/invalid\x00path")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "creating data directory")
}

func TestNewStore_Success(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sitesync-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	require.NotNil(t, store)
	defer store.Close()

	dbPath := filepath.Join(tempDir, "sitesync.db")
	assert.Equal(t, dbPath, store.Path())
	assert.FileExists(t, dbPath)
	assert.NoError(t, store.db.Ping())
}

func TestNewStore_DirectoryCreation(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sitesync-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	nestedDir := filepath.Join(tempDir, "nested", "path", "to", "db")
	store, err := NewStore(nestedDir)
	require.NoError(t, err)
	defer store.Close()

	assert.DirExists(t, nestedDir)
}

func TestNewStore_Migrations(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	var count int
	err := store.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	tables := []string{"documents", "sync_states", "scheduled_tasks", "task_results", "users"}
	for _, table := range tables {
		var tableExists int
		err := store.db.QueryRow(
			"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&tableExists)
		require.NoError(t, err)
		assert.Equal(t, 1, tableExists, "table %s should exist", table)
	}
}

func TestNewStore_ReopenSkipsAppliedMigrations(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "sitesync-test-*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	store, err := NewStore(tempDir)
	require.NoError(t, err)
	_, err = store.DocumentStore().Insert(context.Background(), testDocument("news", "1", time.Unix(1000, 0)))
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := NewStore(tempDir)
	require.NoError(t, err)
	defer reopened.Close()

	docs, err := reopened.DocumentStore().ListBySource(context.Background(), "news")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestStore_Close(t *testing.T) {
	store, _ := setupTestStore(t)

	assert.NoError(t, store.Close())
	assert.Error(t, store.db.Ping())
}

// ==================== DocumentStore Tests ====================

func TestDocumentStore_InsertAndGet(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	docs := store.DocumentStore()

	doc := testDocument("news", "42", time.Unix(1700000000, 0))
	id, err := docs.Insert(ctx, doc)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := docs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "news", got.Source)
	assert.Equal(t, "42", got.ExternalID)
	assert.Equal(t, doc.Title, got.Title)
	assert.Equal(t, doc.URL, got.URL)
	assert.Equal(t, domain.Audience{"staff", "students"}, got.Audiences)
	assert.Equal(t, doc.Content, got.Content)
	assert.True(t, got.ModifiedAt.Equal(doc.ModifiedAt))
	assert.True(t, got.CreatedAt.Equal(doc.CreatedAt))

	byKey, err := docs.GetByExternalID(ctx, "news", "42")
	require.NoError(t, err)
	assert.Equal(t, id, byKey.ID)
}

func TestDocumentStore_InsertDuplicateKey(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	docs := store.DocumentStore()

	_, err := docs.Insert(ctx, testDocument("news", "1", time.Unix(1000, 0)))
	require.NoError(t, err)

	_, err = docs.Insert(ctx, testDocument("news", "1", time.Unix(2000, 0)))
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	// Same extid in another source is a different document
	_, err = docs.Insert(ctx, testDocument("events", "1", time.Unix(1000, 0)))
	assert.NoError(t, err)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	docs := store.DocumentStore()

	_, err := docs.Get(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = docs.GetByExternalID(ctx, "news", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_UpdateKeepsID(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	docs := store.DocumentStore()

	id, err := docs.Insert(ctx, testDocument("news", "1", time.Unix(1000, 0)))
	require.NoError(t, err)

	updated := testDocument("news", "1", time.Unix(2000, 0))
	updated.ID = id
	updated.Title = "New title"
	updated.Audiences = domain.NewAudience("parents")
	require.NoError(t, docs.Update(ctx, updated))

	got, err := docs.GetByExternalID(ctx, "news", "1")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "New title", got.Title)
	assert.Equal(t, domain.Audience{"parents"}, got.Audiences)
	assert.Equal(t, int64(2000), got.ModifiedAt.Unix())
}

func TestDocumentStore_UpdateMissing(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	doc := testDocument("news", "1", time.Unix(1000, 0))
	doc.ID = 12345
	err := store.DocumentStore().Update(context.Background(), doc)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_Delete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	docs := store.DocumentStore()

	id1, err := docs.Insert(ctx, testDocument("news", "1", time.Unix(1000, 0)))
	require.NoError(t, err)
	id2, err := docs.Insert(ctx, testDocument("news", "2", time.Unix(1000, 0)))
	require.NoError(t, err)
	_, err = docs.Insert(ctx, testDocument("news", "3", time.Unix(1000, 0)))
	require.NoError(t, err)

	require.NoError(t, docs.Delete(ctx, []int64{id1, id2}))
	require.NoError(t, docs.Delete(ctx, nil))

	remaining, err := docs.ListBySource(ctx, "news")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "3", remaining[0].ExternalID)
}

func TestDocumentStore_DeleteByExternalIDsScopedToSource(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	docs := store.DocumentStore()

	for _, d := range []*domain.Document{
		testDocument(domain.SourceUsers, "7", time.Unix(1000, 0)),
		testDocument(domain.SourceUsers, "8", time.Unix(1000, 0)),
		testDocument("news", "7", time.Unix(1000, 0)),
	} {
		_, err := docs.Insert(ctx, d)
		require.NoError(t, err)
	}

	n, err := docs.DeleteByExternalIDs(ctx, domain.SourceUsers, []string{"7", "99"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = docs.GetByExternalID(ctx, "news", "7")
	assert.NoError(t, err)

	n, err = docs.DeleteByExternalIDs(ctx, domain.SourceUsers, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDocumentStore_ListModifiedSince(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	docs := store.DocumentStore()

	for i, ts := range []int64{3000, 1000, 2000} {
		_, err := docs.Insert(ctx, testDocument("news", string(rune('a'+i)), time.Unix(ts, 0)))
		require.NoError(t, err)
	}

	got, err := docs.ListModifiedSince(ctx, time.Unix(2000, 0))
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2000), got[0].ModifiedAt.Unix())
	assert.Equal(t, int64(3000), got[1].ModifiedAt.Unix())

	all, err := docs.ListModifiedSince(ctx, time.Time{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDocumentStore_ZeroTimesRoundTrip(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	docs := store.DocumentStore()

	doc := testDocument("news", "1", time.Time{})
	doc.CreatedAt = time.Time{}
	id, err := docs.Insert(ctx, doc)
	require.NoError(t, err)

	got, err := docs.Get(ctx, id)
	require.NoError(t, err)
	assert.True(t, got.ModifiedAt.IsZero())
	assert.True(t, got.CreatedAt.IsZero())
}

// ==================== SyncStateStore Tests ====================

func TestSyncStateStore_SaveGetDelete(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	states := store.SyncStateStore()

	_, err := states.Get(ctx, domain.SourceQuickLinks)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, states.Save(ctx, domain.SyncState{
		SourceID: domain.SourceQuickLinks,
		Cursor:   "1700000000",
		LastSync: now,
	}))
	require.NoError(t, states.Save(ctx, domain.SyncState{
		SourceID: domain.SourceQuickLinks,
		Cursor:   "1700000500",
		LastSync: now,
	}))

	state, err := states.Get(ctx, domain.SourceQuickLinks)
	require.NoError(t, err)
	assert.Equal(t, "1700000500", state.Cursor)
	assert.WithinDuration(t, now, state.LastSync, time.Second)

	require.NoError(t, states.Delete(ctx, domain.SourceQuickLinks))
	_, err = states.Get(ctx, domain.SourceQuickLinks)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ==================== UserDirectory Tests ====================

func TestUserDirectory_ActiveAndSuspended(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	ctx := context.Background()
	users := store.UserDirectory()

	require.NoError(t, users.SaveUser(ctx, domain.DirectoryUser{
		ID: "1", Username: "jsmith", FirstName: "Jane", LastName: "Smith", Email: "jane@example.org",
		CreatedAt: time.Unix(1000, 0), ModifiedAt: time.Unix(2000, 0),
	}))
	require.NoError(t, users.SaveUser(ctx, domain.DirectoryUser{
		ID: "2", Username: "bob", Suspended: true,
	}))

	active, err := users.ActiveUsers(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "jsmith", active[0].Username)
	assert.Equal(t, "Jane Smith", active[0].DisplayName())
	assert.Equal(t, int64(2000), active[0].ModifiedAt.Unix())

	suspended, err := users.SuspendedUsers(ctx)
	require.NoError(t, err)
	require.Len(t, suspended, 1)
	assert.Equal(t, "2", suspended[0].ID)

	// Suspending an active user moves it across
	require.NoError(t, users.SaveUser(ctx, domain.DirectoryUser{ID: "1", Username: "jsmith", Suspended: true}))
	active, err = users.ActiveUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestUserDirectory_SaveInvalid(t *testing.T) {
	store, cleanup := setupTestStore(t)
	defer cleanup()

	err := store.UserDirectory().SaveUser(context.Background(), domain.DirectoryUser{ID: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
