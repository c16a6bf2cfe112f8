package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

func TestServer_handleListModifiedSince(t *testing.T) {
	ctx := context.Background()
	docs, _ := newDocumentService(t,
		testDocument("a", "old", testTime),
		testDocument("a", "mid", testTime.Add(time.Hour)),
		testDocument("b", "new", testTime.Add(2*time.Hour)),
	)
	server, err := NewServer(&Ports{Document: docs})
	require.NoError(t, err)

	t.Run("filters and orders by modification time", func(t *testing.T) {
		since := testTime.Add(time.Hour).Format(time.RFC3339)
		_, output, err := server.handleListModifiedSince(ctx, nil, ListModifiedSinceInput{Since: since})

		require.NoError(t, err)
		assert.Equal(t, 2, output.Count)
		assert.Equal(t, 2, output.Total)
		assert.Equal(t, "mid", output.Documents[0].ExternalID)
		assert.Equal(t, "new", output.Documents[1].ExternalID)
		assert.Equal(t, "2024-03-01T10:00:00Z", output.Documents[0].ModifiedAt)
	})

	t.Run("accepts unix seconds and applies limit", func(t *testing.T) {
		_, output, err := server.handleListModifiedSince(ctx, nil, ListModifiedSinceInput{Since: "0", Limit: 1})

		require.NoError(t, err)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, 3, output.Total)
		assert.Equal(t, "old", output.Documents[0].ExternalID)
	})

	t.Run("rejects malformed time", func(t *testing.T) {
		_, _, err := server.handleListModifiedSince(ctx, nil, ListModifiedSinceInput{Since: "last week"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleListModifiedSince_IsNew(t *testing.T) {
	ctx := context.Background()
	fresh := testDocument("a", "fresh", testTime.Add(2*time.Hour))
	fresh.CreatedAt = testTime.Add(2 * time.Hour)
	docs, _ := newDocumentService(t, testDocument("a", "seen", testTime), fresh)
	server, err := NewServer(&Ports{Document: docs})
	require.NoError(t, err)

	t.Run("omitted without last_indexed", func(t *testing.T) {
		_, output, err := server.handleListModifiedSince(ctx, nil, ListModifiedSinceInput{})

		require.NoError(t, err)
		require.Len(t, output.Documents, 2)
		assert.Nil(t, output.Documents[0].IsNew)
		assert.Nil(t, output.Documents[1].IsNew)
	})

	t.Run("compares creation time with last_indexed", func(t *testing.T) {
		last := testTime.Add(time.Hour).Format(time.RFC3339)
		_, output, err := server.handleListModifiedSince(ctx, nil, ListModifiedSinceInput{LastIndexed: last})

		require.NoError(t, err)
		require.Len(t, output.Documents, 2)
		require.NotNil(t, output.Documents[0].IsNew)
		assert.False(t, *output.Documents[0].IsNew)
		require.NotNil(t, output.Documents[1].IsNew)
		assert.True(t, *output.Documents[1].IsNew)
	})

	t.Run("never indexed marks everything new", func(t *testing.T) {
		_, output, err := server.handleListModifiedSince(ctx, nil, ListModifiedSinceInput{LastIndexed: "0"})

		require.NoError(t, err)
		for _, doc := range output.Documents {
			require.NotNil(t, doc.IsNew)
			assert.True(t, *doc.IsNew)
		}
	})

	t.Run("rejects malformed last_indexed", func(t *testing.T) {
		_, _, err := server.handleListModifiedSince(ctx, nil, ListModifiedSinceInput{LastIndexed: "yesterday"})

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestServer_handleGetDocument(t *testing.T) {
	ctx := context.Background()
	docs, ids := newDocumentService(t, testDocument("a", "1", testTime, "staff"))
	server, err := NewServer(&Ports{Document: docs})
	require.NoError(t, err)

	_, output, err := server.handleGetDocument(ctx, nil, GetDocumentInput{ID: ids[0]})
	require.NoError(t, err)
	assert.Equal(t, ids[0], output.ID)
	assert.Equal(t, "a", output.Source)
	assert.Equal(t, []string{"staff"}, output.Audiences)

	assert.Nil(t, output.IsNew)

	_, output, err = server.handleGetDocument(ctx, nil, GetDocumentInput{
		ID:          ids[0],
		LastIndexed: testTime.Add(-time.Minute).Format(time.RFC3339),
	})
	require.NoError(t, err)
	require.NotNil(t, output.IsNew)
	assert.True(t, *output.IsNew)

	_, _, err = server.handleGetDocument(ctx, nil, GetDocumentInput{ID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_handleCheckAccess(t *testing.T) {
	ctx := context.Background()
	docs, ids := newDocumentService(t,
		testDocument(domain.SourceQuickLinks, "ql-1", testTime, "*"),
		testDocument(domain.SourceUsers, "u-1", testTime, "staff"),
	)
	server, err := NewServer(&Ports{Document: docs})
	require.NoError(t, err)

	_, output, err := server.handleCheckAccess(ctx, nil, CheckAccessInput{ID: ids[0], Roles: []string{"parent"}})
	require.NoError(t, err)
	assert.True(t, output.Granted)
	assert.Equal(t, "granted", output.Access)

	_, output, err = server.handleCheckAccess(ctx, nil, CheckAccessInput{ID: ids[1], Roles: []string{"student"}})
	require.NoError(t, err)
	assert.False(t, output.Granted)
	assert.Equal(t, "denied", output.Access)

	_, output, err = server.handleCheckAccess(ctx, nil, CheckAccessInput{ID: 999, Admin: true})
	require.NoError(t, err)
	assert.False(t, output.Granted)
}
