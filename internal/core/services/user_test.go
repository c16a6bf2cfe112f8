package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesync/internal/core/domain"
)

func TestUserService_SaveAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserDirectory())
	svc.now = func() time.Time { return baseTime.Add(500 * time.Millisecond) }

	require.NoError(t, svc.Save(ctx, domain.DirectoryUser{ID: " 42 ", Username: "jdoe", FirstName: "Jane"}))

	users, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "42", users[0].ID)
	assert.Equal(t, baseTime, users[0].CreatedAt)
	assert.Equal(t, baseTime, users[0].ModifiedAt)

	err = svc.Save(ctx, domain.DirectoryUser{ID: "43"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserService_Suspend(t *testing.T) {
	ctx := context.Background()
	svc := NewUserService(memory.NewUserDirectory(
		domain.DirectoryUser{ID: "1", Username: "a"},
		domain.DirectoryUser{ID: "2", Username: "b"},
	))

	require.NoError(t, svc.Suspend(ctx, "1"))

	active, err := svc.List(ctx, false)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "2", active[0].ID)

	suspended, err := svc.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, suspended, 1)
	assert.Equal(t, "1", suspended[0].ID)

	assert.ErrorIs(t, svc.Suspend(ctx, "1"), domain.ErrNotFound)
	assert.ErrorIs(t, svc.Suspend(ctx, "99"), domain.ErrNotFound)
}
