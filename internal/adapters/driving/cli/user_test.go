package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/sitesync/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/services"
)

func TestUserCommands(t *testing.T) {
	dir := memory.NewUserDirectory()
	withServices(t, Services{Users: services.NewUserService(dir)})

	out, err := execute(t, "user", "add", "42", "jdoe", "--first", "Jane", "--last", "Doe")
	require.NoError(t, err)
	assert.Contains(t, out, "User 42 saved.")

	out, err = execute(t, "user", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "jdoe")
	assert.Contains(t, out, "Jane Doe")

	out, err = execute(t, "user", "suspend", "42")
	require.NoError(t, err)
	assert.Contains(t, out, "User 42 suspended.")

	active, err := dir.ActiveUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, active)

	out, err = execute(t, "user", "list", "--suspended")
	require.NoError(t, err)
	assert.Contains(t, out, "jdoe")

	_, err = execute(t, "user", "suspend", "99")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserList_Empty(t *testing.T) {
	withServices(t, Services{Users: services.NewUserService(memory.NewUserDirectory())})

	out, err := execute(t, "user", "list")

	require.NoError(t, err)
	assert.Contains(t, out, "No users found.")
}
