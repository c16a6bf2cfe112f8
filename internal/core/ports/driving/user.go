package driving

import (
	"context"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// UserService manages the local user directory.
type UserService interface {
	// List returns active users, or suspended users when suspended is set.
	List(ctx context.Context, suspended bool) ([]domain.DirectoryUser, error)

	// Save creates or updates a user.
	Save(ctx context.Context, user domain.DirectoryUser) error

	// Suspend marks an active user as suspended. Their document is
	// removed on the next sync.
	Suspend(ctx context.Context, id string) error
}
