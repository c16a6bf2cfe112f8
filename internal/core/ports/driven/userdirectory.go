package driven

import (
	"context"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// UserDirectory enumerates users of the identity system.
type UserDirectory interface {
	// ActiveUsers returns users that are neither suspended nor deleted.
	ActiveUsers(ctx context.Context) ([]domain.DirectoryUser, error)

	// SuspendedUsers returns users that are suspended but not deleted.
	SuspendedUsers(ctx context.Context) ([]domain.DirectoryUser, error)

	// SaveUser creates or updates a user record.
	SaveUser(ctx context.Context, user domain.DirectoryUser) error
}
