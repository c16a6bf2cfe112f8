package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
)

// Ensure UserDirectory implements the interface.
var _ driven.UserDirectory = (*UserDirectory)(nil)

// UserDirectory is an in-memory implementation of driven.UserDirectory.
type UserDirectory struct {
	mu    sync.RWMutex
	users map[string]domain.DirectoryUser
}

// NewUserDirectory creates a directory seeded with users.
func NewUserDirectory(users ...domain.DirectoryUser) *UserDirectory {
	d := &UserDirectory{users: make(map[string]domain.DirectoryUser, len(users))}
	for _, u := range users {
		d.users[u.ID] = u
	}
	return d
}

// ActiveUsers returns users that are not suspended, ordered by ID.
func (d *UserDirectory) ActiveUsers(_ context.Context) ([]domain.DirectoryUser, error) {
	return d.list(false), nil
}

// SuspendedUsers returns suspended users, ordered by ID.
func (d *UserDirectory) SuspendedUsers(_ context.Context) ([]domain.DirectoryUser, error) {
	return d.list(true), nil
}

// SaveUser creates or updates a user.
func (d *UserDirectory) SaveUser(_ context.Context, user domain.DirectoryUser) error {
	if user.ID == "" || user.Username == "" {
		return domain.ErrInvalidInput
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.users[user.ID] = user
	return nil
}

func (d *UserDirectory) list(suspended bool) []domain.DirectoryUser {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []domain.DirectoryUser
	for _, u := range d.users {
		if u.Suspended == suspended {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
