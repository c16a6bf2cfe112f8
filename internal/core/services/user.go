package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/core/ports/driving"
)

// Ensure UserService implements the interface.
var _ driving.UserService = (*UserService)(nil)

// UserService manages the user directory the users connector reads.
type UserService struct {
	directory driven.UserDirectory
	now       func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(directory driven.UserDirectory) *UserService {
	return &UserService{directory: directory, now: time.Now}
}

// List returns active or suspended users.
func (s *UserService) List(ctx context.Context, suspended bool) ([]domain.DirectoryUser, error) {
	if suspended {
		return s.directory.SuspendedUsers(ctx)
	}
	return s.directory.ActiveUsers(ctx)
}

// Save validates and stores a user, stamping its timestamps.
func (s *UserService) Save(ctx context.Context, user domain.DirectoryUser) error {
	user.ID = strings.TrimSpace(user.ID)
	user.Username = strings.TrimSpace(user.Username)
	if user.ID == "" || user.Username == "" {
		return fmt.Errorf("user id and username are required: %w", domain.ErrInvalidInput)
	}

	now := s.now().Truncate(time.Second)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.ModifiedAt = now

	return s.directory.SaveUser(ctx, user)
}

// Suspend marks an active user as suspended.
func (s *UserService) Suspend(ctx context.Context, id string) error {
	users, err := s.directory.ActiveUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID == id {
			u.Suspended = true
			u.ModifiedAt = s.now().Truncate(time.Second)
			return s.directory.SaveUser(ctx, u)
		}
	}
	return fmt.Errorf("active user %q: %w", id, domain.ErrNotFound)
}
