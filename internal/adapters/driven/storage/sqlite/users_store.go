package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
)

// userDirectory implements driven.UserDirectory.
type userDirectory struct {
	store *Store
}

var _ driven.UserDirectory = (*userDirectory)(nil)

const userColumns = `id, username, firstname, lastname, email, suspended, timecreated, timemodified`

// ActiveUsers returns users that are neither suspended nor deleted.
func (s *userDirectory) ActiveUsers(ctx context.Context) ([]domain.DirectoryUser, error) {
	return s.query(ctx, "SELECT "+userColumns+" FROM users WHERE suspended = 0 AND deleted = 0 ORDER BY id")
}

// SuspendedUsers returns suspended users that are not deleted.
func (s *userDirectory) SuspendedUsers(ctx context.Context) ([]domain.DirectoryUser, error) {
	return s.query(ctx, "SELECT "+userColumns+" FROM users WHERE suspended = 1 AND deleted = 0 ORDER BY id")
}

// SaveUser creates or updates a user record.
func (s *userDirectory) SaveUser(ctx context.Context, user domain.DirectoryUser) error {
	if user.ID == "" || user.Username == "" {
		return domain.ErrInvalidInput
	}

	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO users (id, username, firstname, lastname, email, suspended, timecreated, timemodified)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			firstname = excluded.firstname,
			lastname = excluded.lastname,
			email = excluded.email,
			suspended = excluded.suspended,
			timemodified = excluded.timemodified
	`, user.ID, user.Username, user.FirstName, user.LastName, user.Email, boolToInt(user.Suspended),
		unixSeconds(user.CreatedAt), unixSeconds(user.ModifiedAt))
	if err != nil {
		return fmt.Errorf("saving user: %w", err)
	}
	return nil
}

func (s *userDirectory) query(ctx context.Context, query string) ([]domain.DirectoryUser, error) {
	rows, err := s.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []domain.DirectoryUser //nolint:prealloc // size unknown from query
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	return users, nil
}

func scanUser(rows *sql.Rows) (*domain.DirectoryUser, error) {
	var user domain.DirectoryUser
	var suspended int
	var created, modified int64

	if err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email,
		&suspended, &created, &modified); err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	user.Suspended = suspended == 1
	user.CreatedAt = fromUnix(created)
	user.ModifiedAt = fromUnix(modified)
	return &user, nil
}
