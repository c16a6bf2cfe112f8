package users

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/custodia-labs/sitesync/internal/core/domain"
	"github.com/custodia-labs/sitesync/internal/core/ports/driven"
	"github.com/custodia-labs/sitesync/internal/logger"
)

// ConnectorType is the type identifier of the user connector.
const ConnectorType = "users"

// Ensure Connector implements the interface.
var _ driven.Connector = (*Connector)(nil)

// Connector builds documents from the user directory.
type Connector struct {
	directory  driven.UserDirectory
	profileURL string
}

// New creates a user connector. profileURL is a fmt template receiving the
// user id, e.g. "https://lms.example.org/user/profile.php?id=%s".
func New(directory driven.UserDirectory, profileURL string) *Connector {
	return &Connector{directory: directory, profileURL: profileURL}
}

// Type returns the connector type identifier.
func (c *Connector) Type() string {
	return ConnectorType
}

// Snapshots returns one snapshot of all active users. Suspended users are
// listed in Remove so they are deleted even while other users remain.
func (c *Connector) Snapshots(ctx context.Context) ([]domain.Snapshot, error) {
	snap := domain.Snapshot{Source: domain.SourceUsers, Origin: "user directory"}

	active, err := c.directory.ActiveUsers(ctx)
	if err != nil {
		snap.Err = fmt.Errorf("listing active users: %w", err)
		logger.Error("users: %v", snap.Err)
		return []domain.Snapshot{snap}, nil
	}

	suspended, err := c.directory.SuspendedUsers(ctx)
	if err != nil {
		snap.Err = fmt.Errorf("listing suspended users: %w", err)
		logger.Error("users: %v", snap.Err)
		return []domain.Snapshot{snap}, nil
	}

	snap.Documents = make([]domain.Document, 0, len(active))
	for i := range active {
		snap.Documents = append(snap.Documents, c.Document(&active[i]))
	}

	for _, u := range suspended {
		snap.Remove = append(snap.Remove, u.ID)
	}

	logger.Debug("users: %d active, %d suspended", len(active), len(suspended))
	return []domain.Snapshot{snap}, nil
}

// Document converts one user.
func (c *Connector) Document(u *domain.DirectoryUser) domain.Document {
	return domain.Document{
		Source:     domain.SourceUsers,
		ExternalID: u.ID,
		Title:      u.DisplayName(),
		URL:        c.url(u.ID),
		Audiences:  domain.NewAudience(string(domain.RoleStaff)),
		Content:    IdentityHash(u),
		CreatedAt:  u.CreatedAt,
		ModifiedAt: u.ModifiedAt,
	}
}

func (c *Connector) url(id string) string {
	if c.profileURL == "" {
		return ""
	}
	if !strings.Contains(c.profileURL, "%") {
		return c.profileURL + id
	}
	return fmt.Sprintf(c.profileURL, id)
}

// IdentityHash is the hex SHA-256 of the user's identity fields.
func IdentityHash(u *domain.DirectoryUser) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{
		u.ID, u.Username, u.FirstName, u.LastName, u.Email,
	}, "\x1f")))
	return hex.EncodeToString(sum[:])
}
