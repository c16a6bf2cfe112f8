package domain

import "time"

// LinkConfig is the decoded quick-links configuration.
type LinkConfig struct {
	// CreatedAt and ModifiedAt belong to the configuration as a whole
	// and are applied to every link.
	CreatedAt  time.Time
	ModifiedAt time.Time

	Links []QuickLink
}

// QuickLink is a single configured link.
type QuickLink struct {
	ID    string
	Label string
	URL   string

	// Roles is the raw campus roles field, e.g. "Senior School:Staff,*".
	Roles string

	// Year is the raw year-level field, e.g. "7,8".
	Year string
}

// DirectoryUser is a user record from the user directory.
type DirectoryUser struct {
	ID         string
	Username   string
	FirstName  string
	LastName   string
	Email      string
	Suspended  bool
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// DisplayName returns "First Last", falling back to the username.
func (u *DirectoryUser) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	default:
		return u.Username
	}
}
