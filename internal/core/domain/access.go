package domain

import "strings"

// Access is the outcome of an access check.
type Access int

const (
	// AccessDenied hides the document from the requester.
	AccessDenied Access = iota

	// AccessGranted shows the document to the requester.
	AccessGranted
)

// String returns a human-readable form.
func (a Access) String() string {
	if a == AccessGranted {
		return "granted"
	}
	return "denied"
}

// Requester describes the user a search is run for.
// Attributes come from the identity system's profile fields.
type Requester struct {
	// Roles are raw campus role strings, e.g. "Senior School:Staff".
	Roles []string

	// Years are year levels, e.g. "7".
	Years []string

	// SiteAdmin overrides role checks where the policy allows it.
	SiteAdmin bool
}

// ParseList splits a comma separated profile field, trimming blanks.
func ParseList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// RoleFamily is the closed set of role tags audiences are written in.
type RoleFamily string

// Role families.
const (
	RoleStaff    RoleFamily = "staff"
	RoleStudents RoleFamily = "students"
	RoleParents  RoleFamily = "parents"

	// RoleUnknown is assigned to unrecognised roles. It never matches.
	RoleUnknown RoleFamily = ""
)

// roleFamilies maps the keyword found in a raw role to its family.
var roleFamilies = []struct {
	keyword string
	family  RoleFamily
}{
	{"staff", RoleStaff},
	{"students", RoleStudents},
	{"parents", RoleParents},
}

// FamilyOf reduces a raw role string to its family,
// e.g. "teaching_staff" to RoleStaff. When the role contains several
// keywords the last one wins, so "staff_parents" is RoleParents.
func FamilyOf(role string) RoleFamily {
	role = strings.ToLower(role)
	family, at := RoleUnknown, -1
	for _, rf := range roleFamilies {
		if i := strings.LastIndex(role, rf.keyword); i > at {
			family, at = rf.family, i
		}
	}
	return family
}

// KnownRoles is what a bare "*" expands to in quick-link audiences.
var KnownRoles = []string{"staff", "students", "parents", "admin"}

// Wildcard grants a quick link to everyone.
const Wildcard = "*"
