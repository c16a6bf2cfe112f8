package services

import (
	"strings"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// AccessEvaluator decides whether a requester may see a document.
// It holds no state and is safe for concurrent use.
type AccessEvaluator struct{}

// NewAccessEvaluator creates an access evaluator.
func NewAccessEvaluator() *AccessEvaluator {
	return &AccessEvaluator{}
}

// Decide applies the policy of the document's source. Unrecognised roles
// never match, so a requester without a known role is denied unless a
// wildcard or admin override applies.
func (e *AccessEvaluator) Decide(doc *domain.Document, r domain.Requester) domain.Access {
	if doc == nil {
		return domain.AccessDenied
	}

	var granted bool
	switch doc.Source {
	case domain.SourceQuickLinks:
		granted = quickLinkAccess(doc.Audiences, r)
	case domain.SourceUsers:
		granted = r.SiteAdmin || (hasFamily(r.Roles, domain.RoleStaff) && doc.Audiences.Contains(string(domain.RoleStaff)))
	default:
		granted = familyAccess(doc.Audiences, r.Roles)
	}

	if granted {
		return domain.AccessGranted
	}
	return domain.AccessDenied
}

// quickLinkAccess treats a purely numeric audience as year levels and any
// other audience as role patterns.
func quickLinkAccess(audience domain.Audience, r domain.Requester) bool {
	if isYearAudience(audience) {
		for _, y := range r.Years {
			if audience.Contains(strings.TrimSpace(y)) {
				return true
			}
		}
		return false
	}

	if audience.Contains(domain.Wildcard) || r.SiteAdmin {
		return true
	}

	for _, role := range r.Roles {
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		for _, token := range audience {
			if token == role || strings.Contains(role, token) {
				return true
			}
		}
	}
	return false
}

func isYearAudience(audience domain.Audience) bool {
	if len(audience) == 0 {
		return false
	}
	for _, token := range audience {
		for _, c := range token {
			if c < '0' || c > '9' {
				return false
			}
		}
	}
	return true
}

// familyAccess grants when a requester role family is in the audience.
func familyAccess(audience domain.Audience, roles []string) bool {
	for _, role := range roles {
		f := domain.FamilyOf(role)
		if f != domain.RoleUnknown && audience.Contains(string(f)) {
			return true
		}
	}
	return false
}

func hasFamily(roles []string, family domain.RoleFamily) bool {
	for _, role := range roles {
		if domain.FamilyOf(role) == family {
			return true
		}
	}
	return false
}
