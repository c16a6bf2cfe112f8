package quicklinks

import (
	"strings"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

// noiseWords are site-section names that appear in role strings but are
// not roles themselves.
var noiseWords = map[string]struct{}{
	"senior":    {},
	"school":    {},
	"early":     {},
	"learning":  {},
	"centre":    {},
	"southside": {},
	"northside": {},
	"junior":    {},
	"primary":   {},
	"whole":     {},
	"future":    {},
}

var separators = strings.NewReplacer(",", " ", ":", " ", ".*", " ")

// FormatAudience turns a raw roles and years string such as
// "Senior School:Staff,Primary School:Parents 7,8" into audience tokens.
// A bare "*" is kept and expanded to every known role.
func FormatAudience(raw string) domain.Audience {
	fields := strings.Fields(separators.Replace(strings.ToLower(raw)))

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, noise := noiseWords[f]; noise {
			continue
		}
		tokens = append(tokens, f)
		if f == domain.Wildcard {
			tokens = append(tokens, domain.KnownRoles...)
		}
	}

	return domain.NewAudience(tokens...)
}
