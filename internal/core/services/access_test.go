package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/sitesync/internal/core/domain"
)

func accessDoc(source string, audience ...string) *domain.Document {
	return &domain.Document{
		Source:     source,
		ExternalID: "1",
		Audiences:  domain.NewAudience(audience...),
	}
}

func TestAccessEvaluator_QuickLinks(t *testing.T) {
	e := NewAccessEvaluator()

	tests := []struct {
		name      string
		audience  []string
		requester domain.Requester
		want      domain.Access
	}{
		{
			name:      "wildcard grants parent",
			audience:  []string{"*", "staff", "students", "parents", "admin"},
			requester: domain.Requester{Roles: []string{"parent"}},
			want:      domain.AccessGranted,
		},
		{
			name:      "wildcard grants requester without roles",
			audience:  []string{"*"},
			requester: domain.Requester{},
			want:      domain.AccessGranted,
		},
		{
			name:      "exact role",
			audience:  []string{"senior school staff"},
			requester: domain.Requester{Roles: []string{"Senior School Staff"}},
			want:      domain.AccessGranted,
		},
		{
			name:      "token contained in role",
			audience:  []string{"staff"},
			requester: domain.Requester{Roles: []string{"Senior School:Staff"}},
			want:      domain.AccessGranted,
		},
		{
			name:      "no matching role",
			audience:  []string{"staff"},
			requester: domain.Requester{Roles: []string{"Junior School:Students"}},
			want:      domain.AccessDenied,
		},
		{
			name:      "admin override",
			audience:  []string{"staff"},
			requester: domain.Requester{SiteAdmin: true},
			want:      domain.AccessGranted,
		},
		{
			name:      "year match",
			audience:  []string{"7", "8"},
			requester: domain.Requester{Years: []string{"8"}},
			want:      domain.AccessGranted,
		},
		{
			name:      "year mismatch",
			audience:  []string{"7", "8"},
			requester: domain.Requester{Years: []string{"9"}, Roles: []string{"staff"}},
			want:      domain.AccessDenied,
		},
		{
			name:      "year audience ignores admin",
			audience:  []string{"12"},
			requester: domain.Requester{SiteAdmin: true},
			want:      domain.AccessDenied,
		},
		{
			name:      "empty audience",
			audience:  nil,
			requester: domain.Requester{Roles: []string{"staff"}, Years: []string{"7"}},
			want:      domain.AccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Decide(accessDoc(domain.SourceQuickLinks, tt.audience...), tt.requester)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccessEvaluator_Users(t *testing.T) {
	e := NewAccessEvaluator()
	doc := accessDoc(domain.SourceUsers, "staff")

	assert.Equal(t, domain.AccessDenied, e.Decide(doc, domain.Requester{Roles: []string{"student"}}))
	assert.Equal(t, domain.AccessDenied, e.Decide(doc, domain.Requester{Roles: []string{"students"}}))
	assert.Equal(t, domain.AccessGranted, e.Decide(doc, domain.Requester{Roles: []string{"teaching_staff"}}))
	assert.Equal(t, domain.AccessGranted, e.Decide(doc, domain.Requester{SiteAdmin: true}))

	noStaff := accessDoc(domain.SourceUsers, "students")
	assert.Equal(t, domain.AccessDenied, e.Decide(noStaff, domain.Requester{Roles: []string{"staff"}}))
}

func TestAccessEvaluator_Sites(t *testing.T) {
	e := NewAccessEvaluator()
	doc := accessDoc("site:a", "students", "parents")

	assert.Equal(t, domain.AccessGranted, e.Decide(doc, domain.Requester{Roles: []string{"Senior School:Students"}}))
	assert.Equal(t, domain.AccessGranted, e.Decide(doc, domain.Requester{Roles: []string{"guest", "parents"}}))
	assert.Equal(t, domain.AccessDenied, e.Decide(doc, domain.Requester{Roles: []string{"staff"}}))
	assert.Equal(t, domain.AccessDenied, e.Decide(doc, domain.Requester{Roles: []string{"visitor"}}))
	assert.Equal(t, domain.AccessGranted, e.Decide(doc, domain.Requester{Roles: []string{"staff_parents"}}),
		"the last keyword in a role decides its family")
	assert.Equal(t, domain.AccessDenied, e.Decide(doc, domain.Requester{Roles: []string{"parents_staff"}}))
	assert.Equal(t, domain.AccessDenied, e.Decide(doc, domain.Requester{SiteAdmin: true}),
		"admin does not override site audiences")
}

func TestAccessEvaluator_FailsClosed(t *testing.T) {
	e := NewAccessEvaluator()

	assert.Equal(t, domain.AccessDenied, e.Decide(nil, domain.Requester{SiteAdmin: true}))
	assert.Equal(t, domain.AccessDenied, e.Decide(accessDoc("site:a"), domain.Requester{Roles: []string{"staff"}}))
	assert.Equal(t, domain.AccessDenied, e.Decide(accessDoc("site:a", "staff"), domain.Requester{}))
}
