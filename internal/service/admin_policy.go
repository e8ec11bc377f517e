package service

import (
	"context"
	"strings"

	"quizbook/internal/domain"
)

// AdminPolicy decides which identities may modify quizzes.
type AdminPolicy interface {
	IsAdmin(email string) bool
}

type allowListPolicy struct {
	emails map[string]struct{}
}

// NewAdminPolicy returns a policy that admits the listed emails,
// compared case-insensitively.
func NewAdminPolicy(emails []string) AdminPolicy {
	p := &allowListPolicy{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = strings.ToLower(strings.TrimSpace(e)); e != "" {
			p.emails[e] = struct{}{}
		}
	}
	return p
}

func (p *allowListPolicy) IsAdmin(email string) bool {
	_, ok := p.emails[strings.ToLower(strings.TrimSpace(email))]
	return ok
}

// authorizeAdmin fails with UNAUTHORIZED when ctx carries no identity and
// FORBIDDEN when the identity is not an administrator.
func authorizeAdmin(ctx context.Context, policy AdminPolicy) (domain.Identity, error) {
	id, ok := domain.IdentityFromContext(ctx)
	if !ok {
		return domain.Identity{}, domain.NewUnauthorizedError("Authentication required")
	}
	if policy == nil || !policy.IsAdmin(id.Email) {
		return domain.Identity{}, domain.NewForbiddenError("Administrator rights required")
	}
	return id, nil
}
