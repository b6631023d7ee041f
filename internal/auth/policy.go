package auth

import (
	"context"
	"fmt"

	"github.com/ahsanauddry027/safetails-sub000/internal/entity"
)

// Session is the authenticated caller, resolved once per request.
type Session struct {
	UserID      string
	Email       string
	Name        string
	Role        entity.Role
	Permissions entity.Permissions
}

func (s *Session) IsAdmin() bool { return s != nil && s.Role == entity.RoleAdmin }
func (s *Session) IsVet() bool   { return s != nil && s.Role == entity.RoleVet }

// Rule is a single authorization predicate.
type Rule func(s *Session) bool

func HasRole(roles ...entity.Role) Rule {
	return func(s *Session) bool {
		for _, r := range roles {
			if s.Role == r {
				return true
			}
		}
		return false
	}
}

func IsOwner(ownerID string) Rule {
	return func(s *Session) bool {
		return ownerID != "" && s.UserID == ownerID
	}
}

// Authorize succeeds when the session satisfies any rule. A nil session is
// ErrUnauthenticated; an unmet rule set is ErrForbidden.
func Authorize(s *Session, rules ...Rule) error {
	if s == nil || s.UserID == "" {
		return entity.ErrUnauthenticated
	}
	if len(rules) == 0 {
		return nil
	}
	for _, rule := range rules {
		if rule(s) {
			return nil
		}
	}
	return fmt.Errorf("%w: role %q", entity.ErrForbidden, s.Role)
}

type sessionKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored by the auth middleware, or nil.
func SessionFrom(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}

func SessionFromUser(u *entity.User) *Session {
	return &Session{
		UserID:      u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Role:        u.Role,
		Permissions: u.Permissions,
	}
}
