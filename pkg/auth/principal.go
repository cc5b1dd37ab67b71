package auth

import (
	"context"
	"fmt"
	apperrors "hotelbooking/pkg/errors"
)

type Role string

const (
	RoleClient  Role = "client"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleManager, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Principal is the authenticated caller as reported by the identity provider.
type Principal struct {
	ID   string
	Role Role
}

// Authorize is the single policy check every booking operation runs on entry.
// Roles do not inherit from each other: an admin holds no booking permissions.
func Authorize(p *Principal, required Role) error {
	if p == nil || p.ID == "" {
		return apperrors.Unauthorized("Authentication required")
	}
	if p.Role != required {
		return apperrors.Forbidden(fmt.Sprintf("Role %q is not allowed to perform this operation", p.Role))
	}
	return nil
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns nil when the request carried no valid credentials.
func FromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalKey{}).(*Principal)
	return p
}
