// Package identity carries the caller's resolved identity through the call
// chain as an explicit context value. Broker-originated work runs under a
// fixed synthetic identity scoped to a single message; the value is never
// stored in process-wide state, so it cannot leak between units of work.
package identity

import (
	"context"
	"slices"
)

// Role is a recognized caller role.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// BrokerSubject names the synthetic identity used for broker-originated work.
const BrokerSubject = "broker-system"

// Identity is the per-call caller identity.
type Identity struct {
	InternalID int64
	Subject    string
	Roles      []Role
}

// HasRole reports whether the identity carries the given role.
func (id Identity) HasRole(r Role) bool {
	return slices.Contains(id.Roles, r)
}

// IsAdmin reports whether the identity carries the admin role.
func (id Identity) IsAdmin() bool { return id.HasRole(RoleAdmin) }

// IsUser reports whether the identity carries the user role.
func (id Identity) IsUser() bool { return id.HasRole(RoleUser) }

// System returns the synthetic admin identity for broker-originated work.
func System() Identity {
	return Identity{
		InternalID: 0,
		Subject:    BrokerSubject,
		Roles:      []Role{RoleAdmin},
	}
}

type ctxKey struct{}

// WithIdentity returns a child context carrying the given identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext extracts the caller identity, if any, from the context.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
