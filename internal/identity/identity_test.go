package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoles(t *testing.T) {
	id := Identity{InternalID: 5, Subject: "alice", Roles: []Role{RoleUser}}
	assert.True(t, id.IsUser())
	assert.False(t, id.IsAdmin())

	both := Identity{InternalID: 6, Roles: []Role{RoleUser, RoleAdmin}}
	assert.True(t, both.IsUser())
	assert.True(t, both.IsAdmin())

	none := Identity{InternalID: 7, Roles: []Role{"auditor"}}
	assert.False(t, none.IsUser())
	assert.False(t, none.IsAdmin())
}

func TestSystem(t *testing.T) {
	sys := System()
	assert.Equal(t, BrokerSubject, sys.Subject)
	assert.True(t, sys.IsAdmin())
	assert.False(t, sys.IsUser())
}

func TestContextRoundTrip(t *testing.T) {
	id := Identity{InternalID: 42, Subject: "bob", Roles: []Role{RoleAdmin}}
	ctx := WithIdentity(context.Background(), id)

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestContextScoping(t *testing.T) {
	parent := context.Background()
	child := WithIdentity(parent, System())

	_, ok := FromContext(parent)
	assert.False(t, ok, "identity must not leak to the parent context")

	got, ok := FromContext(child)
	require.True(t, ok)
	assert.Equal(t, BrokerSubject, got.Subject)
}
