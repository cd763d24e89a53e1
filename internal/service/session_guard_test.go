package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceylonscape/tour-backoffice/internal/model"
)

func TestSessionGuardInitialState(t *testing.T) {
	assert.False(t, NewSessionGuard(nil).Authorized())
	assert.False(t, NewSessionGuard(map[string]string{model.RoleAdmin: ""}).Authorized())

	g := NewSessionGuard(map[string]string{model.RoleAdmin: "tok-a"})
	assert.True(t, g.Authorized())
	tok, ok := g.Token(model.RoleAdmin)
	require.True(t, ok)
	assert.Equal(t, "tok-a", tok)
}

func TestSessionGuardInvalidateClearsBothRoles(t *testing.T) {
	g := NewSessionGuard(nil)
	g.Arm(model.RoleAdmin, "tok-a")
	g.Arm(model.RoleSuperAdmin, "tok-s")
	require.True(t, g.Authorized())

	assert.True(t, g.Invalidate())
	assert.False(t, g.Authorized())

	// One signal clears the whole session, not just the caller's role.
	_, ok := g.Token(model.RoleAdmin)
	assert.False(t, ok)
	_, ok = g.Token(model.RoleSuperAdmin)
	assert.False(t, ok)
}

func TestSessionGuardInvalidateIsIdempotent(t *testing.T) {
	g := NewSessionGuard(nil)
	g.Arm(model.RoleAdmin, "tok-a")
	ch := g.Subscribe()

	assert.True(t, g.Invalidate())
	assert.False(t, g.Invalidate())
	assert.False(t, g.Invalidate())

	// Subscribers observe exactly one transition.
	select {
	case <-ch:
	default:
		t.Fatal("expected an invalidation signal")
	}
	select {
	case <-ch:
		t.Fatal("repeated invalidations must not signal again")
	default:
	}
}

func TestSessionGuardHolds(t *testing.T) {
	g := NewSessionGuard(nil)
	assert.False(t, g.Holds("tok-a"))
	assert.False(t, g.Holds(""))

	g.Arm(model.RoleAdmin, "tok-a")
	g.Arm(model.RoleSuperAdmin, "tok-s")
	assert.True(t, g.Holds("tok-a"))
	assert.True(t, g.Holds("tok-s"))
	assert.False(t, g.Holds("not-issued-here"))

	g.Invalidate()
	assert.False(t, g.Holds("tok-a"))
}

func TestSessionGuardRecoversAfterLogin(t *testing.T) {
	g := NewSessionGuard(nil)
	g.Arm(model.RoleAdmin, "tok-1")
	require.True(t, g.Invalidate())

	g.Arm(model.RoleAdmin, "tok-2")
	assert.True(t, g.Authorized())
	tok, ok := g.Token(model.RoleAdmin)
	require.True(t, ok)
	assert.Equal(t, "tok-2", tok)

	// The next invalidation is a real transition again.
	assert.True(t, g.Invalidate())
}
