package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAtLeast(t *testing.T) {
	t.Parallel()

	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleManager.AtLeast(RoleMember))
	assert.False(t, RoleMember.AtLeast(RoleManager))
	assert.False(t, RoleManager.AtLeast(RoleAdmin))

	// Unknown roles never satisfy anything, in either position.
	assert.False(t, Role("wizard").AtLeast(RoleMember))
	assert.False(t, RoleSuperAdmin.AtLeast(Role("wizard")))
}

func TestSessionEffectiveRole(t *testing.T) {
	t.Parallel()

	// Super admins may act as a lower role.
	s := Session{Role: RoleSuperAdmin, ViewAsRole: RoleMember}
	assert.Equal(t, RoleMember, s.EffectiveRole())

	// Without an override the real role applies.
	s = Session{Role: RoleSuperAdmin}
	assert.Equal(t, RoleSuperAdmin, s.EffectiveRole())

	// Everyone else keeps their real role no matter what the session carries.
	s = Session{Role: RoleMember, ViewAsRole: RoleAdmin}
	assert.Equal(t, RoleMember, s.EffectiveRole())
}

func TestResultAuthenticated(t *testing.T) {
	t.Parallel()

	assert.False(t, Unauthenticated.Authenticated())
	assert.False(t, (Result{}).Authenticated())

	for _, kind := range []Kind{KindSessionUser, KindBearerUser, KindDevBackdoorUser} {
		assert.True(t, (Result{Kind: kind}).Authenticated(), "kind %s", kind)
	}
}
