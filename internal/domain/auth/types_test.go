package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole_KnownValues(t *testing.T) {
	assert.Equal(t, RoleDonor, ParseRole("donor"))
	assert.Equal(t, RoleVolunteer, ParseRole("volunteer"))
	assert.Equal(t, RoleAdmin, ParseRole("admin"))
}

func TestParseRole_UnknownFallsBackToDonor(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"unknown role", "superuser"},
		{"wrong case", "Admin"},
		{"whitespace", " admin"},
		{"garbage", "<script>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, RoleDonor, ParseRole(tt.input))
		})
	}
}

func TestRole_Capabilities(t *testing.T) {
	assert.False(t, RoleDonor.AtLeastVolunteer())
	assert.True(t, RoleVolunteer.AtLeastVolunteer())
	assert.True(t, RoleAdmin.AtLeastVolunteer())

	assert.False(t, RoleDonor.IsAdmin())
	assert.False(t, RoleVolunteer.IsAdmin())
	assert.True(t, RoleAdmin.IsAdmin())
}

func TestSnapshot_Authenticated(t *testing.T) {
	id := &Identity{Email: "a@x.com"}

	assert.True(t, Snapshot{Identity: id, State: StateAuthenticated}.Authenticated())
	assert.False(t, Snapshot{Identity: nil, State: StateAuthenticated}.Authenticated())
	assert.False(t, Snapshot{Identity: id, State: StateResolving}.Authenticated())
	assert.False(t, Snapshot{State: StateAnonymous}.Authenticated())
}
