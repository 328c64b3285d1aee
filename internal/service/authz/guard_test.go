package authz

import (
	"testing"

	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestCanManageCycles(t *testing.T) {
	guard := NewGuard()

	tests := []struct {
		role    user.Role
		wantErr bool
	}{
		{user.RoleSuperAdmin, false},
		{user.RoleAdminEntreprise, false},
		{user.RoleCaissier, true},
		{user.RoleEmploye, true},
		{user.Role("UNKNOWN"), true},
	}

	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			err := guard.CanManageCycles(user.Principal{UserID: "u1", Role: tt.role})
			if tt.wantErr {
				assert.ErrorIs(t, err, user.ErrForbidden)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanViewCycles(t *testing.T) {
	guard := NewGuard()

	assert.NoError(t, guard.CanViewCycles(user.Principal{Role: user.RoleCaissier}))
	assert.ErrorIs(t, guard.CanViewCycles(user.Principal{Role: user.RoleEmploye}), user.ErrForbidden)
}

func TestAllowedFor(t *testing.T) {
	guard := NewGuard()

	superAdmin := user.Principal{UserID: "u1", Role: user.RoleSuperAdmin}
	assert.NoError(t, guard.AllowedFor(superAdmin, "ent-1"))
	assert.NoError(t, guard.AllowedFor(superAdmin, "ent-2"))

	admin := user.Principal{UserID: "u2", Role: user.RoleAdminEntreprise, EntrepriseID: strPtr("ent-1")}
	assert.NoError(t, guard.AllowedFor(admin, "ent-1"))
	assert.ErrorIs(t, guard.AllowedFor(admin, "ent-2"), user.ErrForbidden)

	// A principal without an enterprise scope reaches nothing unless SUPER_ADMIN.
	orphan := user.Principal{UserID: "u3", Role: user.RoleAdminEntreprise}
	assert.ErrorIs(t, guard.AllowedFor(orphan, "ent-1"), user.ErrForbidden)
}
