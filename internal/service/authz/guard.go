package authz

import (
	"github.com/gestipay/paie-backend-go/internal/domain/user"
)

// Guard centralizes the role and tenant checks the payroll services share.
// Checks run role-first: a caller whose role never qualifies is refused
// before any data is loaded, regardless of which record the call targets.
type Guard struct{}

func NewGuard() *Guard {
	return &Guard{}
}

// CanManageCycles refuses every role that may not create, modify or
// transition pay cycles.
func (g *Guard) CanManageCycles(p user.Principal) error {
	switch p.Role {
	case user.RoleSuperAdmin, user.RoleAdminEntreprise:
		return nil
	case user.RoleCaissier, user.RoleEmploye:
		return user.ErrForbidden
	default:
		return user.ErrForbidden
	}
}

// CanViewCycles refuses every role that may not read cycles and their
// bulletins. Cashiers need read access to record payments.
func (g *Guard) CanViewCycles(p user.Principal) error {
	switch p.Role {
	case user.RoleSuperAdmin, user.RoleAdminEntreprise, user.RoleCaissier:
		return nil
	case user.RoleEmploye:
		return user.ErrForbidden
	default:
		return user.ErrForbidden
	}
}

// CanRecordPayments refuses every role that may not create or cancel
// payments.
func (g *Guard) CanRecordPayments(p user.Principal) error {
	switch p.Role {
	case user.RoleSuperAdmin, user.RoleAdminEntreprise, user.RoleCaissier:
		return nil
	case user.RoleEmploye:
		return user.ErrForbidden
	default:
		return user.ErrForbidden
	}
}

// AllowedFor checks tenant scope after the role check passed: SUPER_ADMIN
// reaches every enterprise, everyone else only their own.
func (g *Guard) AllowedFor(p user.Principal, entrepriseID string) error {
	if p.Role == user.RoleSuperAdmin {
		return nil
	}
	if p.SameEntreprise(entrepriseID) {
		return nil
	}
	return user.ErrForbidden
}
