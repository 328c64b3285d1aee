package user

import "time"

type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"      // Platform operator - all enterprises
	RoleAdminEntreprise Role = "ADMIN_ENTREPRISE" // Manages one enterprise's payroll
	RoleCaissier        Role = "CAISSIER"         // Records payments for one enterprise
	RoleEmploye         Role = "EMPLOYE"          // Regular employee, own payslips only
)

// Roles is the closed set of valid roles. Any value outside it is denied
// everything by the authorization guard.
var Roles = []Role{RoleSuperAdmin, RoleAdminEntreprise, RoleCaissier, RoleEmploye}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdminEntreprise, RoleCaissier, RoleEmploye:
		return true
	}
	return false
}

type User struct {
	ID           string
	EntrepriseID *string // nil for SUPER_ADMIN
	Email        string
	NomComplet   string
	PasswordHash *string
	Role         Role
	Actif        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the authenticated caller as resolved from the JWT claims.
// EntrepriseID is nil only for SUPER_ADMIN.
type Principal struct {
	UserID       string
	Role         Role
	EntrepriseID *string
}

// SameEntreprise reports whether the principal is scoped to entrepriseID.
func (p Principal) SameEntreprise(entrepriseID string) bool {
	return p.EntrepriseID != nil && *p.EntrepriseID == entrepriseID
}
