package entreprise

import "time"

// Entreprise is the tenant boundary. Every cycle, bulletin, payment and
// employee belongs to exactly one enterprise.
type Entreprise struct {
	ID        string
	Nom       string
	Adresse   *string
	Devise    string // ISO currency code, e.g. "XOF"
	CreatedAt time.Time
	UpdatedAt time.Time
}
