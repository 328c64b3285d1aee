package employe

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employe is the directory view the payroll core consumes: identity plus the
// compensation snapshot used when bulletins are generated. Hiring, contracts
// and attendance live outside this service.
type Employe struct {
	ID           string
	EntrepriseID string
	NomComplet   string
	Poste        *string
	SalaireBase  decimal.Decimal
	Allocations  decimal.Decimal
	Deductions   decimal.Decimal
	Actif        bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
