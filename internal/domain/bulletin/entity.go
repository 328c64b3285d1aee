package bulletin

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatutPaiement is the settlement state of a bulletin. It is driven by
// payment creation/update, never set directly by callers.
type StatutPaiement string

const (
	StatutPending StatutPaiement = "PENDING"
	StatutPartial StatutPaiement = "PARTIAL"
	StatutPaid    StatutPaiement = "PAID"
	StatutFailed  StatutPaiement = "FAILED"
)

// Bulletin is one payslip: a settlement obligation for one employee in one
// cycle. (cycle_id, employe_id) is unique. Amounts are snapshotted from the
// employee's compensation at generation time; TotalAPayer is computed once
// and never recomputed, even if the employee's compensation later changes.
type Bulletin struct {
	ID             string
	CycleID        string
	EntrepriseID   string
	EmployeID      string
	Numero         string // unique bulletin number, e.g. BUL-202401-1a2b3c
	PeriodeDebut   time.Time
	PeriodeFin     time.Time
	SalaireBase    decimal.Decimal
	Allocations    decimal.Decimal
	Deductions     decimal.Decimal
	TotalAPayer    decimal.Decimal
	StatutPaiement StatutPaiement
	GeneratedAt    time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeNom *string
}
