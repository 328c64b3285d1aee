package bulletin

import (
	"time"

	"github.com/gestipay/paie-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UpdateBulletinRequest corrects the amounts of a bulletin that has no
// payments yet. Absent fields keep their current value.
type UpdateBulletinRequest struct {
	ID          string           `json:"-"`
	SalaireBase *decimal.Decimal `json:"salaire_base,omitempty"`
	Allocations *decimal.Decimal `json:"allocations,omitempty"`
	Deductions  *decimal.Decimal `json:"deductions,omitempty"`
}

func (r *UpdateBulletinRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.SalaireBase != nil && r.SalaireBase.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "salaire_base", Message: "must not be negative"})
	}
	if r.Allocations != nil && r.Allocations.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "allocations", Message: "must not be negative"})
	}
	if r.Deductions != nil && r.Deductions.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deductions", Message: "must not be negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulletinResponse struct {
	ID             string          `json:"id"`
	CycleID        string          `json:"cycle_id"`
	EntrepriseID   string          `json:"entreprise_id"`
	EmployeID      string          `json:"employe_id"`
	EmployeNom     *string         `json:"employe_nom,omitempty"`
	Numero         string          `json:"numero"`
	PeriodeDebut   string          `json:"periode_debut"`
	PeriodeFin     string          `json:"periode_fin"`
	SalaireBase    decimal.Decimal `json:"salaire_base"`
	Allocations    decimal.Decimal `json:"allocations"`
	Deductions     decimal.Decimal `json:"deductions"`
	TotalAPayer    decimal.Decimal `json:"total_a_payer"`
	StatutPaiement string          `json:"statut_paiement"`
	GeneratedAt    string          `json:"generated_at"`
}

func ToResponse(b Bulletin) BulletinResponse {
	return BulletinResponse{
		ID:             b.ID,
		CycleID:        b.CycleID,
		EntrepriseID:   b.EntrepriseID,
		EmployeID:      b.EmployeID,
		EmployeNom:     b.EmployeNom,
		Numero:         b.Numero,
		PeriodeDebut:   b.PeriodeDebut.Format("2006-01-02"),
		PeriodeFin:     b.PeriodeFin.Format("2006-01-02"),
		SalaireBase:    b.SalaireBase,
		Allocations:    b.Allocations,
		Deductions:     b.Deductions,
		TotalAPayer:    b.TotalAPayer,
		StatutPaiement: string(b.StatutPaiement),
		GeneratedAt:    b.GeneratedAt.Format(time.RFC3339),
	}
}

func ToResponses(bulletins []Bulletin) []BulletinResponse {
	result := make([]BulletinResponse, 0, len(bulletins))
	for _, b := range bulletins {
		result = append(result, ToResponse(b))
	}
	return result
}
