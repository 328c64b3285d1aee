package paiement

import (
	"time"

	"github.com/gestipay/paie-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreatePaiementRequest struct {
	BulletinID   string          `json:"-"`
	Montant      decimal.Decimal `json:"montant"`
	Mode         string          `json:"mode"`
	DatePaiement *string         `json:"date_paiement,omitempty"` // YYYY-MM-DD, defaults to today
	Reference    *string         `json:"reference,omitempty"`
}

func (r *CreatePaiementRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Montant.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "montant", Message: "must be positive"})
	}
	if !Mode(r.Mode).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "must be ESPECES, VIREMENT, ORANGE_MONEY or WAVE"})
	}
	if r.DatePaiement != nil {
		if _, ok := validator.IsValidDate(*r.DatePaiement); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_paiement", Message: "must be a date in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdatePaiementRequest corrects a recorded payment. Absent fields keep
// their current value; the bulletin's settlement status is re-derived after
// every correction.
type UpdatePaiementRequest struct {
	ID           string           `json:"-"`
	Montant      *decimal.Decimal `json:"montant,omitempty"`
	Mode         *string          `json:"mode,omitempty"`
	DatePaiement *string          `json:"date_paiement,omitempty"` // YYYY-MM-DD
	Reference    *string          `json:"reference,omitempty"`
}

func (r *UpdatePaiementRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Montant != nil && !r.Montant.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "montant", Message: "must be positive"})
	}
	if r.Mode != nil && !Mode(*r.Mode).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "mode", Message: "must be ESPECES, VIREMENT, ORANGE_MONEY or WAVE"})
	}
	if r.DatePaiement != nil {
		if _, ok := validator.IsValidDate(*r.DatePaiement); !ok {
			errs = append(errs, validator.ValidationError{Field: "date_paiement", Message: "must be a date in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PaiementResponse struct {
	ID             string          `json:"id"`
	BulletinID     string          `json:"bulletin_id"`
	EntrepriseID   string          `json:"entreprise_id"`
	Montant        decimal.Decimal `json:"montant"`
	DatePaiement   string          `json:"date_paiement"`
	Mode           string          `json:"mode"`
	Statut         string          `json:"statut"`
	Reference      *string         `json:"reference,omitempty"`
	StatutBulletin string          `json:"statut_bulletin"`
}

func ToResponse(p Paiement, statutBulletin string) PaiementResponse {
	return PaiementResponse{
		ID:             p.ID,
		BulletinID:     p.BulletinID,
		EntrepriseID:   p.EntrepriseID,
		Montant:        p.Montant,
		DatePaiement:   p.DatePaiement.Format("2006-01-02"),
		Mode:           string(p.Mode),
		Statut:         string(p.Statut),
		Reference:      p.Reference,
		StatutBulletin: statutBulletin,
	}
}

// ParseDatePaiement returns the requested payment date, defaulting to now.
func (r *CreatePaiementRequest) ParseDatePaiement() time.Time {
	if r.DatePaiement != nil {
		if d, ok := validator.IsValidDate(*r.DatePaiement); ok {
			return d
		}
	}
	return time.Now()
}
