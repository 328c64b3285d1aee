package paycycle

import (
	"time"

	"github.com/gestipay/paie-backend-go/internal/pkg/validator"
)

type CreateCycleRequest struct {
	EntrepriseID string  `json:"entreprise_id,omitempty"` // ignored for ADMIN_ENTREPRISE, required for SUPER_ADMIN
	Nom          string  `json:"nom"`
	Description  *string `json:"description,omitempty"`
	PeriodeDebut string  `json:"periode_debut"` // YYYY-MM-DD
	PeriodeFin   string  `json:"periode_fin"`   // YYYY-MM-DD
	Frequence    string  `json:"frequence"`
}

func (r *CreateCycleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Nom) {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "is required"})
	}
	debut, okDebut := validator.IsValidDate(r.PeriodeDebut)
	if !okDebut {
		errs = append(errs, validator.ValidationError{Field: "periode_debut", Message: "must be a date in YYYY-MM-DD format"})
	}
	fin, okFin := validator.IsValidDate(r.PeriodeFin)
	if !okFin {
		errs = append(errs, validator.ValidationError{Field: "periode_fin", Message: "must be a date in YYYY-MM-DD format"})
	}
	if okDebut && okFin && !debut.Before(fin) {
		errs = append(errs, validator.ValidationError{Field: "periode_fin", Message: "must be after periode_debut"})
	}
	if !Frequence(r.Frequence).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "frequence", Message: "must be MENSUELLE, HEBDOMADAIRE or JOURNALIERE"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Periode returns the parsed period bounds. Validate must have passed.
func (r *CreateCycleRequest) Periode() (time.Time, time.Time) {
	debut, _ := validator.IsValidDate(r.PeriodeDebut)
	fin, _ := validator.IsValidDate(r.PeriodeFin)
	return debut, fin
}

type UpdateCycleRequest struct {
	ID          string
	Nom         *string `json:"nom,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateCycleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Nom != nil && validator.IsEmpty(*r.Nom) {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "must not be empty"})
	}
	if r.Nom == nil && r.Description == nil {
		errs = append(errs, validator.ValidationError{Field: "body", Message: "no updatable fields provided"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CycleResponse struct {
	ID               string  `json:"id"`
	EntrepriseID     string  `json:"entreprise_id"`
	Nom              string  `json:"nom"`
	Description      *string `json:"description,omitempty"`
	PeriodeDebut     string  `json:"periode_debut"`
	PeriodeFin       string  `json:"periode_fin"`
	Statut           string  `json:"statut"`
	StatutValidation string  `json:"statut_validation"`
	Frequence        string  `json:"frequence"`
	CreatedAt        string  `json:"created_at"`
}

func ToResponse(c PayCycle) CycleResponse {
	return CycleResponse{
		ID:               c.ID,
		EntrepriseID:     c.EntrepriseID,
		Nom:              c.Nom,
		Description:      c.Description,
		PeriodeDebut:     c.PeriodeDebut.Format("2006-01-02"),
		PeriodeFin:       c.PeriodeFin.Format("2006-01-02"),
		Statut:           string(c.Statut),
		StatutValidation: string(c.StatutValidation),
		Frequence:        string(c.Frequence),
		CreatedAt:        c.CreatedAt.Format(time.RFC3339),
	}
}

type CanPayResponse struct {
	CanPay bool `json:"can_pay"`
}
