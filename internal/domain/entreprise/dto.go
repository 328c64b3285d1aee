package entreprise

import (
	"time"

	"github.com/gestipay/paie-backend-go/internal/pkg/validator"
)

type CreateEntrepriseRequest struct {
	Nom     string  `json:"nom"`
	Adresse *string `json:"adresse,omitempty"`
	Devise  string  `json:"devise"`
}

func (r *CreateEntrepriseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Nom) {
		errs = append(errs, validator.ValidationError{Field: "nom", Message: "is required"})
	}
	if len(r.Devise) != 3 {
		errs = append(errs, validator.ValidationError{Field: "devise", Message: "must be a 3-letter ISO currency code"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EntrepriseResponse struct {
	ID        string  `json:"id"`
	Nom       string  `json:"nom"`
	Adresse   *string `json:"adresse,omitempty"`
	Devise    string  `json:"devise"`
	CreatedAt string  `json:"created_at"`
}

func ToResponse(e Entreprise) EntrepriseResponse {
	return EntrepriseResponse{
		ID:        e.ID,
		Nom:       e.Nom,
		Adresse:   e.Adresse,
		Devise:    e.Devise,
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
	}
}
