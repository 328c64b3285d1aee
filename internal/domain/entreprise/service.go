package entreprise

import (
	"context"

	"github.com/gestipay/paie-backend-go/internal/domain/user"
)

// EntrepriseService manages tenants. Creation and listing are platform
// operations; reading is open to any principal scoped to the enterprise.
type EntrepriseService interface {
	Create(ctx context.Context, principal user.Principal, req CreateEntrepriseRequest) (EntrepriseResponse, error)
	GetByID(ctx context.Context, principal user.Principal, id string) (EntrepriseResponse, error)
	List(ctx context.Context, principal user.Principal) ([]EntrepriseResponse, error)
}
