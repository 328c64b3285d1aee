package entreprise

import "context"

type EntrepriseRepository interface {
	Create(ctx context.Context, e Entreprise) (Entreprise, error)
	GetByID(ctx context.Context, id string) (Entreprise, error)
	List(ctx context.Context) ([]Entreprise, error)
}
