package employe

import "context"

type EmployeRepository interface {
	GetByID(ctx context.Context, id string, entrepriseID string) (Employe, error)
	// ListActiveByEntreprise returns every active employee of the enterprise.
	// Bulletin generation produces exactly one bulletin per returned employee.
	ListActiveByEntreprise(ctx context.Context, entrepriseID string) ([]Employe, error)
}
