package bulletin

import "context"

type BulletinRepository interface {
	Create(ctx context.Context, b Bulletin) (Bulletin, error)
	GetByID(ctx context.Context, id string) (Bulletin, error)
	ListByCycle(ctx context.Context, cycleID string) ([]Bulletin, error)
	// GetByEmployeAndCycle returns at most one record; generation uses it to
	// avoid duplicate bulletins for the same (employe, cycle) pair.
	GetByEmployeAndCycle(ctx context.Context, employeID, cycleID string) (Bulletin, error)
	SetStatutPaiement(ctx context.Context, id string, statut StatutPaiement) error
	// Update rewrites the bulletin's amounts and payment status. Numero and
	// the (cycle, employe) pair never change after generation.
	Update(ctx context.Context, b Bulletin) (Bulletin, error)
	Delete(ctx context.Context, id string) error

	// CountByCycle returns the total number of bulletins for the cycle and
	// how many of them are not PAID. Closure reads both inside the closing
	// transaction so the check and the status flip see the same snapshot.
	CountByCycle(ctx context.Context, cycleID string) (total int, unpaid int, err error)
}
