package paycycle

import "context"

// CycleRepository defines data access for pay cycles. Listing methods are
// always pre-scoped by the service through the authorization guard; the
// repository never decides visibility on its own.
type CycleRepository interface {
	Create(ctx context.Context, cycle PayCycle) (PayCycle, error)
	GetByID(ctx context.Context, id string) (PayCycle, error)
	ListByEntreprise(ctx context.Context, entrepriseID string) ([]PayCycle, error)
	ListAll(ctx context.Context) ([]PayCycle, error)
	Update(ctx context.Context, req UpdateCycleRequest) error
	Delete(ctx context.Context, id string) error

	// SetValidationStatus performs the conditional transition
	// "to" iff the stored status is still "from". It returns false with a nil
	// error when the precondition did not hold (the row exists in another
	// state, or not at all); exactly one of two racing callers wins.
	SetValidationStatus(ctx context.Context, id string, from, to ValidationStatus) (bool, error)
}
