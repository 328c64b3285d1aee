package paycycle

import (
	"context"

	"github.com/gestipay/paie-backend-go/internal/domain/bulletin"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
)

// CycleService orchestrates the pay-cycle lifecycle. Every method checks the
// principal before touching storage; unauthorized calls fail with
// user.ErrForbidden, never a silent no-op.
type CycleService interface {
	Create(ctx context.Context, principal user.Principal, req CreateCycleRequest) (CycleResponse, error)
	GetByID(ctx context.Context, principal user.Principal, id string) (CycleResponse, error)
	List(ctx context.Context, principal user.Principal) ([]CycleResponse, error)
	Update(ctx context.Context, principal user.Principal, req UpdateCycleRequest) (CycleResponse, error)

	// Validate transitions DRAFT -> VALIDATED. Any other current state yields
	// an *InvalidTransitionError naming it.
	Validate(ctx context.Context, principal user.Principal, id string) (CycleResponse, error)

	// Close transitions VALIDATED -> CLOSED, and only when the cycle has at
	// least one bulletin and every bulletin is PAID. CLOSED is terminal.
	Close(ctx context.Context, principal user.Principal, id string) (CycleResponse, error)

	// Delete hard-deletes a cycle. Only DRAFT cycles may be deleted.
	Delete(ctx context.Context, principal user.Principal, id string) error

	// CanCashierPay is a pure predicate: true iff the principal is a CAISSIER
	// of the cycle's enterprise and the cycle is exactly VALIDATED. It never
	// returns an error for a missing cycle or a wrong role - just false.
	CanCashierPay(ctx context.Context, principal user.Principal, id string) (bool, error)

	// GenerateBulletins produces one bulletin per active employee of the
	// cycle's enterprise not already covered. Idempotent per (employe, cycle).
	GenerateBulletins(ctx context.Context, principal user.Principal, cycleID string) ([]bulletin.BulletinResponse, error)
	ListBulletins(ctx context.Context, principal user.Principal, cycleID string) ([]bulletin.BulletinResponse, error)
	GetBulletin(ctx context.Context, principal user.Principal, bulletinID string) (bulletin.BulletinResponse, error)

	// UpdateBulletin corrects a bulletin's amounts. Only bulletins without
	// payments (PENDING) on a cycle that is not CLOSED may be corrected.
	UpdateBulletin(ctx context.Context, principal user.Principal, req bulletin.UpdateBulletinRequest) (bulletin.BulletinResponse, error)
	// DeleteBulletin removes a bulletin under the same conditions; a later
	// generation run will recreate it from current compensation.
	DeleteBulletin(ctx context.Context, principal user.Principal, bulletinID string) error
}
