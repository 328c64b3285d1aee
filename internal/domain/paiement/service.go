package paiement

import (
	"context"

	"github.com/gestipay/paie-backend-go/internal/domain/user"
)

// PaiementService records settlements and keeps bulletin payment status in
// sync with the sum of completed payments.
type PaiementService interface {
	// Create records a payment against a bulletin. Cashiers are additionally
	// gated by the cycle's CanCashierPay predicate; every caller requires the
	// cycle to be VALIDATED.
	Create(ctx context.Context, principal user.Principal, req CreatePaiementRequest) (PaiementResponse, error)
	ListByBulletin(ctx context.Context, principal user.Principal, bulletinID string) ([]PaiementResponse, error)
	// Update corrects a payment's amount, mode, date or reference and
	// re-derives the bulletin status.
	Update(ctx context.Context, principal user.Principal, req UpdatePaiementRequest) (PaiementResponse, error)
	// Cancel marks a payment ANNULE and re-derives the bulletin status from
	// the remaining completed payments.
	Cancel(ctx context.Context, principal user.Principal, id string) error
	// Delete removes a payment record entirely and re-derives the bulletin
	// status. Cancel is the normal path; Delete erases mistaken entries.
	Delete(ctx context.Context, principal user.Principal, id string) error
}
