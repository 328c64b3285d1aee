package paiement

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaiementRepository stores settlement records. It never cascades bulletin
// status; the paiement service reads SumCompletedByBulletin and decides.
type PaiementRepository interface {
	Create(ctx context.Context, p Paiement) (Paiement, error)
	GetByID(ctx context.Context, id string) (Paiement, error)
	ListByBulletin(ctx context.Context, bulletinID string) ([]Paiement, error)
	SumCompletedByBulletin(ctx context.Context, bulletinID string) (decimal.Decimal, error)
	// Update rewrites the payment's amount, mode, date and reference.
	Update(ctx context.Context, p Paiement) (Paiement, error)
	SetStatut(ctx context.Context, id string, statut Statut) error
	Delete(ctx context.Context, id string) error
}
