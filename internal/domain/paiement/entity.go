package paiement

import (
	"time"

	"github.com/shopspring/decimal"
)

type Mode string

const (
	ModeEspeces     Mode = "ESPECES"
	ModeVirement    Mode = "VIREMENT"
	ModeOrangeMoney Mode = "ORANGE_MONEY"
	ModeWave        Mode = "WAVE"
)

// IsValid reports whether m is a known payment mode.
func (m Mode) IsValid() bool {
	switch m {
	case ModeEspeces, ModeVirement, ModeOrangeMoney, ModeWave:
		return true
	}
	return false
}

type Statut string

const (
	StatutComplete Statut = "COMPLETE"
	StatutAnnule   Statut = "ANNULE"
)

// Paiement records one settlement against one bulletin. Several payments may
// settle the same bulletin; the paiement service recomputes the bulletin's
// payment status from the sum of COMPLETE payments after every change.
type Paiement struct {
	ID           string
	BulletinID   string
	EntrepriseID string
	Montant      decimal.Decimal
	DatePaiement time.Time
	Mode         Mode
	Statut       Statut
	Reference    *string
	CaissierID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
