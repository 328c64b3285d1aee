package audit

import "time"

// Record is one audit entry. The lifecycle service writes one per successful
// cycle transition; failed attempts are not audited.
type Record struct {
	ID        string
	Action    string // e.g. VALIDATE_CYCLE, CLOSE_CYCLE
	Entity    string // e.g. CYCLE, PAIEMENT
	EntityID  string
	UserID    string
	Details   *string
	CreatedAt time.Time
}

const (
	EntityCycle    = "CYCLE"
	EntityPaiement = "PAIEMENT"
)
