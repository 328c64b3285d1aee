package paycycle

import "time"

// ValidationStatus is the three-state lifecycle of a pay cycle.
// Transitions are linear: DRAFT -> VALIDATED -> CLOSED. CLOSED is terminal.
type ValidationStatus string

const (
	StatusDraft     ValidationStatus = "DRAFT"
	StatusValidated ValidationStatus = "VALIDATED"
	StatusClosed    ValidationStatus = "CLOSED"
)

// OperationalStatus is the legacy OPEN/CLOSED flag kept for compatibility
// with consumers that predate the validation lifecycle. It flips to CLOSED
// together with the CLOSED validation status.
type OperationalStatus string

const (
	StatutOpen   OperationalStatus = "OPEN"
	StatutClosed OperationalStatus = "CLOSED"
)

type Frequence string

const (
	FrequenceMensuelle    Frequence = "MENSUELLE"
	FrequenceHebdomadaire Frequence = "HEBDOMADAIRE"
	FrequenceJournaliere  Frequence = "JOURNALIERE"
)

// IsValid reports whether f is a known pay frequency.
func (f Frequence) IsValid() bool {
	switch f {
	case FrequenceMensuelle, FrequenceHebdomadaire, FrequenceJournaliere:
		return true
	}
	return false
}

// PayCycle is one payroll period for one enterprise.
// (entreprise_id, nom) is unique.
type PayCycle struct {
	ID               string
	EntrepriseID     string
	Nom              string
	Description      *string
	PeriodeDebut     time.Time
	PeriodeFin       time.Time
	Statut           OperationalStatus
	StatutValidation ValidationStatus
	Frequence        Frequence
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
