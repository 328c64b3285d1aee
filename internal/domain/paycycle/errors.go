package paycycle

import (
	"errors"
	"fmt"
	"strings"
)

var ErrCycleNotFound = errors.New("pay cycle not found")

// DuplicateNameError is returned when creating or renaming a cycle would
// violate the (entreprise_id, nom) uniqueness constraint. It carries the
// offending name so the caller can surface a user-correctable message.
type DuplicateNameError struct {
	Nom string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a pay cycle named %q already exists for this enterprise", e.Nom)
}

// InvalidTransitionError is returned when a lifecycle operation is attempted
// from a state it is not legal in. Attempted is the operation name
// (VALIDATE, CLOSE, DELETE, GENERATE).
type InvalidTransitionError struct {
	Current   ValidationStatus
	Attempted string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s pay cycle: current status is %s", strings.ToLower(e.Attempted), e.Current)
}

// IncompleteSettlementError is returned when closure is attempted while the
// bulletin set is empty or contains unpaid bulletins.
type IncompleteSettlementError struct {
	Unpaid int
	Total  int
}

func (e *IncompleteSettlementError) Error() string {
	if e.Total == 0 {
		return "cannot close pay cycle: no bulletins have been generated"
	}
	return fmt.Sprintf("cannot close pay cycle: %d of %d bulletins are unpaid", e.Unpaid, e.Total)
}
