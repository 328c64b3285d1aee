package paiement

import "errors"

var (
	ErrPaiementNotFound = errors.New("paiement not found")
	// ErrCycleNotPayable is returned when a payment is attempted against a
	// bulletin whose cycle is not in the VALIDATED state.
	ErrCycleNotPayable = errors.New("bulletin's pay cycle is not validated for payment")
)
