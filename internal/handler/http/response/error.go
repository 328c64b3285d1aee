package response

import (
	"errors"
	"net/http"

	"github.com/gestipay/paie-backend-go/internal/domain/auth"
	"github.com/gestipay/paie-backend-go/internal/domain/bulletin"
	"github.com/gestipay/paie-backend-go/internal/domain/employe"
	"github.com/gestipay/paie-backend-go/internal/domain/entreprise"
	"github.com/gestipay/paie-backend-go/internal/domain/paiement"
	"github.com/gestipay/paie-backend-go/internal/domain/paycycle"
	"github.com/gestipay/paie-backend-go/internal/domain/user"
	"github.com/gestipay/paie-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Lifecycle errors carry state the client needs verbatim.
	var duplicateName *paycycle.DuplicateNameError
	if errors.As(err, &duplicateName) {
		Conflict(w, "DUPLICATE_NAME", duplicateName.Error())
		return
	}
	var invalidTransition *paycycle.InvalidTransitionError
	if errors.As(err, &invalidTransition) {
		Conflict(w, "INVALID_TRANSITION", invalidTransition.Error())
		return
	}
	var incompleteSettlement *paycycle.IncompleteSettlementError
	if errors.As(err, &incompleteSettlement) {
		UnprocessableEntity(w, "INCOMPLETE_SETTLEMENT", incompleteSettlement.Error())
		return
	}

	switch {
	// Auth
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, err.Error())

	// Authorization
	case errors.Is(err, user.ErrForbidden):
		Forbidden(w, "You do not have permission to perform this action")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// Tenancy
	case errors.Is(err, entreprise.ErrEntrepriseNotFound):
		NotFound(w, "Enterprise not found")
	case errors.Is(err, entreprise.ErrNomExists):
		Conflict(w, "DUPLICATE_NAME", err.Error())
	case errors.Is(err, employe.ErrEmployeNotFound):
		NotFound(w, "Employee not found")

	// Payroll
	case errors.Is(err, paycycle.ErrCycleNotFound):
		NotFound(w, "Pay cycle not found")
	case errors.Is(err, bulletin.ErrBulletinNotFound):
		NotFound(w, "Bulletin not found")
	case errors.Is(err, bulletin.ErrBulletinExists):
		Conflict(w, "BULLETIN_EXISTS", err.Error())

	case errors.Is(err, bulletin.ErrBulletinNotEditable):
		Conflict(w, "BULLETIN_NOT_EDITABLE", err.Error())
	case errors.Is(err, paiement.ErrPaiementNotFound):
		NotFound(w, "Paiement not found")
	case errors.Is(err, paiement.ErrCycleNotPayable):
		Conflict(w, "CYCLE_NOT_PAYABLE", err.Error())

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
