package user

import "errors"

var (
	ErrUserNotFound = errors.New("user not found")
	// ErrForbidden is returned whenever a principal lacks the role or the
	// enterprise scope for the requested action.
	ErrForbidden = errors.New("insufficient role or enterprise scope for this action")
)
