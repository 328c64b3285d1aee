package employe

import "errors"

var ErrEmployeNotFound = errors.New("employe not found")
