package entreprise

import "errors"

var (
	ErrEntrepriseNotFound = errors.New("entreprise not found")
	ErrNomExists          = errors.New("entreprise name already exists")
)
