package models

import "errors"

// Error taxonomy shared by the domain services. Handlers map these onto
// HTTP status codes; services wrap them with a specific reason.
var (
	// ErrValidation marks malformed or out-of-range input. Nothing is
	// partially applied when it is returned.
	ErrValidation = errors.New("validation failed")

	// ErrForbidden marks a role-gate denial. The mutation was not attempted.
	ErrForbidden = errors.New("insufficient role")

	// ErrNotFound marks a referenced id that is absent at mutation time.
	ErrNotFound = errors.New("not found")
)
