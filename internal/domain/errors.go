package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation failed")

	ErrAccountExists = errors.New("account already exists")

	// ErrInvalidCredentials is what clients see for either login failure.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnknownUser        = fmt.Errorf("%w: unknown username", ErrInvalidCredentials)
	ErrWrongPassword      = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	ErrProductNotFound = errors.New("product not found")
)

func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
