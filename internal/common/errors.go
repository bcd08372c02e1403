// Package common defines shared constants and sentinel errors used across
// the NutriAI server. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Login errors. Both are reported to the user as a generic login failure.
	ErrAuthExchange     = errors.New("authorization code exchange failed")
	ErrAuthTokenInvalid = errors.New("identity token invalid")

	// Access gate.
	ErrNotAuthenticated = errors.New("not authenticated")

	// Malformed or missing user input.
	ErrValidation = errors.New("validation error")

	// External collaborator failures.
	ErrGeneration  = errors.New("recommendation generation failed")
	ErrImageLookup = errors.New("image lookup failed")
	ErrChat        = errors.New("chat completion failed")
)

// ValidationError reports a problem with a single user-supplied field so the
// caller can surface it next to the offending control.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError is a shorthand for &ValidationError{Field, Message}.
func NewValidationError(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}
