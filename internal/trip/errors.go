package trip

import "errors"

var (
	ErrTripNotFound  = errors.New("trip not found")
	ErrTripForbidden = errors.New("only the trip owner can edit this trip")
)

// ValidationError reports a malformed client field. The message is a
// single human-readable line and never exposes internals.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Reason
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}
