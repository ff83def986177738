package intake

import "errors"

var (
	// ErrMissingVoter indicates an empty username.
	ErrMissingVoter = errors.New("username is required")

	// ErrInvalidEncoding indicates a body or field that is not valid UTF-8.
	ErrInvalidEncoding = errors.New("form input was invalid UTF-8")

	// ErrMalformedForm indicates a body that is not a valid vote form.
	ErrMalformedForm = errors.New("invalid form input")

	// ErrUnknownVenue indicates a venue key that is not in the catalog.
	ErrUnknownVenue = errors.New("unknown venue")
)

// Reason codes reported to end users.
const (
	ReasonMissingVoter    = "missing-voter"
	ReasonInvalidEncoding = "invalid-encoding"
	ReasonMalformedForm   = "malformed-form"
	ReasonUnknownVenue    = "unknown-venue"
)

// ValidationError is a rejected submission. It never reaches the store.
type ValidationError struct {
	// Reason is one of the Reason* codes.
	Reason string

	// Detail is an optional human-readable addition, e.g. the offending field.
	Detail string

	// Err is the sentinel for Reason.
	Err error
}

func (e *ValidationError) Error() string {
	if e.Detail != "" {
		return e.Err.Error() + ": " + e.Detail
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func invalid(reason string, sentinel error, detail string) *ValidationError {
	return &ValidationError{Reason: reason, Detail: detail, Err: sentinel}
}

// Reason extracts the reason code from err.
// Returns "" when err is not a validation failure.
func Reason(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}
