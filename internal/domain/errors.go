package domain

import "errors"

// Error taxonomy shared by every engine operation. Callers classify with
// errors.Is; services wrap these with fmt.Errorf("...: %w", err) for detail.
var (
	// ErrValidation covers malformed or missing input, including unknown
	// restaurant/location identifiers.
	ErrValidation = errors.New("validation failed")

	// ErrDuplicateEmail is returned when an email already identifies a live
	// registration, employee, or manager record.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrNotFound is returned when a referenced record is absent, including
	// the case where a concurrent operation already consumed it.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is returned when the acting principal lacks the role
	// or restaurant scope for the operation.
	ErrUnauthorized = errors.New("not authorized")

	// ErrInvalidTransition is returned when a requested status change is not
	// permitted by the employee state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrCredentialIssuance reports a best-effort auth provider failure after
	// the directory mutation has already committed. It never rolls back state.
	ErrCredentialIssuance = errors.New("credential issuance failed")
)
