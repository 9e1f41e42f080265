// Package errs holds the error kinds every circulation failure falls into.
// Domain packages wrap one of these, so callers can branch on either the
// specific sentinel (loan.ErrAlreadyReturned) or its kind (errs.ErrInvalidState).
package errs

import "errors"

var (
	// ErrNotFound: a referenced id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrInvalidState: the operation is not valid for the record's lifecycle stage.
	ErrInvalidState = errors.New("invalid state")
	// ErrUnavailable: the caller lost a contest for a single resource. Not transient.
	ErrUnavailable = errors.New("unavailable")
	// ErrValidation: malformed input.
	ErrValidation = errors.New("validation failed")
	// ErrForbidden: the caller's role does not allow the operation.
	ErrForbidden = errors.New("forbidden")
)

// Kind returns the kind sentinel err wraps, or nil for unexpected errors.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrInvalidState, ErrUnavailable, ErrValidation, ErrForbidden} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
