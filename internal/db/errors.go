package db

import (
	"errors"
	"fmt"
)

// ErrNotAuthenticated is returned when a store method is called without an
// acting identity. Every data-access function checks this before touching
// the database.
var ErrNotAuthenticated = errors.New("not authenticated")

// ErrNotFound is returned when a record does not exist or is not owned by
// the acting user. The two cases are deliberately indistinguishable so that
// record existence is not leaked across owners.
var ErrNotFound = errors.New("not found")

// ValidationError reports caller-supplied data that failed a local rule.
// It is raised before any SQL is issued.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func validationErr(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
