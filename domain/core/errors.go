package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound        = errors.New("resource not found")
	ErrImportNotFound  = fmt.Errorf("%w: import", ErrNotFound)
	ErrRecordNotFound  = fmt.Errorf("%w: record", ErrNotFound)

	// Ingestion errors
	ErrNotParseable  = errors.New("input is not parseable as HTML")
	ErrNoRecords     = errors.New("no valid watch records found in document")
	ErrImportTooBig  = errors.New("uploaded file exceeds size limit")
	ErrUnsupported   = errors.New("unsupported upload type")

	// Consistency errors
	ErrDuplicateIdentity = errors.New("duplicate record identity within batch")
	ErrHashMismatch      = errors.New("hash mismatch")
	ErrPartialCalendar   = errors.New("calendar fields inconsistent with watch time")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewValidationError(field string, reason string) error {
	return fmt.Errorf("validation failed for %s: %s", field, reason)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsIngestionError(err error) bool {
	return errors.Is(err, ErrNotParseable) ||
		errors.Is(err, ErrNoRecords) ||
		errors.Is(err, ErrImportTooBig) ||
		errors.Is(err, ErrUnsupported)
}
