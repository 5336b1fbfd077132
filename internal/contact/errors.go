package contact

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a value failed its format check at construction.
	ErrValidation = errors.New("contact: invalid value")
	// ErrDuplicate indicates a phone number already exists on the record.
	ErrDuplicate = errors.New("contact: duplicate phone")
)

// ValidationError describes why a Name or Phone value was rejected.
type ValidationError struct {
	Field  string // "name" or "phone"
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// DuplicateError reports a phone number that is already on a record.
type DuplicateError struct {
	Contact string
	Phone   string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("phone %s already exists for %s", e.Phone, e.Contact)
}

// Unwrap lets errors.Is match ErrDuplicate.
func (e *DuplicateError) Unwrap() error {
	return ErrDuplicate
}
