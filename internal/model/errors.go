package model

import "fmt"

// ErrMissingRequiredField creates an error for a missing required field.
func ErrMissingRequiredField(field string) error {
	return fmt.Errorf("missing required field: %s", field)
}

// ErrInvalidValue creates an error for an invalid field value.
func ErrInvalidValue(field, reason string) error {
	return fmt.Errorf("invalid value for %s: %s", field, reason)
}
