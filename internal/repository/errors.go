package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

// ValidationError reports a missing or invalid input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + " " + e.Message
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// withFieldPrefix scopes a validation error to a nested field, e.g. rates[1].
func withFieldPrefix(prefix string, err error) error {
	var verr *ValidationError
	if errors.As(err, &verr) {
		field := prefix
		if verr.Field != "" {
			field = prefix + "." + verr.Field
		}
		return &ValidationError{Field: field, Message: verr.Message}
	}
	return err
}

// duplicateAsInvalid turns a unique-key violation on field into a
// ValidationError and wraps anything else with action.
func duplicateAsInvalid(err error, field, action string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return invalid(field, "already exists")
	}
	return fmt.Errorf("%s: %w", action, err)
}
