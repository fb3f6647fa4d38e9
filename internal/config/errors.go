package config

import (
	"errors"
	"fmt"

	"github.com/jonathan/career-compass/internal/types"
)

// Error represents an invalid configuration value
type Error struct {
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// wrap converts a component validation error into a config Error
func wrap(err error) error {
	var ve *types.ValidationError
	if errors.As(err, &ve) {
		return &Error{Field: ve.Field, Message: ve.Message, Cause: err}
	}
	return &Error{Field: "(unknown)", Message: err.Error(), Cause: err}
}
