package pipeline

import (
	"errors"
	"fmt"

	"github.com/jonathan/career-compass/internal/types"
)

// ServiceError is a failure of the pipeline itself rather than of the caller's input
type ServiceError struct {
	Op    string
	Cause error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// IsServiceError reports whether err is (or wraps) a ServiceError.
func IsServiceError(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// classify passes caller errors through and wraps everything else as a ServiceError
func classify(op string, err error) error {
	if err == nil || types.IsValidation(err) || types.IsNotFound(err) {
		return err
	}
	return &ServiceError{Op: op, Cause: err}
}
