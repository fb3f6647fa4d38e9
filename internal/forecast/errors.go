package forecast

import "fmt"

// FitError represents a failure of the offline fitting phase
type FitError struct {
	Model   string
	Message string
	Cause   error
}

func (e *FitError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fitting %s: %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("fitting %s: %s", e.Model, e.Message)
}

func (e *FitError) Unwrap() error {
	return e.Cause
}
