package config

import "fmt"

// ValidationError represents a single authoring defect in a document.
type ValidationError struct {
	Step   string // Step id (empty for document-level problems)
	Reason string // Human-readable reason for failure
}

func (e *ValidationError) Error() string {
	if e.Step == "" {
		return e.Reason
	}
	return fmt.Sprintf("step %q: %s", e.Step, e.Reason)
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	if aggr, ok := err.(*AggregateError); ok {
		return aggr.Errors
	}
	return nil
}
