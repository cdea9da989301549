package dynup

import "fmt"

// ValidationError reports a config field that violates its constraint.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid config: field %q %s", e.Field, e.Constraint)
}

// StatusError reports an unexpected HTTP status from an external service.
// Body holds the response body verbatim for diagnosis.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d: %q", e.StatusCode, e.Body)
}
