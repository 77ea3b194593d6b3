package parsing

import "fmt"

// ParseDiagnostic reports why a model response could not be parsed into
// contacts. It is never fatal: callers log it and continue with an empty
// result.
type ParseDiagnostic struct {
	Message string
	Cause   error
}

func (e *ParseDiagnostic) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse diagnostic: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse diagnostic: %s", e.Message)
}

func (e *ParseDiagnostic) Unwrap() error {
	return e.Cause
}
