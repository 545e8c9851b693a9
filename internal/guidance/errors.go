package guidance

import "fmt"

// APICallError represents a failed LLM call. It is never recovered locally;
// callers surface it at the interaction boundary.
type APICallError struct {
	Step    string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: API call failed: %s: %v", e.Step, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: API call failed: %s", e.Step, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
