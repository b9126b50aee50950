package specgen

import "fmt"

// APICallError represents an error from the generative-model provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// SchemaValidationError represents generative output that does not match the
// required shape even via fallback parsing
type SchemaValidationError struct {
	Message string
	Cause   error
}

func (e *SchemaValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("schema validation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("schema validation failed: %s", e.Message)
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Cause
}

// InvalidResponseError represents a payload that is not parseable as text or
// structured data at all
type InvalidResponseError struct {
	Message string
	Cause   error
}

func (e *InvalidResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid response: %s", e.Message)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Cause
}
