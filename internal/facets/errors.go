package facets

import "fmt"

// APICallError represents an error from the generative-model provider
type APICallError struct {
	Facet   string
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s facet API call failed: %s: %v", e.Facet, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s facet API call failed: %s", e.Facet, e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// SchemaValidationError represents facet output that does not match the
// required shape even via fallback parsing
type SchemaValidationError struct {
	Facet   string
	Message string
	Cause   error
}

func (e *SchemaValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s facet schema validation failed: %s: %v", e.Facet, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s facet schema validation failed: %s", e.Facet, e.Message)
}

func (e *SchemaValidationError) Unwrap() error {
	return e.Cause
}

// InvalidResponseError represents a facet payload that is not parseable as
// text or structured data at all
type InvalidResponseError struct {
	Facet   string
	Message string
	Cause   error
}

func (e *InvalidResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s facet invalid response: %s: %v", e.Facet, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s facet invalid response: %s", e.Facet, e.Message)
}

func (e *InvalidResponseError) Unwrap() error {
	return e.Cause
}
