// Package schemas provides JSON Schema validation for structured LLM outputs.
// Schema documents are embedded at compile time and validated with gojsonschema.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Well-known schema names used by the synthesis pipeline.
const (
	PersonaSpec = "persona_spec"
	VoicePack   = "voice_pack"
	Narrative   = "narrative"
	Nutrition   = "nutrition"
	Identity    = "identity"
)

var (
	docCache   = make(map[string]string)
	docCacheMu sync.RWMutex
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Doc returns the embedded schema document for a well-known schema name.
func Doc(name string) (string, error) {
	docCacheMu.RLock()
	if doc, ok := docCache[name]; ok {
		docCacheMu.RUnlock()
		return doc, nil
	}
	docCacheMu.RUnlock()

	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return "", &SchemaLoadError{Name: name, Message: "no embedded schema", Cause: err}
	}

	docCacheMu.Lock()
	docCache[name] = string(data)
	docCacheMu.Unlock()
	return string(data), nil
}

// MustDoc returns the embedded schema document, panicking if it is missing.
// Use only for schema names known at compile time.
func MustDoc(name string) string {
	doc, err := Doc(name)
	if err != nil {
		panic(err)
	}
	return doc
}

// Validate validates JSON content against a named embedded schema.
func Validate(name, jsonContent string) error {
	doc, err := Doc(name)
	if err != nil {
		return err
	}
	return ValidateJSONString(doc, jsonContent)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Name:    "(string schema)",
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}

	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
