// Package server provides the HTTP API for persona synthesis.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/persona-forge/internal/facets"
	"github.com/jonathan/persona-forge/internal/qa"
	"github.com/jonathan/persona-forge/internal/specgen"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Malformed requests are the client's fault, incoherent or unparseable model
// output is the upstream provider's, and everything else is ours.
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		coherenceErr  *qa.CoherenceError
		specSchema    *specgen.SchemaValidationError
		specInvalid   *specgen.InvalidResponseError
		specAPI       *specgen.APICallError
		facetSchema   *facets.SchemaValidationError
		facetInvalid  *facets.InvalidResponseError
		facetAPI      *facets.APICallError
	)
	switch {
	case errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.As(err, &coherenceErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &specSchema), errors.As(err, &specInvalid), errors.As(err, &specAPI),
		errors.As(err, &facetSchema), errors.As(err, &facetInvalid), errors.As(err, &facetAPI):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
