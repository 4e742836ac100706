// Package schemas provides JSON Schema validation for structured LLM output.
// Provider replies are validated against the embedded analysis schema before
// being merged onto the heuristic baseline, so shape errors (a string where
// a number belongs, a scalar where an array belongs) are caught up front and
// treated as parse failures by the orchestrator.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed analysis_schema.json
var analysisSchema string

// FieldError is a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates schema validation errors with field paths.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// ValidateAnalysisJSON checks a raw provider JSON document against the
// analysis schema. Every field is optional since partial output is
// expected, but present fields must have the right shape.
func ValidateAnalysisJSON(doc string) error {
	schemaLoader := gojsonschema.NewStringLoader(analysisSchema)
	documentLoader := gojsonschema.NewStringLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("failed to validate document: %w", err)
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}
