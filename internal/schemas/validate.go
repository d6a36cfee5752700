// Package schemas provides JSON Schema validation for remote stage responses.
// A response that passes transport but fails its stage schema is malformed
// and aborts the pipeline.
package schemas

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// Per-stage response schemas. Only the fields the pipeline reads are
// required; everything else the service returns is carried opaquely.
const (
	// IntakeResponse is acknowledgement-only.
	IntakeResponse = `{"type": "object"}`

	PurchaseResponse = `{
		"type": "object",
		"required": ["verified"],
		"properties": {
			"verified": {"type": "boolean"}
		}
	}`

	TextResponse = `{
		"type": "object",
		"required": ["text_valid", "text_score"],
		"properties": {
			"text_valid": {"type": "boolean"},
			"text_score": {"type": "number", "minimum": 0, "maximum": 1}
		}
	}`

	// ConsistencyResponse is acknowledgement-only.
	ConsistencyResponse = `{"type": "object"}`

	UploadResponse = `{
		"type": "object",
		"required": ["media_id", "media_url"],
		"properties": {
			"media_id": {"type": "string"},
			"media_url": {"type": "string"}
		}
	}`

	MediaResponse = `{
		"type": "object",
		"required": ["media_score"],
		"properties": {
			"media_score": {"type": "number", "minimum": 0, "maximum": 1}
		}
	}`

	TrustScoreResponse = `{
		"type": "object",
		"required": ["final_trust_score", "review_status"],
		"properties": {
			"final_trust_score": {"type": "integer", "minimum": 0, "maximum": 100},
			"review_status": {"type": "string"},
			"trust_level": {"type": "string"},
			"breakdown": {"type": "object"}
		}
	}`
)

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("response validation failed:")
	for _, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf(" %s: %s;", err.Field, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

// Validate checks a raw response document against a stage schema.
// Returns *ValidationError when the document does not conform.
func Validate(schema string, document []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("schema validation failed to run: %w", err)
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
