// Package validation checks product attributes against the JSON Schema a
// category declares for them.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// FieldError is one schema violation tied to an attribute path.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SchemaErrors aggregates every violation from one validation pass.
type SchemaErrors struct {
	Fields []FieldError `json:"errors"`
}

func (e *SchemaErrors) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return strings.Join(msgs, "; ")
}

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks attributes against the schema. A nil or empty schema
// accepts any attributes.
func (v *Validator) Validate(attributes, schema map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return err
	}
	attrJSON, err := json.Marshal(attributes)
	if err != nil {
		return err
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(attrJSON),
	)
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}

	se := &SchemaErrors{}
	for _, desc := range result.Errors() {
		se.Fields = append(se.Fields, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return se
}

// ValidatePartial validates a partial update: the schema's required list is
// dropped so absent attributes do not fail.
func (v *Validator) ValidatePartial(attributes, schema map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	partial := make(map[string]any, len(schema))
	for k, val := range schema {
		if k != "required" {
			partial[k] = val
		}
	}
	return v.Validate(attributes, partial)
}

// IsSchemaError reports whether err carries schema violations.
func IsSchemaError(err error) bool {
	var se *SchemaErrors
	return errors.As(err, &se)
}

// AsSchemaErrors extracts the violations from err, or nil.
func AsSchemaErrors(err error) *SchemaErrors {
	var se *SchemaErrors
	if errors.As(err, &se) {
		return se
	}
	return nil
}
