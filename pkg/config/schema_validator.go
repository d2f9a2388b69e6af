package config

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rpatil524/autolabel/pkg/schema"
)

// Validator checks a document before an AutolabelConfig is built from it.
// A non-nil error fails construction.
type Validator interface {
	Validate(doc *Document) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(doc *Document) error

// Validate calls f(doc).
func (f ValidatorFunc) Validate(doc *Document) error { return f(doc) }

// SchemaValidator validates documents against a JSON Schema. The schema is
// compiled on first use and reused afterwards.
type SchemaValidator struct {
	loader gojsonschema.JSONLoader

	once     sync.Once
	compiled *gojsonschema.Schema
	err      error
}

// NewSchemaValidator creates a validator for the schema behind loader.
func NewSchemaValidator(loader gojsonschema.JSONLoader) *SchemaValidator {
	return &SchemaValidator{loader: loader}
}

// NewSchemaValidatorFromSource resolves source as described by
// schema.ResolveLoader, falling back to the builtin task schema.
func NewSchemaValidatorFromSource(source string) (*SchemaValidator, error) {
	loader, err := schema.ResolveLoader(source, BuiltinSchemaLoader())
	if err != nil {
		return nil, err
	}
	return NewSchemaValidator(loader), nil
}

// BuiltinSchemaLoader returns a loader for the schema reflected from TaskSpec.
func BuiltinSchemaLoader() gojsonschema.JSONLoader {
	return gojsonschema.NewGoLoader(GenerateSchema())
}

var (
	defaultValidatorOnce sync.Once
	defaultValidator     Validator
)

// DefaultValidator returns the shared validator used when no WithValidator
// option is given. Its schema source is read from AUTOLABEL_SCHEMA_SOURCE
// on first call.
func DefaultValidator() Validator {
	defaultValidatorOnce.Do(func() {
		loader, err := schema.LoaderFromEnv(BuiltinSchemaLoader())
		if err != nil {
			defaultValidator = ValidatorFunc(func(*Document) error {
				return &SchemaValidationError{Cause: err}
			})
			return
		}
		defaultValidator = NewSchemaValidator(loader)
	})
	return defaultValidator
}

// Validate implements Validator. Schema mismatches are returned as
// *SchemaValidationError.
func (v *SchemaValidator) Validate(doc *Document) error {
	result, err := v.Check(doc)
	if err != nil {
		return &SchemaValidationError{Cause: err}
	}
	if !result.Valid {
		return &SchemaValidationError{Errors: result.Errors}
	}
	return nil
}

// Check validates doc and returns every field-level error.
func (v *SchemaValidator) Check(doc *Document) (*schema.ValidationResult, error) {
	compiled, err := v.schema()
	if err != nil {
		return nil, err
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to JSON: %w", err)
	}

	return schema.ValidateJSON(jsonData, compiled)
}

func (v *SchemaValidator) schema() (*gojsonschema.Schema, error) {
	v.once.Do(func() {
		v.compiled, v.err = schema.Compile(v.loader)
	})
	return v.compiled, v.err
}
