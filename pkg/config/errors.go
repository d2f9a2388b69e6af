package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpatil524/autolabel/pkg/schema"
)

// Sentinel errors for errors.Is checks against the typed errors below.
var (
	ErrSchemaValidation = errors.New("schema validation failed")
	ErrMissingSection   = errors.New("missing required section")
	ErrMissingKey       = errors.New("missing required key")
	ErrInvalidValue     = errors.New("invalid config value")
)

// SchemaValidationError reports a document that does not conform to the task schema.
type SchemaValidationError struct {
	Errors []schema.ValidationError
	// Cause is set when the validator failed without field-level detail.
	Cause error
}

// Error implements the error interface
func (e *SchemaValidationError) Error() string {
	if len(e.Errors) == 0 {
		if e.Cause != nil {
			return "configuration does not match schema: " + e.Cause.Error()
		}
		return "configuration does not match schema"
	}
	lines := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		lines = append(lines, "  - "+fe.Error())
	}
	return "configuration does not match schema:\n" + strings.Join(lines, "\n")
}

// Unwrap returns the underlying validator failure, if any.
func (e *SchemaValidationError) Unwrap() error { return e.Cause }

// Is matches ErrSchemaValidation.
func (e *SchemaValidationError) Is(target error) bool { return target == ErrSchemaValidation }

// MissingRequiredSectionError reports an absent mandatory section (model, prompt).
type MissingRequiredSectionError struct {
	Section string
}

// Error implements the error interface
func (e *MissingRequiredSectionError) Error() string {
	return fmt.Sprintf("config is missing required section %q", e.Section)
}

// Is matches ErrMissingSection.
func (e *MissingRequiredSectionError) Is(target error) bool { return target == ErrMissingSection }

// MissingKeyError reports an absent mandatory key. Section is empty for top-level keys.
type MissingKeyError struct {
	Section string
	Key     string
}

// Path returns the dotted location of the key.
func (e *MissingKeyError) Path() string {
	if e.Section == "" {
		return e.Key
	}
	return e.Section + "." + e.Key
}

// Error implements the error interface
func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("config is missing required key %q", e.Path())
}

// Is matches ErrMissingKey.
func (e *MissingKeyError) Is(target error) bool { return target == ErrMissingKey }

// ConfigError reports a key that is present but semantically invalid.
type ConfigError struct {
	Field   string
	Message string
	Value   interface{}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("invalid config field %s: %s (value: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("invalid config field %s: %s", e.Field, e.Message)
}

// Is matches ErrInvalidValue.
func (e *ConfigError) Is(target error) bool { return target == ErrInvalidValue }
