// Package schema provides JSON Schema validation helpers shared by the config
// loader and the CLI.
package schema

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/rpatil524/autolabel/pkg/httputil"
)

// SourceEnvVar overrides where the task schema is loaded from.
// Values: "" or "builtin" (schema reflected from the Go types), a file path,
// or an http(s) URL.
const SourceEnvVar = "AUTOLABEL_SCHEMA_SOURCE"

// SourceBuiltin selects the schema compiled into the binary.
const SourceBuiltin = "builtin"

// ValidationError represents a single schema validation error with field-level detail.
type ValidationError struct {
	Field       string
	Description string
	Value       interface{}
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %s (value: %v)", e.Field, e.Description, e.Value)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Description)
}

// ValidationResult contains the results of JSON schema validation.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// Compile parses a schema once so it can validate many documents.
func Compile(loader gojsonschema.JSONLoader) (*gojsonschema.Schema, error) {
	compiled, err := gojsonschema.NewSchema(loader)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return compiled, nil
}

// ValidateJSON validates raw JSON bytes against a compiled schema.
func ValidateJSON(jsonData []byte, compiled *gojsonschema.Schema) (*ValidationResult, error) {
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}
	return ConvertResult(result), nil
}

// ConvertResult converts a gojsonschema result into a ValidationResult.
func ConvertResult(result *gojsonschema.Result) *ValidationResult {
	vr := &ValidationResult{
		Valid:  result.Valid(),
		Errors: make([]ValidationError, 0),
	}

	if !result.Valid() {
		for _, e := range result.Errors() {
			vr.Errors = append(vr.Errors, ValidationError{
				Field:       e.Field(),
				Description: e.Description(),
				Value:       e.Value(),
			})
		}
	}

	return vr
}

// ResolveLoader picks the schema loader for source:
//  1. "" or "builtin": the builtin loader
//  2. http:// or https:// URL: fetched over HTTP with DefaultSchemaTimeout
//  3. anything else: read as a local file
func ResolveLoader(source string, builtin gojsonschema.JSONLoader) (gojsonschema.JSONLoader, error) {
	switch {
	case source == "" || source == SourceBuiltin:
		return builtin, nil
	case strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://"):
		ctx, cancel := context.WithTimeout(context.Background(), httputil.DefaultSchemaTimeout)
		defer cancel()
		data, err := httputil.FetchDocument(ctx, httputil.NewHTTPClient(httputil.DefaultSchemaTimeout), source)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema from %s: %w", source, err)
		}
		return gojsonschema.NewBytesLoader(data), nil
	default:
		data, err := os.ReadFile(source) //nolint:gosec // path comes from operator-controlled env/flag
		if err != nil {
			return nil, fmt.Errorf("failed to read schema from %s: %w", source, err)
		}
		return gojsonschema.NewBytesLoader(data), nil
	}
}

// LoaderFromEnv resolves the schema loader using SourceEnvVar.
func LoaderFromEnv(builtin gojsonschema.JSONLoader) (gojsonschema.JSONLoader, error) {
	return ResolveLoader(os.Getenv(SourceEnvVar), builtin)
}
