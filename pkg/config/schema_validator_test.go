package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xeipuuv/gojsonschema"
)

func TestSchemaValidator_Check(t *testing.T) {
	v := NewSchemaValidator(BuiltinSchemaLoader())

	result, err := v.Check(mustParse(t, fullConfigYAML))
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)

	result, err = v.Check(mustParse(t, `
task_name: ""
task_type: classification
model: {provider: openai}
prompt: {few_shot_num: -1}
`))
	require.NoError(t, err)
	assert.False(t, result.Valid)

	fields := make([]string, 0, len(result.Errors))
	for _, e := range result.Errors {
		fields = append(fields, e.Field)
	}
	assert.Contains(t, fields, "task_name")
	assert.Contains(t, fields, "model")
	assert.Contains(t, fields, "prompt.few_shot_num")
}

func TestSchemaValidator_AcceptsSchemaKeyAndNulls(t *testing.T) {
	v := NewSchemaValidator(BuiltinSchemaLoader())

	err := v.Validate(mustParse(t, `
$schema: https://example.com/autolabel.json
task_name: t
task_type: named_entity_recognition
dataset:
  label_column: null
  text_column: text
model: {provider: anthropic, name: claude-3, endpoint: null}
prompt:
  labels: {PER: person, ORG: organization}
  few_shot_examples:
    - {text: Alice works at Acme, label: "PER ORG"}
  attributes:
    - {name: kind, label_selection: 3}
`))
	assert.NoError(t, err)
}

func TestSchemaValidator_InvalidSchemaSource(t *testing.T) {
	v := NewSchemaValidator(gojsonschema.NewStringLoader(`{"type": 12}`))

	err := v.Validate(mustParse(t, minimalConfigYAML))

	var sve *SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Empty(t, sve.Errors)
	assert.Error(t, sve.Cause)
}

func TestNewSchemaValidatorFromSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "permissive.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"type": "object"}`), 0o600))

	v, err := NewSchemaValidatorFromSource(path)
	require.NoError(t, err)
	// Provider "x" is outside the builtin enum but fine for the permissive schema.
	assert.NoError(t, v.Validate(mustParse(t, minimalConfigYAML)))

	builtin, err := NewSchemaValidatorFromSource("builtin")
	require.NoError(t, err)
	assert.Error(t, builtin.Validate(mustParse(t, minimalConfigYAML)))

	_, err = NewSchemaValidatorFromSource(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestValidatorFunc(t *testing.T) {
	var seen *Document
	v := ValidatorFunc(func(doc *Document) error {
		seen = doc
		return nil
	})

	doc := mustParse(t, minimalConfigYAML)
	require.NoError(t, v.Validate(doc))
	assert.Same(t, doc, seen)
}

func TestDefaultValidator_IsShared(t *testing.T) {
	assert.Same(t, DefaultValidator(), DefaultValidator())
}
