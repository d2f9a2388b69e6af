package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const validTask = `
task_name: SentimentAnalysis
task_type: classification
dataset:
  label_column: label
  input_columns: [text]
model:
  provider: openai
  name: gpt-4
  params:
    api_key: sk-abcdefghijklmnopqrstuvwxyz0123456789
    temperature: 0.2
prompt:
  task_guidelines: Classify the sentiment of the review.
  labels: [positive, negative]
  example_template: "Input: {text}\nOutput: {label}"
`

const warningTask = `
task_name: SentimentAnalysis
task_type: classification
dataset:
  input_columns: [text]
model:
  provider: openai
  name: gpt-4
prompt:
  labels: [positive, negative]
  few_shot_num: 3
  example_template: "Input: {review}"
`

const invalidTask = `
task_name: SentimentAnalysis
task_type: sentiment
model:
  provider: openai
  name: gpt-4
prompt: {}
`

func writeTask(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name      string
		content   string
		args      []string
		wantErr   bool
		wantOut   []string
		wantErrIn string
	}{
		{
			name:    "valid task",
			content: validTask,
			wantOut: []string{"✅ task.yaml is valid"},
		},
		{
			name:    "warnings are reported",
			content: warningTask,
			wantOut: []string{
				"3 warning(s)",
				"few_shot_num is set but no few_shot_examples are configured",
				`example template references unknown column "review"`,
				"✅ task.yaml is valid",
			},
		},
		{
			name:      "strict mode fails on warnings",
			content:   warningTask,
			args:      []string{"--strict"},
			wantErr:   true,
			wantErrIn: "warning(s) in strict mode",
		},
		{
			name:      "schema errors",
			content:   invalidTask,
			wantErr:   true,
			wantOut:   []string{"task_type"},
			wantErrIn: "schema validation failed",
		},
		{
			name:    "schema skipped",
			content: invalidTask,
			args:    []string{"--skip-schema"},
			wantOut: []string{"✅ task.yaml is valid"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTask(t, "task.yaml", tt.content)
			args := append([]string{"validate", path}, tt.args...)

			stdout, stderr, err := run(t, args...)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, stderr, tt.wantErrIn)
			} else {
				require.NoError(t, err)
			}
			for _, want := range tt.wantOut {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestValidateCommand_MultipleFiles(t *testing.T) {
	good := writeTask(t, "good.yaml", validTask)
	bad := writeTask(t, "bad.yaml", invalidTask)

	stdout, stderr, err := run(t, "validate", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 file(s) failed validation")
	assert.Contains(t, stdout, "✅ good.yaml is valid")
	assert.Contains(t, stderr, "❌ bad.yaml")
}

func TestValidateCommand_MissingFile(t *testing.T) {
	_, stderr, err := run(t, "validate", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, stderr, "failed to read config file")
}

func TestShowCommand_JSON(t *testing.T) {
	path := writeTask(t, "task.yaml", validTask)

	stdout, _, err := run(t, "show", path, "-o", "json")
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "SentimentAnalysis", view["task_name"])

	dataset := view["dataset"].(map[string]any)
	assert.Equal(t, ",", dataset["delimiter"])
	assert.Equal(t, ";", dataset["label_separator"])

	model := view["model"].(map[string]any)
	params := model["params"].(map[string]any)
	assert.Equal(t, "[REDACTED]", params["api_key"])
	assert.Equal(t, 0.2, params["temperature"])

	embedding := view["embedding"].(map[string]any)
	assert.Equal(t, "openai", embedding["provider"])

	chunking := view["chunking"].(map[string]any)
	assert.Equal(t, float64(3400), chunking["confidence_chunk_size"])
	assert.Equal(t, "max", chunking["confidence_merge_function"])
}

func TestShowCommand_YAMLFromEnv(t *testing.T) {
	path := writeTask(t, "task.yaml", validTask)
	t.Setenv("AUTOLABEL_OUTPUT", "yaml")

	stdout, _, err := run(t, "show", path)
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &view))
	assert.Equal(t, "classification", view["task_type"])

	prompt := view["prompt"].(map[string]any)
	assert.Equal(t, []any{"positive", "negative"}, prompt["labels"])
	assert.Equal(t, false, prompt["label_selection"])
}

func TestShowCommand_FlagOverridesEnv(t *testing.T) {
	path := writeTask(t, "task.yaml", validTask)
	t.Setenv("AUTOLABEL_OUTPUT", "yaml")

	stdout, _, err := run(t, "show", path, "--output", "json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
}

func TestInvalidSettings(t *testing.T) {
	path := writeTask(t, "task.yaml", validTask)
	t.Setenv("AUTOLABEL_OUTPUT", "xml")

	_, _, err := run(t, "show", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid settings")
}

func TestSchemaSourceSetting(t *testing.T) {
	path := writeTask(t, "task.yaml", validTask)

	schemaOut, _, err := run(t, "schema")
	require.NoError(t, err)
	schemaPath := writeTask(t, "task.schema.json", schemaOut)

	_, _, err = run(t, "validate", path, "--schema-source", schemaPath)
	require.NoError(t, err)

	_, stderr, err := run(t, "validate", path, "--schema-source", filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Contains(t, stderr, "task.yaml")
}

func TestSchemaCommand(t *testing.T) {
	stdout, _, err := run(t, "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &schema))
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "task_name")
	assert.Contains(t, props, "prompt")
}

func TestRenderCommand(t *testing.T) {
	path := writeTask(t, "task.yaml", validTask)

	stdout, _, err := run(t, "render", path, "--row", "text=great product", "--row", "label=positive")
	require.NoError(t, err)
	assert.Equal(t, "Input: great product\nOutput: positive\n", stdout)

	_, _, err = run(t, "render", path, "--row", "text=great product")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing values for template columns")

	_, _, err = run(t, "render", path, "--row", "oops")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")
}

func TestParseRow(t *testing.T) {
	row, err := parseRow([]string{"a=1", "b=x=y", "c="})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "1", "b": "x=y", "c": ""}, row)

	_, err = parseRow([]string{"=v"})
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "autolabel version")
	assert.Contains(t, stdout, "schema: v1alpha1")
}
