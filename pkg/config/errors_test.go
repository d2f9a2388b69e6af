package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpatil524/autolabel/pkg/schema"
)

func TestErrorKinds_AreDistinct(t *testing.T) {
	kinds := []error{
		&SchemaValidationError{},
		&MissingRequiredSectionError{Section: "model"},
		&MissingKeyError{Section: "model", Key: "name"},
		&ConfigError{Field: "prompt.example_template", Message: "must not be empty"},
	}
	sentinels := []error{ErrSchemaValidation, ErrMissingSection, ErrMissingKey, ErrInvalidValue}

	for i, err := range kinds {
		for j, sentinel := range sentinels {
			assert.Equal(t, i == j, errors.Is(err, sentinel), "%T vs %v", err, sentinel)
		}
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "schema errors",
			err: &SchemaValidationError{Errors: []schema.ValidationError{
				{Field: "task_type", Description: "must be one of the enum values", Value: "x"},
				{Field: "(root)", Description: "model is required"},
			}},
			want: "configuration does not match schema:\n" +
				"  - task_type: must be one of the enum values (value: x)\n" +
				"  - (root): model is required",
		},
		{
			name: "schema without detail",
			err:  &SchemaValidationError{},
			want: "configuration does not match schema",
		},
		{
			name: "missing section",
			err:  &MissingRequiredSectionError{Section: "prompt"},
			want: `config is missing required section "prompt"`,
		},
		{
			name: "missing top-level key",
			err:  &MissingKeyError{Key: "task_name"},
			want: `config is missing required key "task_name"`,
		},
		{
			name: "missing section key",
			err:  &MissingKeyError{Section: "model", Key: "provider"},
			want: `config is missing required key "model.provider"`,
		},
		{
			name: "config error with value",
			err:  &ConfigError{Field: "kind", Message: `expected "LabelingConfig"`, Value: "Arena"},
			want: `invalid config field kind: expected "LabelingConfig" (value: Arena)`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}
