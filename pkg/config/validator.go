package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/rpatil524/autolabel/pkg/template"
)

// ConfigValidator checks a resolved configuration for consistency problems
// the schema cannot express. Errors fail Validate; warnings are advisory.
type ConfigValidator struct {
	config     *AutolabelConfig
	configPath string // path to the config file for resolving relative paths
	errors     []error
	warns      []string
}

// NewConfigValidator creates a new configuration validator
func NewConfigValidator(cfg *AutolabelConfig) *ConfigValidator {
	return &ConfigValidator{
		config: cfg,
		errors: make([]error, 0),
		warns:  make([]string, 0),
	}
}

// NewConfigValidatorWithPath creates a validator that also checks that a
// few-shot example file exists, relative to configPath.
func NewConfigValidatorWithPath(cfg *AutolabelConfig, configPath string) *ConfigValidator {
	v := NewConfigValidator(cfg)
	v.configPath = configPath
	return v
}

// Validate runs every check and returns the collected errors joined.
func (v *ConfigValidator) Validate() error {
	v.errors = v.errors[:0]
	v.warns = v.warns[:0]

	v.validateRequiredKeys()
	v.validateExampleTemplate()
	v.validateFewShot()
	v.validateAttributes()
	v.validateChunking()

	if len(v.errors) > 0 {
		return fmt.Errorf("configuration validation failed with %d errors: %w", len(v.errors), errors.Join(v.errors...))
	}
	return nil
}

// GetWarnings returns all validation warnings
func (v *ConfigValidator) GetWarnings() []string {
	return v.warns
}

// Lint runs a ConfigValidator over c and returns its errors and warnings
// as messages, errors first.
func (c *AutolabelConfig) Lint() []string {
	v := NewConfigValidator(c)
	_ = v.Validate()
	out := make([]string, 0, len(v.errors)+len(v.warns))
	for _, err := range v.errors {
		out = append(out, err.Error())
	}
	return append(out, v.warns...)
}

func (v *ConfigValidator) validateRequiredKeys() {
	for _, get := range []func() (string, error){
		v.config.TaskName, v.config.TaskType, v.config.Provider, v.config.ModelName,
	} {
		if _, err := get(); err != nil {
			v.errors = append(v.errors, err)
		}
	}
}

func (v *ConfigValidator) validateExampleTemplate() {
	tmpl, err := v.config.ExampleTemplate()
	if err != nil {
		v.warns = append(v.warns, err.Error())
		return
	}

	columns := v.knownColumns()
	unknown, err := template.UnknownColumns(tmpl, columns)
	if err != nil {
		v.errors = append(v.errors, &ConfigError{Field: "prompt.example_template", Message: err.Error()})
		return
	}
	if len(columns) == 0 {
		return
	}
	for _, col := range unknown {
		v.warns = append(v.warns, fmt.Sprintf("example template references unknown column %q", col))
	}
}

// knownColumns lists every column the dataset section names.
func (v *ConfigValidator) knownColumns() []string {
	c := v.config
	columns := append([]string{}, c.InputColumns()...)
	columns = append(columns, c.OutputColumns()...)
	for _, col := range []string{c.LabelColumn(), c.TextColumn(), c.ExplanationColumn()} {
		if col != "" {
			columns = append(columns, col)
		}
	}
	return columns
}

func (v *ConfigValidator) validateFewShot() {
	c := v.config
	examples := c.FewShotExampleSet()

	if c.FewShotNumExamples() > 0 {
		if examples.IsEmpty() {
			v.warns = append(v.warns, "few_shot_num is set but no few_shot_examples are configured")
		}
		if c.FewShotAlgorithm() == "" {
			v.warns = append(v.warns, "few_shot_num is set but few_shot_selection is not")
		}
	}

	if examples.Path != "" && v.configPath != "" {
		path := examples.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(filepath.Dir(v.configPath), path)
		}
		if _, err := os.Stat(path); err != nil {
			v.warns = append(v.warns, fmt.Sprintf("few-shot example file not found: %s", path))
		}
	}
}

func (v *ConfigValidator) validateAttributes() {
	seen := make(map[string]bool)
	for i, attr := range v.config.Attributes() {
		if attr.Name == "" {
			v.errors = append(v.errors, &ConfigError{
				Field:   fmt.Sprintf("prompt.attributes[%d].name", i),
				Message: "attribute name is required",
			})
			continue
		}
		if seen[attr.Name] {
			v.errors = append(v.errors, &ConfigError{
				Field:   fmt.Sprintf("prompt.attributes[%d].name", i),
				Message: "duplicate attribute name",
				Value:   attr.Name,
			})
		}
		seen[attr.Name] = true
	}

	if name := v.config.LabelSelectionAttribute(); name != "" {
		if len(v.config.LabelsList()) == 0 && !v.attributeHasOptions(name) {
			v.warns = append(v.warns, fmt.Sprintf("label selection is enabled on %q but no labels are defined", name))
		}
	}
}

func (v *ConfigValidator) attributeHasOptions(name string) bool {
	for _, attr := range v.config.Attributes() {
		if attr.Name == name {
			return len(attr.Options) > 0
		}
	}
	return false
}

func (v *ConfigValidator) validateChunking() {
	col := v.config.ConfidenceChunkColumn()
	inputs := v.config.InputColumns()
	if col == "" || len(inputs) == 0 {
		return
	}
	if !slices.Contains(inputs, col) {
		v.warns = append(v.warns, fmt.Sprintf("confidence chunk column %q is not an input column", col))
	}
}
