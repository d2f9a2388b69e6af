package config

import (
	"errors"
	"fmt"
	"os"

	pkgerrors "github.com/rpatil524/autolabel/pkg/errors"
	"github.com/rpatil524/autolabel/pkg/logger"
)

const component = "config"

// Option configures construction of an AutolabelConfig.
type Option func(*options)

type options struct {
	validate  bool
	validator Validator
}

// WithValidation turns schema validation on or off. It is on by default;
// turn it off only for documents that were already validated.
func WithValidation(enabled bool) Option {
	return func(o *options) { o.validate = enabled }
}

// WithValidator replaces the default schema validator.
func WithValidator(v Validator) Option {
	return func(o *options) { o.validator = v }
}

// New builds an AutolabelConfig from doc. When validation is enabled the
// validator runs exactly once, before any other check; when it is disabled
// the validator is never called.
func New(doc *Document, opts ...Option) (*AutolabelConfig, error) {
	if doc == nil {
		return nil, &ConfigError{Field: "document", Message: "must not be nil"}
	}

	o := options{validate: true}
	for _, opt := range opts {
		opt(&o)
	}

	doc, meta, err := unwrapManifest(doc)
	if err != nil {
		return nil, err
	}

	if o.validate {
		v := o.validator
		if v == nil {
			v = DefaultValidator()
		}
		if err := v.Validate(doc); err != nil {
			logger.Debug("config schema validation failed", "error", err)
			return nil, asSchemaValidationError(err)
		}
	}

	for _, section := range []string{sectionModel, sectionPrompt} {
		if _, ok := doc.mapping(section); !ok {
			return nil, &MissingRequiredSectionError{Section: section}
		}
	}

	c := &AutolabelConfig{doc: doc, meta: meta, validated: o.validate}

	taskName, _ := c.TaskName()
	taskType, _ := c.TaskType()
	provider, _ := c.Provider()
	logger.ConfigResolved(taskName, taskType, provider, o.validate, "name", meta.Name)

	return c, nil
}

// FromMap builds an AutolabelConfig from plain Go values.
func FromMap(m map[string]any, opts ...Option) (*AutolabelConfig, error) {
	return New(NewDocument(m), opts...)
}

// Load reads a JSON or YAML document from path and builds an AutolabelConfig.
func Load(path string, opts ...Option) (*AutolabelConfig, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	return New(doc, opts...)
}

// LoadDocument reads and parses a JSON or YAML document from path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is supplied by the caller
	if err != nil {
		return nil, pkgerrors.New(component, "Load", fmt.Errorf("failed to read config file: %w", err)).
			WithDetails(map[string]any{"path": path})
	}

	doc, err := ParseDocument(data)
	if err != nil {
		return nil, pkgerrors.New(component, "Load", err).
			WithDetails(map[string]any{"path": path})
	}
	return doc, nil
}

func asSchemaValidationError(err error) error {
	var sve *SchemaValidationError
	if errors.As(err, &sve) {
		return err
	}
	return &SchemaValidationError{Cause: err}
}
