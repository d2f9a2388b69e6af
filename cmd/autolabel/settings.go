package main

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/rpatil524/autolabel/pkg/config"
	"github.com/rpatil524/autolabel/pkg/logger"
)

const envPrefix = "AUTOLABEL"

const (
	flagLogLevel     = "log-level"
	flagLogFormat    = "log-format"
	flagSchemaSource = "schema-source"
	flagOutput       = "output"

	outputYAML = "yaml"
	outputJSON = "json"
)

// settingFlags maps setting keys to the persistent flags that override them.
var settingFlags = map[string]string{
	"log_level":     flagLogLevel,
	"log_format":    flagLogFormat,
	"schema_source": flagSchemaSource,
	"output":        flagOutput,
}

// Settings configures the CLI itself, not the labeling task.
type Settings struct {
	LogLevel     string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`
	LogFormat    string `mapstructure:"log_format" validate:"required,oneof=text json"`
	SchemaSource string `mapstructure:"schema_source"`
	Output       string `mapstructure:"output" validate:"required,oneof=yaml json"`
}

var validate = validator.New()

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "")
	v.SetDefault("log_format", logger.FormatText)
	v.SetDefault("schema_source", "")
	v.SetDefault("output", outputYAML)
	return v
}

func loadSettings(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	s.LogLevel = strings.ToLower(s.LogLevel)
	s.LogFormat = strings.ToLower(s.LogFormat)
	s.Output = strings.ToLower(s.Output)

	if err := validate.Struct(&s); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return &s, nil
}

// loadOptions builds config options for the current settings.
func (s *Settings) loadOptions(skipSchema bool) ([]config.Option, error) {
	if skipSchema {
		return []config.Option{config.WithValidation(false)}, nil
	}
	if s.SchemaSource == "" {
		return nil, nil
	}
	v, err := config.NewSchemaValidatorFromSource(s.SchemaSource)
	if err != nil {
		return nil, err
	}
	return []config.Option{config.WithValidator(v)}, nil
}

func (a *app) load(path string, skipSchema bool) (*config.AutolabelConfig, error) {
	opts, err := a.settings.loadOptions(skipSchema)
	if err != nil {
		return nil, err
	}
	return config.Load(path, opts...)
}
