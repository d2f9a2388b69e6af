package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rpatil524/autolabel/pkg/config"
)

type validateOptions struct {
	skipSchema bool
	strict     bool
	verbose    bool
}

func newValidateCmd(a *app) *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <file>...",
		Short: "Validate task configurations against the task schema",
		Long: `Validates one or more task configuration files (YAML or JSON).

Each file is checked against the task schema, then for consistency problems
such as example templates that reference unknown columns.

Examples:
  autolabel validate task.yaml
  autolabel validate configs/*.json --strict
  autolabel validate task.yaml --schema-source ./task.schema.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, path := range args {
				if err := a.validateFile(cmd.OutOrStdout(), path, opts); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s: %v\n", filepath.Base(path), err)
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d file(s) failed validation", failed, len(args))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.skipSchema, "skip-schema", false, "Skip JSON schema validation")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "Treat warnings as errors")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Show every schema error")
	return cmd
}

const maxSchemaErrors = 5

func (a *app) validateFile(out io.Writer, path string, opts *validateOptions) error {
	cfg, err := a.load(path, opts.skipSchema)
	if err != nil {
		var sve *config.SchemaValidationError
		if errors.As(err, &sve) && len(sve.Errors) > 0 {
			displaySchemaErrors(out, sve, opts.verbose)
			return fmt.Errorf("schema validation failed with %d error(s)", len(sve.Errors))
		}
		return err
	}

	validator := config.NewConfigValidatorWithPath(cfg, path)
	if err := validator.Validate(); err != nil {
		return err
	}

	warnings := validator.GetWarnings()
	if len(warnings) > 0 {
		fmt.Fprintf(out, "⚠️  %s: %d warning(s)\n", filepath.Base(path), len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(out, "  - %s\n", w)
		}
		if opts.strict {
			return fmt.Errorf("%d warning(s) in strict mode", len(warnings))
		}
	}

	fmt.Fprintf(out, "✅ %s is valid\n", filepath.Base(path))
	return nil
}

func displaySchemaErrors(out io.Writer, sve *config.SchemaValidationError, verbose bool) {
	limit := maxSchemaErrors
	if verbose {
		limit = len(sve.Errors)
	}

	for i, e := range sve.Errors {
		if i == limit {
			fmt.Fprintf(out, "  ... and %d more (use --verbose to see all)\n", len(sve.Errors)-limit)
			break
		}
		fmt.Fprintf(out, "  - %s\n", e.Error())
	}
}
