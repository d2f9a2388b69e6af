package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		rows       []string
		skipSchema bool
	)

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render the example template for one row",
		Long: `Fills the task's example template with column values given as --row flags.

Examples:
  autolabel render task.yaml --row question="What is 2+2?" --row answer=4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			row, err := parseRow(rows)
			if err != nil {
				return err
			}
			cfg, err := a.load(args[0], skipSchema)
			if err != nil {
				return err
			}
			out, err := cfg.RenderExample(row)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringArrayVar(&rows, "row", nil, "Column value as key=value (repeatable)")
	cmd.Flags().BoolVar(&skipSchema, "skip-schema", false, "Skip JSON schema validation")
	return cmd
}

func parseRow(pairs []string) (map[string]string, error) {
	row := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid row value %q, expected key=value", pair)
		}
		row[key] = value
	}
	return row, nil
}
