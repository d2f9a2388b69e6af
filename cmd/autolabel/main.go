// Command autolabel inspects and validates labeling task configurations.
package main

import (
	"cmp"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rpatil524/autolabel/pkg/logger"
)

// app carries state shared by all subcommands of one root command.
type app struct {
	v        *viper.Viper
	settings *Settings
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper()}

	rootCmd := &cobra.Command{
		Use:           "autolabel",
		Short:         "Validate and inspect autolabel task configurations",
		Version:       GetVersion(),
		SilenceUsage:  true, // Don't print usage on error
		SilenceErrors: false,
		Long: `autolabel resolves labeling task configurations: it validates a task
document against the task schema and shows every setting with defaults applied.

Settings can also be provided through AUTOLABEL_* environment variables, e.g.
AUTOLABEL_LOG_LEVEL=debug or AUTOLABEL_SCHEMA_SOURCE=./task.schema.json.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(a.v)
			if err != nil {
				return err
			}
			a.settings = settings

			if settings.LogLevel != "" || settings.LogFormat != logger.FormatText {
				level, _ := logger.ParseLevel(cmp.Or(settings.LogLevel, os.Getenv("LOG_LEVEL")))
				logger.Configure(cmd.ErrOrStderr(), level, settings.LogFormat)
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(flagLogLevel, "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")
	flags.String(flagLogFormat, logger.FormatText, "Log format: text or json")
	flags.String(flagSchemaSource, "", "Schema to validate against: builtin, a file path, or a URL")
	flags.StringP(flagOutput, "o", outputYAML, "Output format: yaml or json")
	bindFlags(a.v, rootCmd)

	rootCmd.SetVersionTemplate(GetVersionInfo() + "\n")
	rootCmd.AddCommand(
		newValidateCmd(a),
		newShowCmd(a),
		newSchemaCmd(),
		newRenderCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// bindFlags lets flags override AUTOLABEL_* environment settings.
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for key, name := range settingFlags {
		_ = v.BindPFlag(key, cmd.PersistentFlags().Lookup(name))
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Error already printed by cobra
		os.Exit(1)
	}
}
