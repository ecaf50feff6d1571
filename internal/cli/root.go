// Package cli wires the command line surface: flag parsing, the render
// pipeline, the write step and the final hand-off to the launch command.
package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/entrypoint/internal/version"
	"github.com/arthur-debert/entrypoint/pkg/core"
	"github.com/arthur-debert/entrypoint/pkg/environment"
	"github.com/arthur-debert/entrypoint/pkg/errors"
	"github.com/arthur-debert/entrypoint/pkg/launch"
	"github.com/arthur-debert/entrypoint/pkg/logging"
	"github.com/arthur-debert/entrypoint/pkg/properties"
	"github.com/arthur-debert/entrypoint/pkg/writer"
)

// Deps carries the process-level capabilities so tests can substitute a
// fixed environment, an in-memory filesystem and a fake launcher.
type Deps struct {
	Fs      afero.Fs
	Capture func() environment.Snapshot
	Launch  func(argv []string) error
}

// NewRootCmd creates the root command with production dependencies.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(Deps{
		Fs:      afero.NewOsFs(),
		Capture: environment.Capture,
		Launch:  launch.Exec,
	})
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
func NewRootCmdWithDeps(deps Deps) *cobra.Command {
	var (
		verbosity  int
		configFile string
		propFiles  []string
		setProps   []string
		rootPrefix string
		dryRun     bool
		overwrite  bool
	)

	rootCmd := &cobra.Command{
		Use:   "entrypoint [flags] -- CMD [ARGS...]",
		Short: "Render templates, then hand the process over to your command",
		Long: `entrypoint is a container entrypoint helper: it renders template files
into destination files using supplied properties and environment variables,
then optionally replaces itself with a command.

The configuration file is a YAML mapping of TEMPLATE_PATH: DESTINATION_PATH.
Template paths are relative to the configuration file unless absolute.
Templates see two bindings: "env" (the process environment) and "props"
(the merged property files).

Example:
  entrypoint --config prod.conf --props common.yml --props prod.yml -- apachectl -D FOREGROUND`,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cli")

			cmdArgs, err := splitCommandArgs(cmd, args)
			if err != nil {
				return err
			}

			extraProps, err := parseSetProps(setProps)
			if err != nil {
				return err
			}

			if configFile != "" {
				pipeline := core.NewPipeline(deps.Fs, deps.Capture())
				output, err := pipeline.Run(core.Options{
					ConfigFile:    configFile,
					PropertyFiles: propFiles,
					ExtraProps:    extraProps,
					RootPrefix:    rootPrefix,
				})
				if err != nil {
					return err
				}

				w := writer.NewWriter(deps.Fs, cmd.OutOrStdout())
				if err := w.WriteAll(output, dryRun, overwrite); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), "No templates to render")
			}

			if len(cmdArgs) > 0 && !dryRun {
				fmt.Fprintln(cmd.OutOrStdout(), "Launching:", strings.Join(cmdArgs, " "))
				logger.Info().Strs("argv", cmdArgs).Msg("launching command")
				return deps.Launch(cmdArgs)
			}

			return nil
		},
	}

	rootCmd.Flags().StringVar(&configFile, "config", "", "Template configuration file; empty skips rendering")
	rootCmd.Flags().StringArrayVar(&propFiles, "props", nil, "Property file merged into the 'props' binding (repeatable, later files win)")
	rootCmd.Flags().StringArrayVar(&setProps, "set", nil, "Extra property as key=value, overrides property files (repeatable)")
	rootCmd.Flags().StringVar(&rootPrefix, "root", "", "Resolve templates as if the configuration file lived under this prefix")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the rendered templates instead of writing them, and skip the launch")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite destination files that already exist")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")

	return rootCmd
}

// splitCommandArgs separates the launch command from the positional
// arguments. Everything after the "--" separator is the command; any
// positional argument before it (or without a separator at all) is a
// usage error.
func splitCommandArgs(cmd *cobra.Command, args []string) ([]string, error) {
	dash := cmd.ArgsLenAtDash()
	if dash == -1 {
		if len(args) > 0 {
			return nil, errors.Newf(errors.ErrUsage,
				"invalid command line arguments: %s (use '--' before the command to launch)",
				strings.Join(args, " "))
		}
		return nil, nil
	}

	if invalid := args[:dash]; len(invalid) > 0 {
		return nil, errors.Newf(errors.ErrUsage,
			"invalid command line arguments: %s (use '--' before the command to launch)",
			strings.Join(invalid, " "))
	}

	return args[dash:], nil
}

// parseSetProps turns --set key=value flags into a property bag.
func parseSetProps(pairs []string) (properties.Bag, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	bag := make(properties.Bag, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, errors.Newf(errors.ErrUsage, "invalid --set value %q, expected key=value", pair)
		}
		bag[key] = value
	}
	return bag, nil
}
