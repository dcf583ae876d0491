package main

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/textrepair/cmd/textrepair/commands"
	"github.com/walteh/textrepair/cmd/textrepair/opts"
)

// newRootCmd builds the command tree writing reports to stdout and logs to stderr
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "textrepair",
		Short: "Apply literal text repairs to every file in a tree",
		Long: `textrepair walks a directory, applies an ordered list of literal
substitutions to every selected file and rewrites only the files that changed.

Built-in presets cover malformed empty CSS declarations (css) and double
encoded UTF-8 text (mojibake).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := setupLogging(stderr, rootOpts.Debug)
			cmd.SetContext(logger.WithContext(cmd.Context()))
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewFixCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, rootOpts *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&rootOpts.ConfigFile, "config", "c", "", "config file path (.yaml, .hcl or .json)")
	cmd.PersistentFlags().BoolVarP(&rootOpts.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}
