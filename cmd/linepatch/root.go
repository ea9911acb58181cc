// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/linepatch/cmd/linepatch/commands"
	"github.com/walteh/linepatch/cmd/linepatch/opts"
	"github.com/walteh/linepatch/pkg/log"
)

const defaultConfigFile = ".linepatch.yaml"

// rootFlags are the persistent flags shared by every command
type rootFlags struct {
	configFile string
	debug      bool
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, f *rootFlags) {
	cmd.PersistentFlags().StringVarP(&f.configFile, "config", "c", defaultConfigFile, "config file path (.yaml, .yml, .hcl, .json or .toml)")
	cmd.PersistentFlags().BoolVarP(&f.debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging(ctx context.Context, stderr io.Writer, debug bool) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}

// newRootCmd builds the command tree. Running the root without a subcommand
// applies the configured patches.
func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}
	o := &opts.RootOpts{Console: stdout, Logs: stderr}
	patch := &opts.PatchFlags{}

	rootCmd := &cobra.Command{
		Use:   "linepatch",
		Short: "Append text to lines containing a search phrase",
		Long: `linepatch rewrites files in place, appending an insertion text to every
line that contains a search phrase.

Without a config file it patches data/level12.json, adding a
"start_disabled": false entry after every line mentioning queue_free.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context(), stderr, flags.debug)
			cmd.SetContext(ctx)

			cfg, baseDir, err := opts.LoadConfig(ctx, flags.configFile, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}

			o.Config = cfg
			o.BaseDir = baseDir
			o.Debug = flags.debug
			o.UserLogger = log.NewUserLogger(ctx)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.RunApply(cmd, o, patch)
		},
	}

	addRootFlags(rootCmd, flags)
	commands.AddPatchFlags(rootCmd, patch)
	commands.AddWriteFlags(rootCmd, patch)

	rootCmd.AddCommand(
		commands.NewApplyCmd(o),
		commands.NewCheckCmd(o),
		commands.NewRestoreCmd(o),
		newVersionCmd(),
	)

	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	return rootCmd
}

// execute runs the CLI with args and returns the first error
func execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	rootCmd := newRootCmd(stdout, stderr)
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
