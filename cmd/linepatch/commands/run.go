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

package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/linepatch/cmd/linepatch/opts"
	"github.com/walteh/linepatch/pkg/config"
	"github.com/walteh/linepatch/pkg/log"
	"github.com/walteh/linepatch/pkg/operation"
	"github.com/walteh/linepatch/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// AddPatchFlags registers the flags that select which patches run
func AddPatchFlags(cmd *cobra.Command, f *opts.PatchFlags) {
	cmd.Flags().StringVar(&f.File, "file", config.DefaultFile, "file or doublestar glob to patch")
	cmd.Flags().StringVar(&f.Search, "search", config.DefaultSearch, "phrase a line must contain to be patched")
	cmd.Flags().StringVar(&f.Insert, "insert", config.DefaultInsert, "text appended to every matching line")
}

// AddWriteFlags registers the flags that control how patches are written
func AddWriteFlags(cmd *cobra.Command, f *opts.PatchFlags) {
	cmd.Flags().BoolVar(&f.Backup, "backup", false, "write a .bak copy of each file before patching")
	cmd.Flags().BoolVar(&f.DryRun, "dry-run", false, "show what would change without writing")
	cmd.Flags().BoolVar(&f.Async, "async", false, "patch different files concurrently")
}

type newOperationFunc func(operation.Options) operation.Operation

// runOperation merges flags into the configuration, runs the operation and
// reports every tracked file to the user
func runOperation(cmd *cobra.Command, o *opts.RootOpts, f *opts.PatchFlags, name string, newOp newOperationFunc) error {
	ctx := zerolog.Ctx(cmd.Context()).With().Str("command", name).Logger().WithContext(cmd.Context())

	cfg, err := f.Apply(o.Config, func(flag string) bool {
		fl := cmd.Flags().Lookup(flag)
		return fl != nil && fl.Changed
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Str("base_dir", o.BaseDir).Msg("running operation")

	console := o.NewConsoleLogger()
	console.Header(name)
	source := cfg.Location()
	if source == "" {
		source = "built-in defaults"
	}
	console.Infof("config: %s", source)
	if cfg.DryRun && name == "apply" {
		console.Warning("dry run, no files will be written")
	}

	store := o.NewStore(ctx)
	op := newOp(operation.Options{
		Config:  cfg,
		Store:   store,
		BaseDir: o.BaseDir,
		Logger:  console,
	})

	runner := operation.NewRunner(zerolog.Ctx(ctx), cfg.Async)
	runErr := runner.Run(ctx, op)

	console.LogNewline()
	if runErr != nil {
		console.Errorf("%s failed", name)
	} else {
		console.Successf("%s complete", name)
	}

	if err := report(ctx, name, o.UserLogger, store); err != nil {
		return err
	}

	if runErr != nil {
		return errors.Errorf("running %s: %w", name, runErr)
	}
	return nil
}

func report(ctx context.Context, name string, user *log.UserLogger, store *status.Manager) error {
	if user == nil {
		return nil
	}

	files, err := store.ListFiles(ctx)
	if err != nil {
		return errors.Errorf("listing files: %w", err)
	}

	for _, info := range files {
		change := log.FileChange{
			Path:        info.Path,
			Description: fmt.Sprintf("%d/%d lines", info.Matches, info.Lines),
			Error:       info.Error,
		}
		switch info.Status {
		case status.StatusPatched:
			change.Type = log.FilePatched
		case status.StatusPreview:
			change.Type = log.FilePreviewed
		case status.StatusRestored:
			change.Type = log.FileRestored
			change.Description = ""
		case status.StatusUnchanged:
			change.Type = log.FileUnchanged
		default:
			change.Type = log.FileError
			change.Description = ""
		}
		user.LogFileChange(change)
	}
	user.LogStateChange(fmt.Sprintf("%s: %d files", name, len(files)))

	return nil
}
