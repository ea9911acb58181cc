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

package opts

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/linepatch/pkg/config"
	"github.com/walteh/linepatch/pkg/log"
	"github.com/walteh/linepatch/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// RootOpts holds the dependencies shared by every command. It is filled in
// once flags are parsed, before any command runs.
type RootOpts struct {
	// Config is the loaded (or built-in) configuration
	Config *config.Config
	// BaseDir resolves relative patch files: the config file's directory, or
	// the working directory for the built-in configuration
	BaseDir string
	// Console receives per-file output
	Console io.Writer
	// Logs receives structured logs
	Logs io.Writer
	// UserLogger prints the end-of-run summary
	UserLogger *log.UserLogger
	// Debug mirrors console output into the structured log
	Debug bool
}

// PatchFlags replace the configured patches with a single one when any of
// them is set on the command line
type PatchFlags struct {
	File   string
	Search string
	Insert string
	Backup bool
	DryRun bool
	Async  bool
}

// LoadConfig reads the configuration at path. When path is the default and
// does not exist, the built-in configuration is returned instead.
func LoadConfig(ctx context.Context, path string, explicit bool) (*config.Config, string, error) {
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using built-in defaults")
			wd, err := os.Getwd()
			if err != nil {
				return nil, "", errors.Errorf("getting working directory: %w", err)
			}
			return config.Default(), wd, nil
		}
		return nil, "", errors.Errorf("loading config: %w", err)
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, "", errors.Errorf("loading config: %w", err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, "", errors.Errorf("resolving config directory: %w", err)
	}

	return cfg, baseDir, nil
}

// Apply merges the flags into a copy of cfg. changed reports whether a flag
// was set explicitly.
func (f *PatchFlags) Apply(cfg *config.Config, changed func(name string) bool) (*config.Config, error) {
	out := *cfg
	out.Patches = append([]config.Patch(nil), cfg.Patches...)

	if changed("file") || changed("search") || changed("insert") {
		out.Patches = []config.Patch{{File: f.File, Search: f.Search, Insert: f.Insert}}
	}
	if changed("backup") {
		out.Backup = f.Backup
	}
	if changed("dry-run") {
		out.DryRun = f.DryRun
	}
	if changed("async") {
		out.Async = f.Async
	}

	if err := out.Validate(); err != nil {
		return nil, errors.Errorf("validating flags: %w", err)
	}

	return &out, nil
}

// NewConsoleLogger creates the per-file console logger. Its structured mirror
// is only enabled with --debug.
func (o *RootOpts) NewConsoleLogger() *log.Logger {
	level := zerolog.Disabled
	if o.Debug {
		level = zerolog.DebugLevel
	}
	return log.New(o.Console, o.Logs, level)
}

// NewStore creates the status manager every command writes through
func (o *RootOpts) NewStore(ctx context.Context) *status.Manager {
	return status.New(o.BaseDir, zerolog.Ctx(ctx))
}
