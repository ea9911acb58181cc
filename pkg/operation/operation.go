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

package operation

import (
	"context"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/linepatch/pkg/config"
	"github.com/walteh/linepatch/pkg/log"
	"github.com/walteh/linepatch/pkg/status"
	"github.com/walteh/linepatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Operation is a unit of work run by a Runner
type Operation interface {
	Execute(ctx context.Context) error
}

// Store reads and rewrites files and records what happened to them
type Store interface {
	status.FileManager
	status.StatusReporter
}

// Options configures an operation
type Options struct {
	// Config lists the patches to apply
	Config *config.Config
	// Store performs file I/O and status tracking
	Store Store
	// BaseDir resolves relative patch files and globs; it must match the Store's base directory
	BaseDir string
	// Logger prints per-file console output
	Logger *log.Logger
}

// BaseOperation holds what every operation shares
type BaseOperation struct {
	Options
	patcher *text.LinePatcher
}

func NewBaseOperation(opts Options) BaseOperation {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, io.Discard, zerolog.Disabled)
	}
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	return BaseOperation{
		Options: opts,
		patcher: text.NewLinePatcher(),
	}
}

// fileJob is the ordered list of rules to apply to a single file
type fileJob struct {
	path  string // as first written in the config, used for display and tracking
	rules []text.PatchRule
}

// fileKey identifies a file no matter how a patch spells its path
func (op *BaseOperation) fileKey(path string) (string, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(op.BaseDir, path)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", path, err)
	}
	return abs, nil
}

// plan resolves every configured patch to concrete files and groups the rules
// by file. Files keep the order in which they first appear and rules keep
// configuration order. Two spellings of the same file share one job.
func (op *BaseOperation) plan(ctx context.Context) ([]*fileJob, error) {
	var jobs []*fileJob
	byKey := map[string]*fileJob{}

	for _, p := range op.Config.Patches {
		files, err := ResolveFiles(op.BaseDir, p.File)
		if err != nil {
			return nil, err
		}

		rule := text.PatchRule{SearchPhrase: p.Search, InsertText: p.Insert}
		for _, f := range files {
			key, err := op.fileKey(f)
			if err != nil {
				return nil, err
			}
			job, ok := byKey[key]
			if !ok {
				job = &fileJob{path: f}
				byKey[key] = job
				jobs = append(jobs, job)
			}
			job.rules = append(job.rules, rule)
		}
	}

	zerolog.Ctx(ctx).Debug().Int("files", len(jobs)).Int("patches", len(op.Config.Patches)).Msg("planned patches")

	return jobs, nil
}
