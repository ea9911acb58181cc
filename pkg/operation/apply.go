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
	"bytes"
	"context"
	"sync/atomic"

	"github.com/walteh/linepatch/pkg/log"
	"github.com/walteh/linepatch/pkg/status"
	"github.com/walteh/linepatch/pkg/text"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// NewPatchOperation applies every configured patch. Rules for the same file
// run in configuration order; with Config.Async distinct files are patched
// concurrently.
func NewPatchOperation(opts Options) Operation {
	return &patchOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type patchOperation struct {
	BaseOperation
	processed atomic.Int64
}

func (op *patchOperation) Execute(ctx context.Context) error {
	jobs, err := op.plan(ctx)
	if err != nil {
		return errors.Errorf("resolving files: %w", err)
	}

	op.Logger.StartRun(ctx, log.RunOperation{
		Name:    "apply",
		Patches: len(op.Config.Patches),
		DryRun:  op.Config.DryRun,
	})
	defer op.Logger.EndRun(ctx)

	op.Store.StartOperation(ctx, len(jobs))
	defer op.Store.FinishOperation(ctx)

	if !op.Config.Async {
		for _, job := range jobs {
			if err := op.runJob(ctx, job); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, job := range jobs {
		g.Go(func() error {
			return op.runJob(gctx, job)
		})
	}
	return g.Wait()
}

func (op *patchOperation) runJob(ctx context.Context, job *fileJob) error {
	if err := ctx.Err(); err != nil {
		return errors.Errorf("patching %s: %w", job.path, err)
	}

	var info status.FileInfo
	var err error
	if op.Config.DryRun {
		info, err = op.previewFile(ctx, job)
	} else {
		info, err = op.patchFile(ctx, job)
	}

	if err != nil {
		op.Store.TrackFile(ctx, job.path, status.FileInfo{Status: status.StatusFailed, Error: err})
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:     job.path,
			Status:   status.StatusFailed.String(),
			IsFailed: true,
		})
		return errors.Errorf("patching %s: %w", job.path, err)
	}

	op.Store.TrackFile(ctx, job.path, info)
	op.Logger.LogFileOperation(ctx, log.FileOperation{
		Path:       job.path,
		Status:     info.Status.String(),
		Lines:      info.Lines,
		Matches:    info.Matches,
		IsModified: info.Status == status.StatusPatched,
		IsPreview:  info.Status == status.StatusPreview,
	})
	op.Store.UpdateProgress(ctx, int(op.processed.Add(1)))

	return nil
}

// patchFile runs a full read-transform-write cycle for each rule
func (op *patchOperation) patchFile(ctx context.Context, job *fileJob) (status.FileInfo, error) {
	if op.Config.Backup {
		if err := op.Store.BackupFile(ctx, job.path); err != nil {
			return status.FileInfo{}, errors.Errorf("backing up: %w", err)
		}
	}

	info := status.FileInfo{Status: status.StatusUnchanged}
	for i, rule := range job.rules {
		result, err := PatchFile(ctx, op.Store, job.path, rule)
		if err != nil {
			return status.FileInfo{}, err
		}
		if i == 0 {
			info.Lines = result.LineCount
		}
		info.Matches += result.MatchCount
		if result.WasModified {
			info.Status = status.StatusPatched
		}
		info.Checksum = status.Checksum(result.ModifiedContent)
	}

	return info, nil
}

// previewFile applies every rule in memory and logs the resulting diff
func (op *patchOperation) previewFile(ctx context.Context, job *fileJob) (status.FileInfo, error) {
	original, err := op.Store.ReadFile(ctx, job.path)
	if err != nil {
		return status.FileInfo{}, err
	}

	info := status.FileInfo{Status: status.StatusUnchanged}
	content := original
	for i, rule := range job.rules {
		result, err := op.patcher.PatchLines(ctx, bytes.NewReader(content), rule)
		if err != nil {
			return status.FileInfo{}, err
		}
		if i == 0 {
			info.Lines = result.LineCount
		}
		info.Matches += result.MatchCount
		if result.WasModified {
			info.Status = status.StatusPreview
		}
		content = result.ModifiedContent
	}
	info.Checksum = status.Checksum(content)

	op.Logger.LogDiff(ctx, job.path, text.LineDiff(string(original), string(content)))

	return info, nil
}
