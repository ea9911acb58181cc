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

	"github.com/walteh/linepatch/pkg/log"
	"github.com/walteh/linepatch/pkg/status"
	"github.com/walteh/linepatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// NewCheckOperation reports how many lines each configured patch would touch
// without writing anything.
func NewCheckOperation(opts Options) Operation {
	return &checkOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type checkOperation struct {
	BaseOperation
}

func (op *checkOperation) Execute(ctx context.Context) error {
	jobs, err := op.plan(ctx)
	if err != nil {
		return errors.Errorf("resolving files: %w", err)
	}

	op.Logger.StartRun(ctx, log.RunOperation{
		Name:    "check",
		Patches: len(op.Config.Patches),
		DryRun:  true,
	})
	defer op.Logger.EndRun(ctx)

	op.Store.StartOperation(ctx, len(jobs))
	defer op.Store.FinishOperation(ctx)

	for i, job := range jobs {
		info, err := op.checkFile(ctx, job)
		if err != nil {
			op.Store.TrackFile(ctx, job.path, status.FileInfo{Status: status.StatusFailed, Error: err})
			return errors.Errorf("checking %s: %w", job.path, err)
		}

		op.Store.TrackFile(ctx, job.path, info)
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:      job.path,
			Status:    info.Status.String(),
			Lines:     info.Lines,
			Matches:   info.Matches,
			IsPreview: info.Status == status.StatusPreview,
		})
		op.Store.UpdateProgress(ctx, i+1)
	}

	return nil
}

// checkFile counts matches of every rule against the current file content.
// Rules are evaluated independently, so a phrase introduced by an earlier
// rule's insertion is not counted.
func (op *checkOperation) checkFile(ctx context.Context, job *fileJob) (status.FileInfo, error) {
	content, err := op.Store.ReadFile(ctx, job.path)
	if err != nil {
		return status.FileInfo{}, err
	}

	info := status.FileInfo{
		Status:   status.StatusUnchanged,
		Lines:    len(text.SplitLines(string(content))),
		Checksum: status.Checksum(content),
	}
	for _, rule := range job.rules {
		matched, err := op.patcher.CountMatches(ctx, bytes.NewReader(content), rule.SearchPhrase)
		if err != nil {
			return status.FileInfo{}, err
		}
		info.Matches += len(matched)
	}
	if info.Matches > 0 {
		info.Status = status.StatusPreview
	}

	return info, nil
}
