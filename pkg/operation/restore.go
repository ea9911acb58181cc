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

	"github.com/walteh/linepatch/pkg/log"
	"github.com/walteh/linepatch/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// NewRestoreOperation puts back the .bak copy of every configured file
func NewRestoreOperation(opts Options) Operation {
	return &restoreOperation{
		BaseOperation: NewBaseOperation(opts),
	}
}

type restoreOperation struct {
	BaseOperation
}

func (op *restoreOperation) Execute(ctx context.Context) error {
	jobs, err := op.plan(ctx)
	if err != nil {
		return errors.Errorf("resolving files: %w", err)
	}

	op.Logger.StartRun(ctx, log.RunOperation{
		Name:    "restore",
		Patches: len(op.Config.Patches),
	})
	defer op.Logger.EndRun(ctx)

	op.Store.StartOperation(ctx, len(jobs))
	defer op.Store.FinishOperation(ctx)

	for i, job := range jobs {
		if err := op.Store.RestoreFile(ctx, job.path); err != nil {
			op.Store.TrackFile(ctx, job.path, status.FileInfo{Status: status.StatusFailed, Error: err})
			return errors.Errorf("restoring %s: %w", job.path, err)
		}

		op.Store.TrackFile(ctx, job.path, status.FileInfo{Status: status.StatusRestored})
		op.Logger.LogFileOperation(ctx, log.FileOperation{
			Path:       job.path,
			Status:     status.StatusRestored.String(),
			IsModified: true,
		})
		op.Store.UpdateProgress(ctx, i+1)
	}

	return nil
}
