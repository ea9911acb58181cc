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

package operation_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/linepatch/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// 🧪 funcOperation adapts a function to operation.Operation
type funcOperation func(ctx context.Context) error

func (f funcOperation) Execute(ctx context.Context) error {
	return f(ctx)
}

func TestRunner(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		async   bool
		op      funcOperation
		wantErr error
	}{
		{
			name: "sync_success",
			op:   func(ctx context.Context) error { return nil },
		},
		{
			name:    "sync_error",
			op:      func(ctx context.Context) error { return errBoom },
			wantErr: errBoom,
		},
		{
			name:  "async_success",
			async: true,
			op:    func(ctx context.Context) error { return nil },
		},
		{
			name:    "async_error",
			async:   true,
			op:      func(ctx context.Context) error { return errBoom },
			wantErr: errBoom,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := zerolog.New(zerolog.NewTestWriter(t))
			runner := operation.NewRunner(&logger, tt.async)

			err := runner.Run(context.Background(), tt.op)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestRunner_AsyncCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})
	finished := make(chan struct{})

	op := funcOperation(func(ctx context.Context) error {
		defer close(finished)
		<-release
		return nil
	})

	cancel()
	err := operation.NewRunner(nil, true).Run(ctx, op)
	require.ErrorIs(t, err, context.Canceled)

	close(release)
	<-finished
}
