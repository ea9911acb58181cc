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
	"github.com/spf13/cobra"
	"github.com/walteh/linepatch/cmd/linepatch/opts"
	"github.com/walteh/linepatch/pkg/operation"
)

// NewRestoreCmd creates the restore command
func NewRestoreCmd(o *opts.RootOpts) *cobra.Command {
	f := &opts.PatchFlags{}

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore files from the backups written by apply --backup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, o, f, "restore", operation.NewRestoreOperation)
		},
	}

	cmd.Flags().StringVar(&f.File, "file", "", "file or doublestar glob to restore")

	return cmd
}
