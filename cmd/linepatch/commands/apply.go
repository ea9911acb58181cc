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

// NewApplyCmd creates the apply command
func NewApplyCmd(o *opts.RootOpts) *cobra.Command {
	f := &opts.PatchFlags{}

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Append text to every line that contains a search phrase",
		Long: `Apply rewrites each configured file in place. Every line containing the
search phrase has its trailing whitespace removed and the insertion text
appended, followed by a newline. Other lines are left untouched.

Patching is not idempotent: running apply twice appends the text twice.`,
		Example: `  linepatch apply
  linepatch apply --file 'data/*.json' --search queue_free --insert ', "start_disabled": false'
  linepatch apply --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunApply(cmd, o, f)
		},
	}

	AddPatchFlags(cmd, f)
	AddWriteFlags(cmd, f)

	return cmd
}

// RunApply runs the patch operation for cmd. The root command uses it as its
// default action.
func RunApply(cmd *cobra.Command, o *opts.RootOpts, f *opts.PatchFlags) error {
	return runOperation(cmd, o, f, "apply", operation.NewPatchOperation)
}
