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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/linepatch/pkg/operation"
)

func TestResolveFiles(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"data/level1.json", "data/level12.json", "data/sub/level3.json", "data/notes.txt"} {
		writeFile(t, dir, f, "")
	}

	tests := []struct {
		name     string
		pattern  string
		expected []string
		wantErr  string
	}{
		{
			name:     "literal_path_is_untouched",
			pattern:  "data/does-not-exist.json",
			expected: []string{"data/does-not-exist.json"},
		},
		{
			name:     "single_star",
			pattern:  "data/*.json",
			expected: []string{"data/level1.json", "data/level12.json"},
		},
		{
			name:     "double_star",
			pattern:  "data/**/*.json",
			expected: []string{"data/level1.json", "data/level12.json", "data/sub/level3.json"},
		},
		{
			name:     "alternation",
			pattern:  "data/{notes.txt,level1.json}",
			expected: []string{"data/level1.json", "data/notes.txt"},
		},
		{
			name:     "directories_are_skipped",
			pattern:  "data/*",
			expected: []string{"data/level1.json", "data/level12.json", "data/notes.txt"},
		},
		{
			name:    "no_match",
			pattern: "data/*.yaml",
			wantErr: "no files match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := operation.ResolveFiles(dir, tt.pattern)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			expected := make([]string, len(tt.expected))
			for i, e := range tt.expected {
				expected[i] = filepath.FromSlash(e)
			}
			assert.Equal(t, expected, files)
		})
	}
}

func TestResolveFiles_AbsoluteGlob(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", "")
	writeFile(t, dir, "b.json", "")

	files, err := operation.ResolveFiles("/unused", filepath.Join(dir, "*.json"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, files)
}
