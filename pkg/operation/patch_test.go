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
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/walteh/linepatch/pkg/config"
	"github.com/walteh/linepatch/pkg/operation"
	"github.com/walteh/linepatch/pkg/status"
	"github.com/walteh/linepatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 🧪 testContext returns a context carrying a zerolog logger bound to t
func testContext(t *testing.T) context.Context {
	t.Helper()
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

// 🧪 writeFile creates path under dir with content and returns the absolute path
func writeFile(t *testing.T, dir, path, content string) string {
	t.Helper()
	abs := filepath.Join(dir, path)
	require.NoError(t, os.MkdirAll(filepath.Dir(abs), 0o755), "creating parent directory")
	require.NoError(t, os.WriteFile(abs, []byte(content), 0o644), "writing test file")
	return abs
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err, "reading file")
	return string(content)
}

const (
	levelSearch = config.DefaultSearch
	levelInsert = config.DefaultInsert
)

func TestPatch(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		search   string
		insert   string
		expected string
	}{
		{
			name:     "level_method_line",
			content:  "{\n\t\t\t\t\t\"method\": \"queue_free\"\n}\n",
			search:   levelSearch,
			insert:   levelInsert,
			expected: "{\n\t\t\t\t\t\"method\": \"queue_free\",\n\t\t\t\t\t\t\"start_disabled\": false\n}\n",
		},
		{
			name:     "no_occurrence_is_identical",
			content:  "{\n\t\"method\": \"show\"\n}\n",
			search:   levelSearch,
			insert:   levelInsert,
			expected: "{\n\t\"method\": \"show\"\n}\n",
		},
		{
			name:     "empty_file_stays_empty",
			content:  "",
			search:   levelSearch,
			insert:   levelInsert,
			expected: "",
		},
		{
			name:     "every_matching_line_patched",
			content:  "a queue_free\nb\nc queue_free  \n",
			search:   "queue_free",
			insert:   ",",
			expected: "a queue_free,\nb\nc queue_free,\n",
		},
		{
			name:     "last_line_without_newline_gains_one",
			content:  "x\nqueue_free",
			search:   "queue_free",
			insert:   "!",
			expected: "x\nqueue_free!\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testContext(t)
			path := writeFile(t, t.TempDir(), "level12.json", tt.content)

			err := operation.Patch(ctx, path, tt.search, tt.insert)
			require.NoError(t, err, "patching file")

			assert.Equal(t, tt.expected, readFile(t, path), "file content should match")
		})
	}
}

func TestPatch_PreservesLineCount(t *testing.T) {
	ctx := testContext(t)
	content := "one queue_free\ntwo\r\nthree queue_free\t\nfour"
	path := writeFile(t, t.TempDir(), "file.txt", content)

	require.NoError(t, operation.Patch(ctx, path, "queue_free", ""))

	after := readFile(t, path)
	assert.Len(t, text.SplitLines(after), len(text.SplitLines(content)), "line count should be preserved")
	assert.Equal(t, "one queue_free\ntwo\r\nthree queue_free\nfour", after)
}

func TestPatch_NotIdempotent(t *testing.T) {
	ctx := testContext(t)
	path := writeFile(t, t.TempDir(), "file.txt", "\"method\": \"queue_free\"\n")

	require.NoError(t, operation.Patch(ctx, path, "queue_free", ", x"))
	require.NoError(t, operation.Patch(ctx, path, "queue_free", ", x"))

	assert.Equal(t, "\"method\": \"queue_free\", x, x\n", readFile(t, path), "second run should append again")
}

func TestPatch_MissingFile(t *testing.T) {
	ctx := testContext(t)
	path := filepath.Join(t.TempDir(), "missing.json")

	err := operation.Patch(ctx, path, levelSearch, levelInsert)
	require.Error(t, err, "patching a missing file should fail")
	assert.True(t, errors.Is(err, fs.ErrNotExist), "error should wrap fs.ErrNotExist")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "missing file should not be created")
}

func TestPatch_InvalidEncoding(t *testing.T) {
	ctx := testContext(t)
	content := "queue_free \xff\xfe\n"
	path := writeFile(t, t.TempDir(), "binary.dat", content)

	err := operation.Patch(ctx, path, "queue_free", "!")
	require.Error(t, err)
	assert.True(t, errors.Is(err, text.ErrInvalidEncoding), "error should wrap ErrInvalidEncoding")
	assert.Equal(t, content, readFile(t, path), "file should be untouched")
}

func TestPatch_RelativePath(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	writeFile(t, dir, "data/level12.json", "\"method\": \"queue_free\"\n")
	chdir(t, dir)

	require.NoError(t, operation.Patch(ctx, config.DefaultFile, levelSearch, levelInsert))
	assert.Equal(t, "\"method\": \"queue_free\",\n\t\t\t\t\t\t\"start_disabled\": false\n", readFile(t, filepath.Join(dir, "data/level12.json")))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err, "getting working directory")
	require.NoError(t, os.Chdir(dir), "changing directory")
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}

// 🧪 mockFileManager is a testify mock of status.FileManager
type mockFileManager struct {
	mock.Mock
}

var _ status.FileManager = (*mockFileManager)(nil)

func (m *mockFileManager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	args := m.Called(ctx, path)
	content, _ := args.Get(0).([]byte)
	return content, args.Error(1)
}

func (m *mockFileManager) WriteFile(ctx context.Context, path string, content []byte) error {
	return m.Called(ctx, path, content).Error(0)
}

func (m *mockFileManager) FileExists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *mockFileManager) BackupFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *mockFileManager) RestoreFile(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func TestPatchFile(t *testing.T) {
	rule := text.PatchRule{SearchPhrase: "queue_free", InsertText: ","}
	errDisk := errors.New("disk full")

	t.Run("writes_transformed_content", func(t *testing.T) {
		ctx := testContext(t)
		files := &mockFileManager{}
		files.On("ReadFile", mock.Anything, "a.json").Return([]byte("queue_free \nother\n"), nil)
		files.On("WriteFile", mock.Anything, "a.json", []byte("queue_free,\nother\n")).Return(nil)

		result, err := operation.PatchFile(ctx, files, "a.json", rule)
		require.NoError(t, err)
		assert.Equal(t, 1, result.MatchCount)
		assert.Equal(t, []int{1}, result.MatchedLines)
		files.AssertExpectations(t)
	})

	t.Run("writes_even_without_match", func(t *testing.T) {
		ctx := testContext(t)
		files := &mockFileManager{}
		files.On("ReadFile", mock.Anything, "a.json").Return([]byte("other\n"), nil)
		files.On("WriteFile", mock.Anything, "a.json", []byte("other\n")).Return(nil)

		result, err := operation.PatchFile(ctx, files, "a.json", rule)
		require.NoError(t, err)
		assert.False(t, result.WasModified)
		files.AssertExpectations(t)
	})

	t.Run("write_error_propagates", func(t *testing.T) {
		ctx := testContext(t)
		files := &mockFileManager{}
		files.On("ReadFile", mock.Anything, "a.json").Return([]byte("queue_free\n"), nil)
		files.On("WriteFile", mock.Anything, "a.json", mock.Anything).Return(errDisk)

		_, err := operation.PatchFile(ctx, files, "a.json", rule)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errDisk), "write error should be wrapped")
		files.AssertExpectations(t)
	})

	t.Run("read_error_skips_write", func(t *testing.T) {
		ctx := testContext(t)
		files := &mockFileManager{}
		files.On("ReadFile", mock.Anything, "a.json").Return(nil, errDisk)

		_, err := operation.PatchFile(ctx, files, "a.json", rule)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errDisk))
		files.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid_encoding_skips_write", func(t *testing.T) {
		ctx := testContext(t)
		files := &mockFileManager{}
		files.On("ReadFile", mock.Anything, "a.json").Return([]byte{0xff, '\n'}, nil)

		_, err := operation.PatchFile(ctx, files, "a.json", rule)
		require.Error(t, err)
		assert.True(t, errors.Is(err, text.ErrInvalidEncoding))
		assert.True(t, strings.Contains(err.Error(), "a.json"), "error should name the file")
		files.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
	})
}
