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
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/linepatch/pkg/status"
	"github.com/walteh/linepatch/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// Patch appends insertText to every line of the file at path that contains
// searchPhrase, then rewrites the file in place. Relative paths resolve
// against the working directory.
//
// The file is read completely and closed before it is reopened for writing.
// There is no lock, backup, or atomic rename between the two steps, and
// running Patch twice appends insertText twice.
func Patch(ctx context.Context, path, searchPhrase, insertText string) error {
	wd, err := os.Getwd()
	if err != nil {
		return errors.Errorf("getting working directory: %w", err)
	}

	store := status.New(wd, zerolog.Ctx(ctx))
	if _, err := PatchFile(ctx, store, path, text.PatchRule{
		SearchPhrase: searchPhrase,
		InsertText:   insertText,
	}); err != nil {
		return err
	}

	return nil
}

// PatchFile runs one read-transform-write cycle on path through files. The
// file is written back even when no line matched.
func PatchFile(ctx context.Context, files status.FileManager, path string, rule text.PatchRule) (*text.PatchResult, error) {
	content, err := files.ReadFile(ctx, path)
	if err != nil {
		return nil, errors.Errorf("patching file: %w", err)
	}

	result, err := text.NewLinePatcher().PatchLines(ctx, bytes.NewReader(content), rule)
	if err != nil {
		return nil, errors.Errorf("patching file %s: %w", path, err)
	}

	if err := files.WriteFile(ctx, path, result.ModifiedContent); err != nil {
		return nil, errors.Errorf("patching file: %w", err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("path", path).
		Int("lines", result.LineCount).
		Int("matches", result.MatchCount).
		Msg("file patched")

	return result, nil
}
