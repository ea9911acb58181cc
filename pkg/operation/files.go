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
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gitlab.com/tozd/go/errors"
)

// isGlob reports whether pattern contains doublestar metacharacters
func isGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// ResolveFiles turns a patch file entry into the list of files it names.
//
// A literal path is returned unchanged without touching the filesystem, so a
// missing file surfaces later as a read error. A glob is expanded with
// doublestar relative to baseDir (absolute globs are expanded as-is);
// directories are skipped and an empty result is an error.
func ResolveFiles(baseDir, pattern string) ([]string, error) {
	if !isGlob(pattern) {
		return []string{pattern}, nil
	}

	var matches []string
	if filepath.IsAbs(pattern) {
		found, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		matches = found
	} else {
		found, err := doublestar.Glob(os.DirFS(baseDir), filepath.ToSlash(pattern))
		if err != nil {
			return nil, errors.Errorf("expanding glob %q: %w", pattern, err)
		}
		for _, f := range found {
			matches = append(matches, filepath.FromSlash(f))
		}
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		abs := m
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(baseDir, m)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, errors.Errorf("checking glob match %s: %w", m, err)
		}
		if info.IsDir() {
			continue
		}
		files = append(files, m)
	}

	if len(files) == 0 {
		return nil, errors.Errorf("no files match %q", pattern)
	}

	slices.Sort(files)
	return files, nil
}
