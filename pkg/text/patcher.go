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

package text

import (
	"context"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidEncoding is returned when content cannot be decoded as UTF-8 text
var ErrInvalidEncoding = errors.New("content is not valid UTF-8 text")

// 📝 PatchRule describes which lines to patch and what to append to them
type PatchRule struct {
	SearchPhrase string // Substring a line must contain to be patched
	InsertText   string // Text appended to the end of every matching line
}

// 📦 PatchResult holds the outcome of applying a rule to some content
type PatchResult struct {
	OriginalContent []byte
	ModifiedContent []byte
	LineCount       int   // Number of lines in the content (unchanged by patching)
	MatchCount      int   // Number of lines that contained the search phrase
	MatchedLines    []int // 1-based line numbers of the matching lines
	WasModified     bool
}

// LinePatcher appends text to every line containing a search phrase
type LinePatcher struct{}

// NewLinePatcher creates a new LinePatcher
func NewLinePatcher() *LinePatcher {
	return &LinePatcher{}
}

// PatchLines reads all of content and applies rule to each of its lines.
//
// A matching line has its trailing whitespace (including the line terminator
// and the ASCII separators U+001C to U+001F) removed, then InsertText and a single "\n" appended. Lines that do not match
// are kept byte for byte, terminator included.
func (p *LinePatcher) PatchLines(ctx context.Context, content io.Reader, rule PatchRule) (*PatchResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if !utf8.Valid(originalContent) {
		return nil, errors.Errorf("decoding content: %w", ErrInvalidEncoding)
	}

	lines := SplitLines(string(originalContent))

	result := &PatchResult{
		OriginalContent: originalContent,
		LineCount:       len(lines),
	}

	var out strings.Builder
	out.Grow(len(originalContent))
	for i, line := range lines {
		if strings.Contains(line, rule.SearchPhrase) {
			line = strings.TrimRightFunc(line, isSpace) + rule.InsertText + "\n"
			result.MatchCount++
			result.MatchedLines = append(result.MatchedLines, i+1)
		}
		out.WriteString(line)
	}

	result.ModifiedContent = []byte(out.String())
	result.WasModified = result.MatchCount > 0

	zerolog.Ctx(ctx).Debug().
		Str("search", rule.SearchPhrase).
		Int("lines", result.LineCount).
		Int("matches", result.MatchCount).
		Msg("patched lines")

	return result, nil
}

// CountMatches reports the 1-based numbers of the lines in content that contain phrase
func (p *LinePatcher) CountMatches(ctx context.Context, content io.Reader, phrase string) ([]int, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	if !utf8.Valid(data) {
		return nil, errors.Errorf("decoding content: %w", ErrInvalidEncoding)
	}

	var matched []int
	for i, line := range SplitLines(string(data)) {
		if strings.Contains(line, phrase) {
			matched = append(matched, i+1)
		}
	}
	return matched, nil
}

// isSpace reports whether r is trailing whitespace to strip. It extends
// unicode.IsSpace with the ASCII separators U+001C to U+001F.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// SplitLines splits s after every "\n", keeping the terminators. The final
// line is returned without a terminator when s does not end in one. An empty
// string has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
