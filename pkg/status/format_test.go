package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// 🧪 TestDefaultFileFormatter tests the default file formatter implementation
func TestDefaultFileFormatter(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		status      FileStatus
		matches     int
		want        string
		description string
	}{
		{
			name:        "patched_file",
			path:        "data/level12.json",
			status:      StatusPatched,
			matches:     3,
			want:        "📝 Patched data/level12.json (3 lines)",
			description: "should show patch symbol and match count",
		},
		{
			name:        "patched_single_line",
			path:        "a.txt",
			status:      StatusPatched,
			matches:     1,
			want:        "📝 Patched a.txt (1 line)",
			description: "should use singular for one line",
		},
		{
			name:        "preview_file",
			path:        "a.txt",
			status:      StatusPreview,
			matches:     2,
			want:        "🔍 Would patch a.txt (2 lines)",
			description: "should show preview for dry runs",
		},
		{
			name:        "restored_file",
			path:        "a.txt",
			status:      StatusRestored,
			want:        "♻️  Restored a.txt",
			description: "should show restore symbol",
		},
		{
			name:        "unchanged_file",
			path:        "stable.txt",
			status:      StatusUnchanged,
			want:        "👍 Unchanged stable.txt",
			description: "should show unchanged symbol for untouched files",
		},
		{
			name:        "failed_file",
			path:        "error.txt",
			status:      StatusFailed,
			want:        "❌ Failed error.txt",
			description: "should show error symbol for failed operations",
		},
	}

	formatter := NewDefaultFileFormatter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatter.FormatFileOperation(tt.path, tt.status, tt.matches)
			assert.Equal(t, tt.want, got, tt.description)
		})
	}
}

// 🧪 TestProgressFormatting tests progress message formatting
func TestProgressFormatting(t *testing.T) {
	tests := []struct {
		name     string
		current  int
		total    int
		expected string
	}{
		{name: "zero_progress", current: 0, total: 10, expected: "⏳ Progress: 0/10 (0%)"},
		{name: "half_progress", current: 5, total: 10, expected: "⏳ Progress: 5/10 (50%)"},
		{name: "complete", current: 10, total: 10, expected: "✅ Progress: 10/10 (100%)"},
		{name: "zero_total", current: 0, total: 0, expected: "✅ Progress: 0/0 (0%)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatter := NewDefaultFileFormatter()
			assert.Equal(t, tt.expected, formatter.FormatProgress(tt.current, tt.total))
		})
	}
}

func TestErrorFormatting(t *testing.T) {
	formatter := NewDefaultFileFormatter()
	assert.Equal(t, "❌ Error: assert.AnError general error for testing", formatter.FormatError(assert.AnError))
	assert.Equal(t, "", formatter.FormatError(nil))
}
