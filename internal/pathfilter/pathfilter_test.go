package pathfilter

import (
	"testing"

	"github.com/taigrr/tap/internal/types"
)

func TestPathFilter_IsAllowed(t *testing.T) {
	filter := New(nil)

	tests := []struct {
		path string
		want bool
	}{
		{"note.md", true},
		{"daily/2025-01-01.md", true},
		{"Projects/Deep/Nested Note.md", true},
		{"Projects/Deep/Nested Note.MD", false},
		{"Shouting.Md", false},
		{"folder\\windows.md", true},
		{"attachment.png", false},
		{"readme.txt", false},
		{".obsidian/workspace.md", false},
		{".trash/old.md", false},
		{".git/notes.md", false},
		{"node_modules/pkg/readme.md", false},
		{".DS_Store", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := filter.IsAllowed(tt.path); got != tt.want {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathFilter_SkipDir(t *testing.T) {
	filter := New(nil)

	tests := []struct {
		path string
		want bool
	}{
		{".", false},
		{"", false},
		{"daily", false},
		{".obsidian", true},
		{".trash", true},
		{".git", true},
		{"sub/.obsidian", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := filter.SkipDir(tt.path); got != tt.want {
				t.Errorf("SkipDir(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestPathFilter_Config(t *testing.T) {
	t.Run("custom ignored glob", func(t *testing.T) {
		filter := New(&types.PathFilterConfig{IgnoredPatterns: []string{"templates/**", "*.draft.md"}})

		if filter.IsAllowed("templates/daily.md") {
			t.Error("templates/daily.md should be ignored")
		}
		if filter.IsAllowed("idea.draft.md") {
			t.Error("idea.draft.md should be ignored")
		}
		if !filter.IsAllowed("sub/idea.draft.md") {
			t.Error("single asterisk should not cross directories")
		}
		if !filter.SkipDir("templates") {
			t.Error("templates directory should be skipped")
		}
	})

	t.Run("regex characters are literal", func(t *testing.T) {
		filter := New(&types.PathFilterConfig{IgnoredPatterns: []string{"notes (old)/**"}})

		if filter.IsAllowed("notes (old)/a.md") {
			t.Error("notes (old)/a.md should be ignored")
		}
		if !filter.IsAllowed("notes old/a.md") {
			t.Error("notes old/a.md should be allowed")
		}
	})

	t.Run("extra extensions", func(t *testing.T) {
		filter := New(&types.PathFilterConfig{AllowedExtensions: []string{".markdown"}})

		if !filter.IsAllowed("a.markdown") {
			t.Error("a.markdown should be allowed")
		}
		if !filter.IsAllowed("a.md") {
			t.Error("a.md should still be allowed")
		}
	})
}
