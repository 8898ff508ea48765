package vault

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestWikiLinks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "no links here", []string{}},
		{"single", "see [[Apple]]", []string{"Apple"}},
		{"several on one line", "[[A]] then [[ B ]] then [[C|alias]]", []string{"A", "B", "C|alias"}},
		{"across lines keeps order", "[[Z]]\ntext\n[[A#Heading]]", []string{"Z", "A#Heading"}},
		{"repeats are kept", "[[A]] [[A]]", []string{"A", "A"}},
		{"empty span dropped", "[[]] [[  ]]", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WikiLinks(tt.content); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("WikiLinks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExternalLinks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"none", "nothing", []string{}},
		{"bare url", "go to https://go.dev/doc now", []string{"https://go.dev/doc"}},
		{"end of line", "http://a.b\nhttps://c.d", []string{"http://a.b", "https://c.d"}},
		{"markdown link keeps trailing paren", "[x](https://e.f)", []string{"https://e.f)"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExternalLinks(tt.content); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExternalLinks() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseNote(t *testing.T) {
	root := t.TempDir()
	writeNote(t, root, "daily/2025-01-01.md", "2025-01-01\n\nMet [[Bob]].")

	note, err := ParseNote(root, filepath.Join(root, "daily", "2025-01-01.md"))
	if err != nil {
		t.Fatalf("ParseNote() error = %v", err)
	}

	if note.Title != "2025-01-01" {
		t.Errorf("Title = %q", note.Title)
	}
	if note.RelPath != "daily/2025-01-01.md" {
		t.Errorf("RelPath = %q", note.RelPath)
	}
	if !strings.HasPrefix(note.URI, "obsidian:///") || !strings.HasSuffix(note.URI, "/daily/2025-01-01") {
		t.Errorf("URI = %q", note.URI)
	}
	if !reflect.DeepEqual(note.WikiLinks, []string{"Bob"}) {
		t.Errorf("WikiLinks = %v", note.WikiLinks)
	}

	if _, err := ParseNote(root, filepath.Join(root, "missing.md")); err == nil {
		t.Error("ParseNote() on a missing file should fail")
	}
	if _, err := ParseNote(root, filepath.Join(root, "daily")); err == nil {
		t.Error("ParseNote() on a directory should fail")
	}
}
