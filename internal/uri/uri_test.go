package uri

import "testing"

func TestForNote(t *testing.T) {
	tests := []struct {
		name      string
		vaultPath string
		relPath   string
		want      string
	}{
		{
			name:      "simple path",
			vaultPath: "/Users/test/vault",
			relPath:   "daily/2025-01-01.md",
			want:      "obsidian:///Users/test/vault/daily/2025-01-01",
		},
		{
			name:      "leading slash in note path",
			vaultPath: "/Users/test/vault",
			relPath:   "/Apple.md",
			want:      "obsidian:///Users/test/vault/Apple",
		},
		{
			name:      "spaces and parentheses",
			vaultPath: "/Users/test/my vault",
			relPath:   "Apple (copy).md",
			want:      "obsidian:///Users/test/my%20vault/Apple%20%28copy%29",
		},
		{
			name:      "windows separators",
			vaultPath: "/vault",
			relPath:   "sub\\note.md",
			want:      "obsidian:///vault/sub/note",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ForNote(tt.vaultPath, tt.relPath); got != tt.want {
				t.Errorf("ForNote() = %q, want %q", got, tt.want)
			}
		})
	}
}
