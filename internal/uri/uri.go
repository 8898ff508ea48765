// Package uri builds obsidian:// links for notes.
package uri

import (
	"net/url"
	"path"
	"strings"
)

// ForNote returns the absolute-path form of an Obsidian URI,
// obsidian:///abs/vault/rel/note, without the .md extension.
func ForNote(vaultPath, relPath string) string {
	full := path.Join(filepathToSlash(vaultPath), filepathToSlash(relPath))
	full = strings.TrimSuffix(full, ".md")

	segments := strings.Split(strings.TrimPrefix(full, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "obsidian:///" + strings.Join(segments, "/")
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
