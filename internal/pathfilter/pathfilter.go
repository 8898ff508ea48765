// Package pathfilter decides which vault paths take part in a scan.
package pathfilter

import (
	"regexp"
	"strings"

	"github.com/taigrr/tap/internal/types"
)

// DefaultIgnored are vault-relative globs that never hold notes.
var DefaultIgnored = []string{
	".obsidian/**",
	".trash/**",
	".git/**",
	"node_modules/**",
	".DS_Store",
	"Thumbs.db",
}

// PathFilter filters vault-relative paths by ignore glob and note extension.
type PathFilter struct {
	ignored    []*regexp.Regexp
	extensions []string
}

// New creates a PathFilter. Notes are ".md" files unless the config
// lists more extensions.
func New(config *types.PathFilterConfig) *PathFilter {
	patterns := append([]string(nil), DefaultIgnored...)
	extensions := []string{".md"}

	if config != nil {
		patterns = append(patterns, config.IgnoredPatterns...)
		extensions = append(extensions, config.AllowedExtensions...)
	}

	pf := &PathFilter{}
	for _, p := range patterns {
		if re, err := globToRegexp(p); err == nil {
			pf.ignored = append(pf.ignored, re)
		}
	}
	pf.extensions = extensions
	return pf
}

// globToRegexp anchors a glob against the whole slash-separated path.
// "**" crosses directory boundaries, "*" and "?" do not.
func globToRegexp(pattern string) (*regexp.Regexp, error) {
	quoted := regexp.QuoteMeta(normalize(pattern))
	quoted = strings.ReplaceAll(quoted, `\*\*`, ".*")
	quoted = strings.ReplaceAll(quoted, `\*`, "[^/]*")
	quoted = strings.ReplaceAll(quoted, `\?`, "[^/]")
	return regexp.Compile("^" + quoted + "$")
}

func normalize(path string) string {
	return strings.ReplaceAll(path, "\\", "/")
}

func (pf *PathFilter) ignoredPath(path string) bool {
	for _, re := range pf.ignored {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}

// IsAllowed reports whether a vault-relative file path is a note that
// should be indexed. Extensions match case-sensitively, so "Note.MD" is
// not a note.
func (pf *PathFilter) IsAllowed(path string) bool {
	path = normalize(path)
	if path == "" || pf.ignoredPath(path) {
		return false
	}

	for _, ext := range pf.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

// SkipDir reports whether a vault-relative directory should be pruned
// from a walk.
func (pf *PathFilter) SkipDir(path string) bool {
	path = strings.TrimSuffix(normalize(path), "/")
	if path == "" || path == "." {
		return false
	}
	return pf.ignoredPath(path + "/")
}
