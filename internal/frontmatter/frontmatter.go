// Package frontmatter splits YAML frontmatter from note bodies.
package frontmatter

import (
	"regexp"
	"strings"

	"github.com/taigrr/tap/internal/types"
	"gopkg.in/yaml.v3"
)

const delimiter = "---"

var inlineTag = regexp.MustCompile(`(?:^|\s)#([A-Za-z][A-Za-z0-9_/-]*)`)

// Parse splits content into frontmatter and body. Content without a
// leading delimiter, without a closing one, or with invalid YAML is
// returned whole with empty frontmatter.
func Parse(content string) types.ParsedNote {
	result := types.ParsedNote{
		Frontmatter:     map[string]any{},
		Content:         content,
		OriginalContent: content,
	}

	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(normalized, delimiter+"\n") {
		return result
	}

	rest := normalized[len(delimiter)+1:]
	var block, body string
	switch {
	case strings.HasPrefix(rest, delimiter+"\n"):
		body = rest[len(delimiter)+1:]
	case rest == delimiter:
	default:
		end := strings.Index(rest, "\n"+delimiter+"\n")
		if end == -1 {
			if !strings.HasSuffix(rest, "\n"+delimiter) {
				return result
			}
			end = len(rest) - len(delimiter) - 1
			block = rest[:end]
		} else {
			block = rest[:end]
			body = rest[end+len(delimiter)+2:]
		}
	}

	var fm map[string]any
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return result
	}
	if fm != nil {
		result.Frontmatter = fm
	}
	result.Content = body
	return result
}

// Tags collects tags from the frontmatter "tags" field and inline #tags
// in the body, deduplicated in order of first appearance.
func Tags(note types.ParsedNote) []string {
	var tags []string
	seen := map[string]struct{}{}
	add := func(tag string) {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	switch v := note.Frontmatter["tags"].(type) {
	case string:
		for _, t := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ' ' }) {
			add(t)
		}
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				add(s)
			}
		}
	}

	for _, m := range inlineTag.FindAllStringSubmatch(note.Content, -1) {
		add(m[1])
	}
	return tags
}
