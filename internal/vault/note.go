package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/taigrr/tap/internal/frontmatter"
	"github.com/taigrr/tap/internal/types"
	"github.com/taigrr/tap/internal/uri"
)

var (
	wikiLinkPattern     = regexp.MustCompile(`\[\[(.*?)\]\]`)
	externalLinkPattern = regexp.MustCompile(`http\S*`)
)

// ParseNote reads and parses a single markdown file under root.
func ParseNote(root, path string) (types.Note, error) {
	info, err := os.Stat(path)
	if err != nil {
		return types.Note{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return types.Note{}, fmt.Errorf("%s is a directory", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return types.Note{}, fmt.Errorf("read %s: %w", path, err)
	}
	content := string(data)

	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	rel = filepath.ToSlash(rel)

	parsed := frontmatter.Parse(content)
	modified := info.ModTime().UTC().Format(time.RFC3339)
	base := filepath.Base(path)

	return types.Note{
		Title:         strings.TrimSuffix(base, filepath.Ext(base)),
		Path:          path,
		RelPath:       rel,
		Content:       content,
		CreatedAt:     modified,
		UpdatedAt:     modified,
		WikiLinks:     WikiLinks(content),
		ExternalLinks: ExternalLinks(content),
		Frontmatter:   parsed.Frontmatter,
		Tags:          frontmatter.Tags(parsed),
		URI:           uri.ForNote(root, rel),
	}, nil
}

// WikiLinks returns the trimmed inner text of every [[...]] span, in order.
func WikiLinks(content string) []string {
	links := []string{}
	for _, m := range wikiLinkPattern.FindAllStringSubmatch(content, -1) {
		if link := strings.TrimSpace(m[1]); link != "" {
			links = append(links, link)
		}
	}
	return links
}

// ExternalLinks returns every token that starts with "http" and runs up to
// the next whitespace, in order.
func ExternalLinks(content string) []string {
	return append([]string{}, externalLinkPattern.FindAllString(content, -1)...)
}
