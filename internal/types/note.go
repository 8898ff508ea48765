// Package types defines the data structures shared across tap.
package types

type (
	// ParsedNote is a note split into its frontmatter and body.
	ParsedNote struct {
		Frontmatter     map[string]any `json:"frontmatter"`
		Content         string         `json:"content"`
		OriginalContent string         `json:"originalContent"`
	}

	// Note is a fully parsed markdown file from the vault.
	Note struct {
		Title         string         `json:"title"`
		Path          string         `json:"path"`
		RelPath       string         `json:"relPath"`
		Content       string         `json:"content"`
		CreatedAt     string         `json:"createdAt"`
		UpdatedAt     string         `json:"updatedAt"`
		WikiLinks     []string       `json:"wikiLinks"`
		ExternalLinks []string       `json:"externalLinks"`
		Frontmatter   map[string]any `json:"frontmatter,omitempty"`
		Tags          []string       `json:"tags,omitempty"`
		URI           string         `json:"uri,omitempty"`
	}
)
