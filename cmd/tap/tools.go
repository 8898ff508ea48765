package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/tap/internal/daily"
	"github.com/taigrr/tap/internal/types"
)

type (
	// SearchInput contains parameters for ranking notes.
	SearchInput struct {
		Query   string `json:"query" jsonschema:"Text to match against note titles, or bodies when content=true"`
		Limit   int    `json:"limit,omitempty" jsonschema:"Maximum results (default: 5)"`
		Content bool   `json:"content,omitempty" jsonschema:"Search note bodies instead of titles (default: false)"`
		Exact   bool   `json:"exact,omitempty" jsonschema:"Match titles exactly, ignoring case (default: false)"`
	}

	// SearchOutput contains the ranked matches. They replace the saved session.
	SearchOutput struct {
		Query   string        `json:"query"`
		Results []types.Match `json:"results"`
	}

	// LastInput takes no parameters.
	LastInput struct{}

	// LastOutput contains the saved session, if any.
	LastOutput struct {
		Found   bool          `json:"found"`
		Query   string        `json:"query,omitempty"`
		Results []types.Match `json:"results"`
	}

	// GetInput selects a result of the saved session.
	GetInput struct {
		Index int `json:"index" jsonschema:"1-based index into the previous search results"`
	}

	// GetOutput contains the selected note.
	GetOutput struct {
		Title   string  `json:"title"`
		Rank    int     `json:"rank"`
		Score   float64 `json:"score"`
		Content string  `json:"content"`
	}

	// ReadInput contains parameters for reading a note by title.
	ReadInput struct {
		Title  string `json:"title" jsonschema:"Exact note title (file name without .md)"`
		Offset int    `json:"offset,omitempty" jsonschema:"Line offset to start reading from (default: 0)"`
		Limit  int    `json:"limit,omitempty" jsonschema:"Maximum number of lines to return (default: all)"`
	}

	// ReadOutput contains the result of reading a note.
	ReadOutput struct {
		Title       string         `json:"title"`
		Path        string         `json:"path"`
		URI         string         `json:"uri,omitempty"`
		Frontmatter map[string]any `json:"fm,omitempty"`
		Tags        []string       `json:"tags,omitempty"`
		WikiLinks   []string       `json:"wikiLinks,omitempty"`
		Content     string         `json:"content"`
		TotalLines  int            `json:"totalLines"`
		Truncated   bool           `json:"truncated,omitempty"`
	}

	// DailyInput names a range of daily notes.
	DailyInput struct {
		Range string `json:"range" jsonschema:"Inclusive range YYYY-MM-DD:YYYY-MM-DD"`
	}

	// DailyOutput contains the daily notes in the range.
	DailyOutput struct {
		Notes    []daily.Entry `json:"notes"`
		Combined string        `json:"combined"`
	}

	// TagsInput contains parameters for listing all tags.
	TagsInput struct{}

	// TagInfo represents a tag with its occurrence count.
	TagInfo struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}

	// TagsOutput contains all unique tags in the vault with counts.
	TagsOutput struct {
		Tags          []TagInfo `json:"tags"`
		TotalTags     int       `json:"totalTags"`
		TotalNotes    int       `json:"totalNotes"`
		NotesWithTags int       `json:"notesWithTags"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search",
		Description: "Fuzzy-rank note titles against a query, or full-text search note bodies with content=true. The results are saved so they can be opened by index with get.",
	}, handleSearch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "last",
		Description: "Return the results of the most recent search, from this server or the tap command line.",
	}, handleLast)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get",
		Description: "Open the note at a 1-based index of the most recent search results.",
	}, handleGet)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "read",
		Description: "Read a note by exact title. Returns frontmatter, tags, links and content. Supports pagination with offset/limit for large notes.",
	}, handleRead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "daily",
		Description: "Collect the daily notes (named YYYY-MM-DD) in an inclusive date range, in date order.",
	}, handleDaily)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "tags",
		Description: "List all unique tags across the vault with occurrence counts. Returns tags from both frontmatter and inline #tags.",
	}, handleTags)
}
