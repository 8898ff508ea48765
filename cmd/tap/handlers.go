package main

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/taigrr/tap/internal/config"
	"github.com/taigrr/tap/internal/daily"
	"github.com/taigrr/tap/internal/types"
)

var callMu sync.Mutex

// begin rescans the vault and holds the call lock until done is called.
// Tool calls run one at a time against the current state of the vault.
func begin() (func(), error) {
	callMu.Lock()
	if err := service.Refresh(); err != nil {
		callMu.Unlock()
		return nil, err
	}
	return callMu.Unlock, nil
}

func handleSearch(ctx context.Context, req *mcp.CallToolRequest, input SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	q := strings.TrimSpace(input.Query)
	if q == "" {
		return &mcp.CallToolResult{IsError: true}, SearchOutput{}, errors.New("query is required")
	}

	limit := input.Limit
	if limit <= 0 {
		limit = config.DefaultLimit
	}

	done, err := begin()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, SearchOutput{}, err
	}
	defer done()

	var set types.MatchSet
	switch {
	case input.Exact:
		set, err = service.Exact(q)
	case input.Content:
		set, err = service.SearchContent(q, limit)
	default:
		set, err = service.Search(q, limit)
	}
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, SearchOutput{}, err
	}

	return nil, SearchOutput{Query: set.Query, Results: set.Results}, nil
}

func handleLast(ctx context.Context, req *mcp.CallToolRequest, input LastInput) (*mcp.CallToolResult, LastOutput, error) {
	done, err := begin()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, LastOutput{}, err
	}
	defer done()

	set, ok, err := service.Last()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, LastOutput{}, err
	}
	if !ok {
		return nil, LastOutput{Results: []types.Match{}}, nil
	}
	return nil, LastOutput{Found: true, Query: set.Query, Results: set.Results}, nil
}

func handleGet(ctx context.Context, req *mcp.CallToolRequest, input GetInput) (*mcp.CallToolResult, GetOutput, error) {
	done, err := begin()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, GetOutput{}, err
	}
	defer done()

	match, content, err := service.Get(input.Index)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, GetOutput{}, err
	}
	return nil, GetOutput{
		Title:   match.Title,
		Rank:    match.Rank,
		Score:   match.Score,
		Content: content,
	}, nil
}

func handleRead(ctx context.Context, req *mcp.CallToolRequest, input ReadInput) (*mcp.CallToolResult, ReadOutput, error) {
	done, err := begin()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ReadOutput{}, err
	}
	defer done()

	title := strings.TrimSpace(strings.TrimSuffix(input.Title, ".md"))
	note, err := service.Read(title)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ReadOutput{}, err
	}

	out := ReadOutput{
		Title:       note.Title,
		Path:        note.RelPath,
		URI:         note.URI,
		Frontmatter: note.Frontmatter,
		Tags:        note.Tags,
		WikiLinks:   note.WikiLinks,
	}

	lines := strings.Split(note.Content, "\n")
	out.TotalLines = len(lines)

	offset := max(input.Offset, 0)
	if offset >= out.TotalLines {
		out.Truncated = true
		return nil, out, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = out.TotalLines
	}

	end := offset + limit
	if end >= out.TotalLines {
		end = out.TotalLines
	} else {
		out.Truncated = true
	}

	out.Content = strings.Join(lines[offset:end], "\n")
	return nil, out, nil
}

func handleDaily(ctx context.Context, req *mcp.CallToolRequest, input DailyInput) (*mcp.CallToolResult, DailyOutput, error) {
	done, err := begin()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, DailyOutput{}, err
	}
	defer done()

	expr := strings.TrimSpace(input.Range)

	combined, err := service.DateRange(expr)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, DailyOutput{}, err
	}
	notes, err := service.DailyNotes(expr)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, DailyOutput{}, err
	}
	if notes == nil {
		notes = []daily.Entry{}
	}

	return nil, DailyOutput{Notes: notes, Combined: combined}, nil
}

func handleTags(ctx context.Context, req *mcp.CallToolRequest, input TagsInput) (*mcp.CallToolResult, TagsOutput, error) {
	done, err := begin()
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, TagsOutput{}, err
	}
	defer done()

	notes := service.Notes()

	tagCounts := make(map[string]int)
	notesWithTags := 0
	for _, note := range notes {
		if len(note.Tags) == 0 {
			continue
		}
		notesWithTags++
		seen := make(map[string]bool, len(note.Tags))
		for _, tag := range note.Tags {
			tag = strings.ToLower(tag)
			if seen[tag] {
				continue
			}
			seen[tag] = true
			tagCounts[tag]++
		}
	}

	tagInfos := make([]TagInfo, 0, len(tagCounts))
	for tag, count := range tagCounts {
		tagInfos = append(tagInfos, TagInfo{Tag: tag, Count: count})
	}
	sort.Slice(tagInfos, func(i, j int) bool {
		return tagInfos[i].Tag < tagInfos[j].Tag
	})

	return nil, TagsOutput{
		Tags:          tagInfos,
		TotalTags:     len(tagInfos),
		TotalNotes:    len(notes),
		NotesWithTags: notesWithTags,
	}, nil
}
