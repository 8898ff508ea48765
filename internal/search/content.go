package search

import (
	"strings"

	"github.com/blevesearch/bleve/v2"
	bleveSearch "github.com/blevesearch/bleve/v2/search"
	"github.com/samber/lo"
	"github.com/taigrr/tap/internal/types"
)

// SearchError is returned when the content index cannot be built or queried.
type SearchError struct {
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

type document struct {
	Title string
	Body  string
	Tags  string
}

// ContentIndex is an in-memory full-text index over note bodies. Documents
// are keyed by title.
type ContentIndex struct {
	index bleve.Index
}

// NewContentIndex indexes the given notes.
func NewContentIndex(notes []types.Note) (*ContentIndex, error) {
	index, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, &SearchError{Message: "failed to create content index", Err: err}
	}

	batch := index.NewBatch()
	for _, n := range notes {
		doc := document{
			Title: n.Title,
			Body:  n.Content,
			Tags:  strings.Join(n.Tags, " "),
		}
		if err := batch.Index(n.Title, doc); err != nil {
			index.Close()
			return nil, &SearchError{Message: "failed to index " + n.Title, Err: err}
		}
	}
	if err := index.Batch(batch); err != nil {
		index.Close()
		return nil, &SearchError{Message: "failed to commit content index", Err: err}
	}

	return &ContentIndex{index: index}, nil
}

// Search returns up to limit notes whose body or tags match query, best
// first, with ranks 1..n.
func (c *ContentIndex) Search(query string, limit int) ([]types.Match, error) {
	query = strings.TrimSpace(query)
	if limit <= 0 || query == "" {
		return []types.Match{}, nil
	}

	req := bleve.NewSearchRequest(bleve.NewMatchQuery(query))
	req.Size = limit

	res, err := c.index.Search(req)
	if err != nil {
		return nil, &SearchError{Message: "content search failed", Err: err}
	}

	return lo.Map(res.Hits, func(hit *bleveSearch.DocumentMatch, i int) types.Match {
		return types.Match{Title: hit.ID, Score: round(hit.Score), Rank: i + 1}
	}), nil
}

// Len returns the number of indexed documents.
func (c *ContentIndex) Len() int {
	n, err := c.index.DocCount()
	if err != nil {
		return 0
	}
	return int(n)
}

// Close releases the index.
func (c *ContentIndex) Close() error {
	return c.index.Close()
}
