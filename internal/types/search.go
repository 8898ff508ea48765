package types

type (
	// Match is one ranked title from a search.
	Match struct {
		Title string  `json:"title"`
		Score float64 `json:"score"`
		Rank  int     `json:"rank"` // 1-based
	}

	// MatchSet is the result of a single search. Results are ordered by rank.
	MatchSet struct {
		Query   string  `json:"query"`
		Results []Match `json:"results"`
	}
)

// Titles returns the matched titles in rank order.
func (m MatchSet) Titles() []string {
	titles := make([]string, len(m.Results))
	for i, r := range m.Results {
		titles[i] = r.Title
	}
	return titles
}
