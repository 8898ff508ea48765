package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Suggest returns up to n candidates that contain the letters of title in
// order, ignoring case and diacritics, closest edit distance first.
func Suggest(title string, candidates []string, n int) []string {
	if n <= 0 || title == "" {
		return nil
	}

	ranks := fuzzy.RankFindNormalizedFold(title, candidates)
	sort.Stable(ranks)

	if n < len(ranks) {
		ranks = ranks[:n]
	}
	out := make([]string, len(ranks))
	for i, r := range ranks {
		out[i] = r.Target
	}
	return out
}
