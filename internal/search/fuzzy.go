// Package search ranks vault notes against free-text queries.
//
// Titles are ranked with a weighted fuzzy ratio: the best of a whole-string
// ratio, a scaled partial ratio and the token sort and token set ratios.
// Note bodies are ranked with an in-memory bleve index.
package search

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/taigrr/tap/internal/types"
)

const (
	unbaseScale     = 0.95
	partialScale    = 0.90
	longPartialRate = 0.60
	partialTrigger  = 1.5
	longTrigger     = 8.0
)

// Titles scores every candidate against query and returns the best limit
// matches, highest score first. Equal scores keep candidate order. Ranks
// are 1-based and dense.
func Titles(query string, candidates []string, limit int) []types.Match {
	if limit <= 0 || len(candidates) == 0 {
		return []types.Match{}
	}

	scored := make([]types.Match, len(candidates))
	for i, c := range candidates {
		scored[i] = types.Match{Title: c, Score: WRatio(query, c)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if limit < len(scored) {
		scored = scored[:limit]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}
	return scored
}

// WRatio returns a similarity score in [0, 100] that tolerates differing
// lengths and word order.
func WRatio(a, b string) float64 {
	p1, p2 := process(a), process(b)
	if p1 == "" || p2 == "" {
		return 0
	}

	base := ratio(p1, p2)

	l1, l2 := float64(runeLen(p1)), float64(runeLen(p2))
	lenRatio := math.Max(l1, l2) / math.Min(l1, l2)

	if lenRatio < partialTrigger {
		tokens := math.Max(tokenSortRatio(p1, p2), tokenSetRatio(p1, p2)) * unbaseScale
		return round(math.Max(base, tokens))
	}

	scale := partialScale
	if lenRatio >= longTrigger {
		scale = longPartialRate
	}

	partial := partialRatio(p1, p2) * scale
	ptokens := partialTokenRatio(p1, p2) * unbaseScale * scale
	return round(math.Max(base, math.Max(partial, ptokens)))
}

// ratio is the normalized Indel similarity of two strings in [0, 100]:
// only insertions and deletions count, so strings with nothing in common
// score 0.
func ratio(a, b string) float64 {
	total := runeLen(a) + runeLen(b)
	if total == 0 {
		return 100
	}
	dist := total - 2*lcsLen([]rune(a), []rune(b))
	return 100 * float64(total-dist) / float64(total)
}

// lcsLen is the length of the longest common subsequence of a and b.
func lcsLen(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for i := range a {
		for j := range b {
			switch {
			case a[i] == b[j]:
				cur[j+1] = prev[j] + 1
			case prev[j+1] >= cur[j]:
				cur[j+1] = prev[j+1]
			default:
				cur[j+1] = cur[j]
			}
		}
		prev, cur = cur, prev
	}
	return prev[len(b)]
}

// partialRatio is the best ratio of the shorter string against any window
// of the longer one with the same length.
func partialRatio(a, b string) float64 {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}

	s := string(short)
	best := 0.0
	for start := 0; start+len(short) <= len(long); start++ {
		r := ratio(s, string(long[start:start+len(short)]))
		if r > best {
			best = r
			if best == 100 {
				break
			}
		}
	}
	return best
}

func tokenSortRatio(a, b string) float64 {
	return ratio(sortTokens(a), sortTokens(b))
}

// tokenSetRatio compares the shared words of a and b with each side's
// remainder. A string whose words are all contained in the other scores 100.
func tokenSetRatio(a, b string) float64 {
	sect, diffAB, diffBA := splitTokens(a, b)
	if len(sect) > 0 && (len(diffAB) == 0 || len(diffBA) == 0) {
		return 100
	}

	base := strings.Join(sect, " ")
	withAB := strings.TrimSpace(base + " " + strings.Join(diffAB, " "))
	withBA := strings.TrimSpace(base + " " + strings.Join(diffBA, " "))

	best := ratio(withAB, withBA)
	if base != "" {
		best = math.Max(best, math.Max(ratio(base, withAB), ratio(base, withBA)))
	}
	return best
}

// partialTokenRatio is the partial ratio of the sorted words, or of the
// words unique to each side. Any shared word scores 100.
func partialTokenRatio(a, b string) float64 {
	sect, diffAB, diffBA := splitTokens(a, b)
	if len(sect) > 0 {
		return 100
	}

	best := partialRatio(sortTokens(a), sortTokens(b))
	if len(diffAB) == len(strings.Fields(a)) && len(diffBA) == len(strings.Fields(b)) {
		return best
	}
	return math.Max(best, partialRatio(strings.Join(diffAB, " "), strings.Join(diffBA, " ")))
}

// splitTokens returns the sorted unique words shared by a and b, and those
// found only in a or only in b.
func splitTokens(a, b string) (sect, diffAB, diffBA []string) {
	inA, inB := tokenSet(a), tokenSet(b)
	for tok := range inA {
		if inB[tok] {
			sect = append(sect, tok)
		} else {
			diffAB = append(diffAB, tok)
		}
	}
	for tok := range inB {
		if !inA[tok] {
			diffBA = append(diffBA, tok)
		}
	}
	sort.Strings(sect)
	sort.Strings(diffAB)
	sort.Strings(diffBA)
	return sect, diffAB, diffBA
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(s) {
		set[tok] = true
	}
	return set
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}

// process lowercases s, replaces anything that is not a letter or digit
// with a space, and trims the result.
func process(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return ' '
	}, s)
	return strings.TrimSpace(mapped)
}

func runeLen(s string) int {
	return len([]rune(s))
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}
