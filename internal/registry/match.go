// Package registry adapts the academic metadata APIs to the workflow's
// registry service contract, with fuzzy title matching for DOI-less works.
package registry

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// titleMatchThreshold is the minimum similarity for a search hit to count
// as the same work.
const titleMatchThreshold = 0.85

var stripDiacritics = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

// normalizeTitle lowercases, strips diacritics and punctuation, and
// collapses whitespace so titles from different sources compare cleanly.
func normalizeTitle(s string) string {
	if out, _, err := transform.String(stripDiacritics, s); err == nil {
		s = out
	}
	var sb strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r) || unicode.IsPunct(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// titleSimilarity computes the Dice coefficient over normalized word sets.
func titleSimilarity(a, b string) float64 {
	aw := strings.Fields(normalizeTitle(a))
	bw := strings.Fields(normalizeTitle(b))
	if len(aw) == 0 || len(bw) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(aw))
	for _, w := range aw {
		set[w] = struct{}{}
	}
	common := 0
	seen := make(map[string]struct{}, len(bw))
	for _, w := range bw {
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		if _, ok := set[w]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(set)+len(seen))
}

// titlesMatch reports whether two titles are close enough to be the same
// work.
func titlesMatch(a, b string) bool {
	return titleSimilarity(a, b) >= titleMatchThreshold
}
