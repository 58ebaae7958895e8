// Package textutil holds small lexical helpers used by the rerank stage
// and the similar-documents endpoint.
package textutil

import (
	"regexp"
	"strings"
)

const minKeywordLength = 3

var wordRegex = regexp.MustCompile(`\w+`)

// stopWords are dropped by Keywords.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

// Tokens lowercases text and splits it into word tokens of at least three
// characters.
func Tokens(text string) []string {
	words := wordRegex.FindAllString(strings.ToLower(text), -1)
	out := words[:0]
	for _, w := range words {
		if len(w) >= minKeywordLength {
			out = append(out, w)
		}
	}
	return out
}

// Keywords extracts up to max keywords: lowercased tokens longer than three
// characters with stop words removed, in order of appearance.
func Keywords(text string, max int) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if _, stop := stopWords[w]; stop || len(w) <= minKeywordLength {
			continue
		}
		out = append(out, w)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

// Normalize collapses whitespace and lowercases.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// OverlapSimilarity is the Jaccard word-overlap similarity of two texts
// over their token sets. Either side empty yields 0.
func OverlapSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	var intersection int
	for w := range setA {
		if _, ok := setB[w]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

// TitleHits counts query terms (whitespace-split, case-insensitive) that
// appear literally in the title.
func TitleHits(query, title string) int {
	lowTitle := strings.ToLower(title)
	var hits int
	for _, term := range strings.Fields(strings.ToLower(query)) {
		if strings.Contains(lowTitle, term) {
			hits++
		}
	}
	return hits
}

func tokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range Tokens(text) {
		set[w] = struct{}{}
	}
	return set
}
