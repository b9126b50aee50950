// Package uniqueness detects near-duplicate personas by comparing generated
// text against a bounded memory of previously accepted personas.
package uniqueness

import (
	"strings"
	"unicode"
)

// SimilarityThreshold is the Jaccard similarity at or above which a newly
// generated persona counts as a near-duplicate.
const SimilarityThreshold = 0.88

// ngramSize is the token window used for similarity comparison.
const ngramSize = 3

// tokenize lower-cases text and splits it into alphanumeric tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

// ngramSet returns the set of 3-token sequences in text. Texts shorter than
// one window contribute their whole token sequence as a single entry, so two
// identical short texts still compare as identical.
func ngramSet(text string) map[string]struct{} {
	tokens := tokenize(text)
	set := make(map[string]struct{})
	if len(tokens) == 0 {
		return set
	}
	if len(tokens) < ngramSize {
		set[strings.Join(tokens, " ")] = struct{}{}
		return set
	}
	for i := 0; i+ngramSize <= len(tokens); i++ {
		set[strings.Join(tokens[i:i+ngramSize], " ")] = struct{}{}
	}
	return set
}

// Jaccard computes the n-gram Jaccard similarity of two texts. The result is
// symmetric and lies in [0, 1]; two empty texts compare as 0.
func Jaccard(a, b string) float64 {
	setA := ngramSet(a)
	setB := ngramSet(b)
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for gram := range setA {
		if _, ok := setB[gram]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}
