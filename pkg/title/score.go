package title

import (
	"regexp"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Scoring constants. These thresholds are hand-tuned against real dump
// collections and are pinned by tests; changing them changes match outcomes.
const (
	partMatchScore    = 0.9  // an exact shared colon-separated segment
	subsetMatchScore  = 0.9  // one word-set contained in the other
	sequelBaseScore   = 0.95 // identical once a trailing numeral is stripped
	subsetOverlapMin  = 0.8  // required word overlap for the subset rule
	shortTitlePenalty = 0.5  // applied when either title is very short
	shortTitleLen     = 2
)

var (
	// partSplitRegex splits titles on subtitle separators (colon, bullet).
	partSplitRegex = regexp.MustCompile(`[:\x{2022}]`)

	trailingNumberRegex = regexp.MustCompile(`\s*\d+$`)
)

// Score computes a similarity confidence in [0,1] between two titles.
// Both inputs are normalized first, so the result is symmetric. The cascade
// short-circuits on the first confident rule:
//
//  1. normalized equality -> 1.0
//  2. any exact shared colon/bullet segment -> 0.9
//  3. one word-set a subset of the other with >0.8 overlap -> 0.9
//  4. equal bases after stripping a trailing numeral -> 0.95
//  5. otherwise an edit-distance ratio, halved when either title is two
//     characters or shorter (abbreviations match everything otherwise)
func Score(a, b string) float64 {
	na := strings.ToLower(Normalize(a))
	nb := strings.ToLower(Normalize(b))

	if na == nb {
		return 1.0
	}

	if partsIntersect(na, nb) {
		return partMatchScore
	}

	if wordSubsetOverlap(na, nb) {
		return subsetMatchScore
	}

	baseA := trailingNumberRegex.ReplaceAllString(na, "")
	baseB := trailingNumberRegex.ReplaceAllString(nb, "")
	if baseA == baseB {
		return sequelBaseScore
	}

	ratio := sequenceRatio(na, nb)
	if min(len(na), len(nb)) <= shortTitleLen {
		ratio *= shortTitlePenalty
	}
	return ratio
}

// partsIntersect reports whether the two titles share an exact
// colon/bullet-separated segment.
func partsIntersect(a, b string) bool {
	partsA := splitParts(a)
	partsB := splitParts(b)
	for p := range partsA {
		if partsB[p] {
			return true
		}
	}
	return false
}

func splitParts(s string) map[string]bool {
	parts := make(map[string]bool)
	for _, p := range partSplitRegex.Split(s, -1) {
		if p = strings.TrimSpace(p); p != "" {
			parts[p] = true
		}
	}
	return parts
}

// wordSubsetOverlap reports whether one title's word set is contained in the
// other's and the overlap ratio clears subsetOverlapMin.
func wordSubsetOverlap(a, b string) bool {
	wordsA := wordSet(a)
	wordsB := wordSet(b)
	if len(wordsA) == 0 || len(wordsB) == 0 {
		return false
	}

	inter := 0
	for w := range wordsA {
		if wordsB[w] {
			inter++
		}
	}
	if inter != len(wordsA) && inter != len(wordsB) {
		return false // neither set contains the other
	}
	return float64(inter)/float64(max(len(wordsA), len(wordsB))) > subsetOverlapMin
}

func wordSet(s string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		words[w] = true
	}
	return words
}

// sequenceRatio is the character-level similarity in [0,1] between two
// normalized strings.
func sequenceRatio(a, b string) float64 {
	sim, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(sim)
}
