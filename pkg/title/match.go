package title

import (
	"path/filepath"
	"strings"
)

// DefaultThreshold is the minimum fuzzy confidence accepted as a match.
// Hand-tuned; configurable by callers, never adjusted silently.
const DefaultThreshold = 0.8

// shortEntryScore is the confidence a two-character catalog title must reach
// before it can win the fuzzy pass. Guards against abbreviation collisions.
const shortEntryScore = 0.95

// Entry is the slice of a catalog record the matcher needs.
type Entry struct {
	ID      int64
	Title   string
	Regions RegionSet
}

// Candidate is one scanned filesystem entry awaiting identification. It lives
// only for the duration of a single scan step.
type Candidate struct {
	Filename      string // base name, extension included
	Path          string
	Size          int64
	Ext           string
	SniffedTitle  string // recovered from image contents, may be empty
	SniffedSerial string
	DiscNumber    int
	TotalDiscs    int
	Regions       RegionSet
}

// DisplayTitle returns the string used for matching: the sniffed title when
// one was recovered, otherwise the filename without its extension.
func (c Candidate) DisplayTitle() string {
	if t := strings.TrimSpace(c.SniffedTitle); t != "" {
		return t
	}
	return strings.TrimSuffix(c.Filename, filepath.Ext(c.Filename))
}

// Outcome classifies a match result.
type Outcome int

const (
	NoMatch   Outcome = iota
	Matched           // exactly one confident entry
	Ambiguous         // multiple exact-title entries; never used for fuzzy ties
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no match"
	}
}

// Scored pairs a catalog entry with a confidence in [0,1].
type Scored struct {
	Entry      Entry
	Confidence float64
}

// Result is the decision value produced for one candidate. It carries no side
// effects; persistence is the caller's concern.
type Result struct {
	Outcome    Outcome
	Best       Scored   // valid when Outcome == Matched
	Candidates []Scored // every exact hit when Outcome == Ambiguous

	// RegionMismatch is set when the candidate carried a region hint the
	// matched entry's availability flags do not cover. The match is still
	// reported: region detection is lower-confidence than title matching, so
	// a disagreement is surfaced, never used to drop the match.
	RegionMismatch bool
}

// Match reconciles one candidate against a catalog snapshot.
//
// An exact pass (case-insensitive equality of normalized titles) runs first:
// a single hit is returned at confidence 1.0, while several hits (distinct
// catalog rows sharing a normalized title, e.g. regional reissues) come back
// as Ambiguous for the caller to disambiguate. Only when the exact pass finds
// nothing does the fuzzy pass score the candidate against every entry,
// early-exiting on a perfect score, and accept the best result when it clears
// the threshold. A threshold <= 0 selects DefaultThreshold.
func Match(cand Candidate, entries []Entry, threshold float64) Result {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	display := cand.DisplayTitle()
	query := strings.ToLower(Normalize(display))

	var exact []Scored
	if query != "" {
		for _, e := range entries {
			if strings.ToLower(Normalize(e.Title)) == query {
				exact = append(exact, Scored{Entry: e, Confidence: 1.0})
			}
		}
	}
	switch {
	case len(exact) == 1:
		return withRegionCheck(cand, Result{Outcome: Matched, Best: exact[0]})
	case len(exact) > 1:
		return Result{Outcome: Ambiguous, Candidates: exact}
	}

	var best Scored
	for _, e := range entries {
		s := Score(display, e.Title)
		if len(e.Title) <= shortTitleLen && s < shortEntryScore {
			continue
		}
		if s > best.Confidence {
			best = Scored{Entry: e, Confidence: s}
			if s == 1.0 {
				break
			}
		}
	}
	if best.Confidence >= threshold {
		return withRegionCheck(cand, Result{Outcome: Matched, Best: best})
	}
	return Result{Outcome: NoMatch}
}

func withRegionCheck(cand Candidate, r Result) Result {
	if cand.Regions.Any() && !cand.Regions.Intersects(r.Best.Entry.Regions) {
		r.RegionMismatch = true
	}
	return r
}
