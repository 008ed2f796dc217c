// Package title normalizes free-form disc dump names and reconciles them
// against catalog entries.
package title

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dumpExtensions are file suffixes commonly carried by disc dump names.
var dumpExtensions = []string{".iso", ".bin", ".cue", ".img", ".chd", ".pbp"}

var (
	// discMarkerRegex matches disc/volume indicators like "Disc 2 of 3" or "CD1".
	discMarkerRegex = regexp.MustCompile(`(?i)\s*(?:disc|disk|cd)\s*\d+(?:\s*(?:of|/)\s*\d+)?`)

	// modeSuffixRegex matches gameplay-mode noise some dumps append to titles.
	modeSuffixRegex = regexp.MustCompile(`(?i)\s*(?:arcade|simulation)\s*mode`)

	// bracketRegex matches parenthesized and bracketed segments including contents.
	bracketRegex = regexp.MustCompile(`\(.*?\)|\[.*?\]`)

	dotUnderscoreRegex = regexp.MustCompile(`[._]`)

	// punctuationRegex matches everything except word characters, spaces,
	// hyphens, colons, and exclamation marks.
	punctuationRegex = regexp.MustCompile(`[^\w\s\-:!]`)

	// letterDigitRegex separates a word run from the digit run that follows it,
	// so "Game2" compares equal to "Game 2".
	letterDigitRegex = regexp.MustCompile(`(\w+)\s*(\d+)`)
)

// rewriteRule maps a known filename pattern to its canonical title form.
// Rules run in declaration order: specific franchise corrections must stay
// ahead of anything a generic expansion would clobber.
type rewriteRule struct {
	pattern     *regexp.Regexp
	replace     string              // expansion template for ReplaceAllString
	replaceFunc func(string) string // overrides replace when set
}

func (r rewriteRule) apply(s string) string {
	if r.replaceFunc != nil {
		return r.pattern.ReplaceAllStringFunc(s, r.replaceFunc)
	}
	return r.pattern.ReplaceAllString(s, r.replace)
}

var rewriteRules = []rewriteRule{
	// Leading abbreviations.
	{pattern: regexp.MustCompile(`(?i)^MGS\b`), replace: "Metal Gear Solid"},
	{pattern: regexp.MustCompile(`(?i)^GT\b`), replace: "Gran Turismo"},
	{pattern: regexp.MustCompile(`(?i)^FF\b`), replace: "Final Fantasy"},
	{pattern: regexp.MustCompile(`(?i)^RE\b`), replace: "Resident Evil"},
	{pattern: regexp.MustCompile(`(?i)^PE\b`), replace: "Parasite Eve"},
	{pattern: regexp.MustCompile(`(?i)^HOD\b`), replace: "House of the Dead"},
	{pattern: regexp.MustCompile(`(?i)^CC\b`), replace: "Chrono Cross"},

	// Title-specific corrections.
	{pattern: regexp.MustCompile(`(?i)Gran[\s_]?Turismo[\s_]?2`), replace: "Gran Turismo 2"},
	{pattern: regexp.MustCompile(`(?i)\bMetal\s+Gear(?:\s+Solid)?\b`), replace: "Metal Gear Solid"},
	{pattern: regexp.MustCompile(`(?i)Spyro(?:\s+)?(?:rr|Ripto|2.+Rage)`), replace: "Spyro 2: Riptos Rage"},
	{pattern: regexp.MustCompile(`(?i)Crash(?:\s+)?(\d)`), replace: "Crash Bandicoot $1"},
	{pattern: regexp.MustCompile(`(?i)Crash(?:\s+)?(?:Bandicoot\s+)?(?:3|III|Warped)`), replace: "Crash Bandicoot: Warped"},
	{pattern: regexp.MustCompile(`(?i)Ape(?:\s+)?Ex(?:c)?ape`), replace: "Ape Escape"},
	{pattern: regexp.MustCompile(`(?i)Parasite[\s_]?EVE[\s_]?(?:2|II)`), replace: "Parasite Eve II"},
	{pattern: regexp.MustCompile(`(?i)House[\s_]?of[\s_]?(?:the[\s_])?Dead[\s_]?(\d)`), replace: "House of the Dead $1"},

	// Shin Megami Tensei variations. The subtitle rule must run first; the
	// generic rule leaves colon-suffixed matches alone so an already expanded
	// subtitle survives a second pass.
	{
		pattern: regexp.MustCompile(`(?i)Shin[\s_]?Megami[\s_]?Te?i?nse?i?[\s_]?(?:Devil[\s_]?Summoner[\s_]?)?Soul[\s_]?Hackers`),
		replace: "Shin Megami Tensei: Devil Summoner: Soul Hackers",
	},
	{
		pattern: regexp.MustCompile(`(?i)Shin[\s_]?Megami[\s_]?Te?i?nse?i?:?`),
		replaceFunc: func(m string) string {
			if strings.HasSuffix(m, ":") {
				return m
			}
			return "Shin Megami Tensei"
		},
	},
}

// Normalize canonicalizes a free-form title or dump filename into a
// comparable form. The pass order is load-bearing: later passes assume the
// noise removed by earlier ones is gone. Normalize never fails; worst case it
// returns the trimmed, partially cleaned input.
func Normalize(raw string) string {
	s := stripDumpExtension(raw)
	s = removeAccents(s)

	s = discMarkerRegex.ReplaceAllString(s, "")
	s = modeSuffixRegex.ReplaceAllString(s, "")
	s = stripRegionMarkers(s)
	s = bracketRegex.ReplaceAllString(s, "")

	s = dotUnderscoreRegex.ReplaceAllString(s, " ")
	s = punctuationRegex.ReplaceAllString(s, "")

	s = strings.TrimSpace(s)
	for _, rule := range rewriteRules {
		s = rule.apply(s)
	}

	s = letterDigitRegex.ReplaceAllString(s, "$1 $2")
	return strings.Join(strings.Fields(s), " ")
}

func stripDumpExtension(s string) string {
	lower := strings.ToLower(s)
	for _, ext := range dumpExtensions {
		if strings.HasSuffix(lower, ext) {
			return s[:len(s)-len(ext)]
		}
	}
	return s
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
