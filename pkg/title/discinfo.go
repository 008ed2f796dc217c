package title

import (
	"regexp"
	"strconv"
)

var (
	discNumberRegex = regexp.MustCompile(`(?i)(?:disc|disk)\s*(\d+)`)
	discTotalRegex  = regexp.MustCompile(`(?i)(?:of|/)\s*(\d+)`)
	cdNumberRegex   = regexp.MustCompile(`(?i)cd\s*(\d+)`)
)

// ExtractDiscInfo pulls a disc number and total-discs count out of a dump
// filename, defaulting both to 1 when no pattern matches.
//
// The number and total searches are independent: a name carrying both a
// disc-style and a cd-style token can yield values drawn from different
// patterns. That ambiguity is accepted, not resolved; a cd-style number takes
// precedence over a disc-style one when both are present.
func ExtractDiscInfo(filename string) (number, total int) {
	number, total = 1, 1
	if m := discNumberRegex.FindStringSubmatch(filename); m != nil {
		number = parseCount(m[1], number)
	}
	if m := discTotalRegex.FindStringSubmatch(filename); m != nil {
		total = parseCount(m[1], total)
	}
	if m := cdNumberRegex.FindStringSubmatch(filename); m != nil {
		number = parseCount(m[1], number)
	}
	return number, total
}

func parseCount(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
