package title

import (
	"regexp"
	"strings"
)

// RegionSet records which release regions a filename references. The zero
// value means no marker was found, which is a valid outcome rather than an
// error: region detection is lower-confidence than title matching.
type RegionSet struct {
	NA bool
	EU bool
	JP bool
}

// Any reports whether at least one region marker was detected.
func (r RegionSet) Any() bool { return r.NA || r.EU || r.JP }

// Intersects reports whether two region sets share a region.
func (r RegionSet) Intersects(o RegionSet) bool {
	return (r.NA && o.NA) || (r.EU && o.EU) || (r.JP && o.JP)
}

func (r RegionSet) String() string {
	var parts []string
	if r.NA {
		parts = append(parts, "NTSC-U")
	}
	if r.EU {
		parts = append(parts, "PAL")
	}
	if r.JP {
		parts = append(parts, "NTSC-J")
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "/")
}

var (
	regionNARegex = regexp.MustCompile(`(?i)\(USA\)|\(US\)|\(NTSC-U\)`)
	regionEURegex = regexp.MustCompile(`(?i)\(Europe\)|\(EU\)|\(PAL\)|\(E\)`)
	regionJPRegex = regexp.MustCompile(`(?i)\(Japan\)|\(JP\)|\(NTSC-J\)|\(J\)`)
)

// DetectRegions reports which region markers are textually present in name.
func DetectRegions(name string) RegionSet {
	return RegionSet{
		NA: regionNARegex.MatchString(name),
		EU: regionEURegex.MatchString(name),
		JP: regionJPRegex.MatchString(name),
	}
}

func stripRegionMarkers(s string) string {
	s = regionNARegex.ReplaceAllString(s, "")
	s = regionEURegex.ReplaceAllString(s, "")
	s = regionJPRegex.ReplaceAllString(s, "")
	return s
}
