package sentence

import "strings"

// titleAbbreviations lists abbreviations that commonly precede a proper
// noun and must not be treated as sentence-ending punctuation.
var titleAbbreviations = map[string]struct{}{
	"Dr.":   {},
	"Mr.":   {},
	"Mrs.":  {},
	"Ms.":   {},
	"Prof.": {},
	"Sr.":   {},
	"Jr.":   {},
}

const quoteTrimSet = "'\"‘’“”"

// endsWithTitleAbbreviation reports whether candidate's last
// whitespace-delimited token -- stripped of leading/trailing ASCII and
// smart quotes -- is a known title abbreviation. Comparison is
// case-sensitive and the lookup is O(1) average via the map above.
func endsWithTitleAbbreviation(candidate string) bool {
	fields := strings.Fields(candidate)
	if len(fields) == 0 {
		return false
	}
	last := strings.Trim(fields[len(fields)-1], quoteTrimSet)
	_, ok := titleAbbreviations[last]
	return ok
}
