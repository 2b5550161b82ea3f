// Package sentence implements the dialog-aware sentence boundary detector.
package sentence

import (
	"fmt"
	"regexp"
)

// multiPattern is a single compiled regexp standing in for a set of
// patterns evaluated in priority order. Each input pattern becomes one
// capturing group in a top-level alternation; Go's RE2 engine reports the
// leftmost match and, among alternatives that start there, prefers
// whichever one is written first -- the same priority-by-index contract
// the original state machine relies on.
type multiPattern struct {
	re       *regexp.Regexp
	groupIDs []int // index into re.SubexpNames() for each pattern's group, in pattern order
}

// matchResult describes one hit: the byte range within the searched slice
// and which pattern (by original index) produced it.
type matchResult struct {
	start, end int
	patternID  int
}

// newMultiPattern compiles patterns (already fully-formed regexp source,
// each intended to match starting anywhere in the input) into one
// multiPattern. Pattern priority is its index in the slice.
func newMultiPattern(patterns []string) (*multiPattern, error) {
	groupIDs := make([]int, len(patterns))
	combined := ""
	for i, p := range patterns {
		if i > 0 {
			combined += "|"
		}
		name := fmt.Sprintf("p%d", i)
		combined += fmt.Sprintf("(?P<%s>%s)", name, p)
	}
	re, err := regexp.Compile(combined)
	if err != nil {
		return nil, fmt.Errorf("compiling multi-pattern regexp: %w", err)
	}
	names := re.SubexpNames()
	for i := range patterns {
		want := fmt.Sprintf("p%d", i)
		found := -1
		for idx, n := range names {
			if n == want {
				found = idx
				break
			}
		}
		if found == -1 {
			return nil, fmt.Errorf("pattern %d: capture group %q not found after compile", i, want)
		}
		groupIDs[i] = found
	}
	return &multiPattern{re: re, groupIDs: groupIDs}, nil
}

// find returns the earliest match in text, or ok=false if there is none.
func (m *multiPattern) find(text string) (res matchResult, ok bool) {
	loc := m.re.FindStringSubmatchIndex(text)
	if loc == nil {
		return matchResult{}, false
	}
	res.start, res.end = loc[0], loc[1]
	for patternID, groupID := range m.groupIDs {
		lo, hi := loc[2*groupID], loc[2*groupID+1]
		if lo != -1 && hi != -1 {
			res.patternID = patternID
			return res, true
		}
	}
	// Unreachable: FindStringSubmatchIndex guarantees at least one
	// alternative matched when loc is non-nil.
	return matchResult{}, false
}
