package sentence

import "testing"

func TestMultiPatternReturnsEarliestMatch(t *testing.T) {
	mp, err := newMultiPattern([]string{`bb`, `a`})
	if err != nil {
		t.Fatal(err)
	}
	res, ok := mp.find("xxabbxx")
	if !ok {
		t.Fatal("expected a match")
	}
	// "a" at index 2 starts earlier than "bb" at index 3, so it wins
	// even though it is pattern index 1 (lower priority).
	if res.patternID != 1 || res.start != 2 {
		t.Fatalf("got %+v", res)
	}
}

func TestMultiPatternTieBreaksByPriority(t *testing.T) {
	mp, err := newMultiPattern([]string{`foo`, `foobar`})
	if err != nil {
		t.Fatal(err)
	}
	res, ok := mp.find("foobar")
	if !ok {
		t.Fatal("expected a match")
	}
	if res.patternID != 0 {
		t.Fatalf("expected earlier pattern to win tie at same start, got pattern %d", res.patternID)
	}
}

func TestMultiPatternNoMatch(t *testing.T) {
	mp, err := newMultiPattern([]string{`zzz`})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := mp.find("abc"); ok {
		t.Fatal("expected no match")
	}
}

func TestMultiPatternRejectsInvalidPattern(t *testing.T) {
	_, err := newMultiPattern([]string{`(unterminated`})
	if err == nil {
		t.Fatal("expected compile error")
	}
}
