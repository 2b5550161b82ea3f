package sentence

import (
	"strings"
	"unicode/utf8"
)

// Sentence borrows a byte range of the scanned buffer; no sentence text is
// copied until Normalized is called (Raw returns a subslice of buf).
type Sentence struct {
	Index      int
	StartByte  int
	EndByte    int
	StartLine  int
	StartCol   int
	EndLine    int
	EndCol     int
}

// Raw returns the unmodified source bytes for the sentence.
func (s Sentence) Raw(buf []byte) []byte {
	return buf[s.StartByte:s.EndByte]
}

// Normalized returns the whitespace-collapsed, trimmed form of the sentence.
func (s Sentence) Normalized(buf []byte) string {
	return Normalize(string(s.Raw(buf)))
}

// Detector is the façade over Machine: feed it a buffer, get back sentences.
// A Detector holds no per-buffer state and is safe to reuse across files
// from multiple goroutines as long as each call to Detect uses its own buf.
type Detector struct {
	machine *Machine
}

// NewDetector compiles a fresh Machine and wraps it.
func NewDetector() (*Detector, error) {
	m, err := NewMachine()
	if err != nil {
		return nil, err
	}
	return &Detector{machine: m}, nil
}

// Detect scans buf start to end and returns every sentence found, in order.
func (d *Detector) Detect(buf []byte) ([]Sentence, error) {
	var out []Sentence
	text := string(buf)

	state := StateNarrative
	sentenceStart := 0
	cursor := 0
	startTracker := NewPositionTracker(buf)
	index := 0

	startPos, err := startTracker.AdvanceTo(0)
	if err != nil {
		return nil, err
	}
	curStart := startPos

	for cursor <= len(text) {
		cs := d.machine.forState(state)
		hit, ok := cs.matcher.find(text[cursor:])
		if !ok {
			break
		}
		matchStart := cursor + hit.start
		matchEnd := cursor + hit.end
		tr := cs.transitions[hit.patternID]

		switch tr.kind {
		case kindHardSeparator:
			if shouldRejectHardSeparator(buf, matchStart) {
				// Demoted: not a real paragraph break. Treat the matched
				// bytes as ordinary text and keep scanning in place.
				cursor = matchEnd
				continue
			}
			if err := emitBoundary(&out, &index, buf, startTracker, &sentenceStart, &curStart, matchStart, matchEnd); err != nil {
				return nil, err
			}
			cursor = matchEnd
			state = tr.next

		case kindNarrativeGesture, kindNarrativeToDialog:
			// Sentence-final punctuation followed by the start of the next
			// sentence (a capitalized word, a line break, or a new dialog
			// quote). A known title abbreviation vetoes the split.
			matched := text[matchStart:matchEnd]
			sepStartOff, sepEndOff, found := findSentSep(matched)
			boundaryEnd, nextStart := matchEnd, matchEnd
			if found {
				boundaryEnd = matchStart + sepStartOff
				nextStart = matchStart + sepEndOff
			}
			if endsWithTitleAbbreviation(text[sentenceStart:boundaryEnd]) {
				cursor = matchEnd
				state = tr.next
				continue
			}
			if err := emitBoundary(&out, &index, buf, startTracker, &sentenceStart, &curStart, boundaryEnd, nextStart); err != nil {
				return nil, err
			}
			cursor = matchEnd
			state = tr.next

		case kindDialogOpen:
			// Dialog opens with no preceding sentence-ending punctuation
			// (or punctuation, like a comma, that doesn't end the
			// sentence): just enter the dialog state.
			cursor = matchEnd
			state = tr.next

		case kindDialogEnd, kindDialogSoftEnd:
			matched := text[matchStart:matchEnd]
			sepStartOff, sepEndOff, found := findSentSep(matched)
			boundaryEnd, nextStart := matchEnd, matchEnd
			if found {
				boundaryEnd = matchStart + sepStartOff
				nextStart = matchStart + sepEndOff
			}

			if tr.kind == kindDialogEnd {
				if endsWithTitleAbbreviation(text[sentenceStart:boundaryEnd]) {
					cursor = matchEnd
					state = tr.next
					continue
				}
				if err := emitBoundary(&out, &index, buf, startTracker, &sentenceStart, &curStart, boundaryEnd, nextStart); err != nil {
					return nil, err
				}
			}
			cursor = matchEnd
			state = tr.next

		default:
			cursor = matchEnd
			state = tr.next
		}
	}

	if sentenceStart < len(buf) {
		tail := NewPositionTracker(buf)
		endPos, err := tail.AdvanceTo(len(buf))
		if err != nil {
			return nil, err
		}
		tailStartTracker := NewPositionTracker(buf)
		tailStart, err := tailStartTracker.AdvanceTo(sentenceStart)
		if err != nil {
			return nil, err
		}
		out = append(out, buildSentence(index, sentenceStart, len(buf), tailStart, endPos))
	}

	return out, nil
}

// emitBoundary closes out the sentence spanning [*sentenceStart, boundaryEnd),
// appending it to out unless it is empty, then advances *sentenceStart and
// *curStart to nextStart for the sentence that follows.
func emitBoundary(out *[]Sentence, index *int, buf []byte, tracker *PositionTracker, sentenceStart *int, curStart *Position, boundaryEnd, nextStart int) error {
	endPos, err := tracker.AdvanceTo(boundaryEnd)
	if err != nil {
		return err
	}
	if boundaryEnd > *sentenceStart {
		*out = append(*out, buildSentence(*index, *sentenceStart, boundaryEnd, *curStart, endPos))
		*index++
	}
	nextPos, err := tracker.AdvanceTo(nextStart)
	if err != nil {
		return err
	}
	*sentenceStart = nextStart
	*curStart = nextPos
	return nil
}

func buildSentence(index, start, end int, startPos, endPos Position) Sentence {
	return Sentence{
		Index:     index,
		StartByte: start,
		EndByte:   end,
		StartLine: startPos.Line,
		StartCol:  startPos.Col,
		EndLine:   endPos.Line,
		EndCol:    endPos.Col,
	}
}

// hardSeps are paragraph-break substrings: a blank line separates two
// sentences even when it's nested inside a longer run of whitespace (a
// trailing space before the blank line, say). These take priority over
// the first generic whitespace run so the reported split lands on the
// paragraph boundary rather than on incidental leading whitespace.
var hardSeps = []string{"\r\n\r\n", "\n\n"}

// findSentSep locates, within a matched dialog-end fragment, where the
// trailing separator whitespace begins and ends. Offsets are relative to
// the start of matched. found is false when matched contains no
// intervening whitespace to split on (shouldn't happen for DialogEnd /
// DialogSoftEnd patterns, which always include a soft separator, but the
// fallback keeps the caller simple).
func findSentSep(matched string) (sepStart, sepEnd int, found bool) {
	for _, hs := range hardSeps {
		if i := strings.Index(matched, hs); i >= 0 {
			return i, i + len(hs), true
		}
	}

	isSep := func(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
	for i, r := range matched {
		if isSep(r) {
			sepStart = i
			j := i
			for j < len(matched) {
				rr, size := utf8.DecodeRuneInString(matched[j:])
				if !isSep(rr) {
					break
				}
				j += size
			}
			sepEnd = j
			return sepStart, sepEnd, true
		}
	}
	return 0, len(matched), false
}

// terminalScalars are scalars that legitimately end a clause or sentence;
// a hard separator preceded only by whitespace back to one of these is a
// genuine paragraph break. Anything else (a letter, digit, or internal
// punctuation mark) demotes the separator to ordinary whitespace.
var terminalScalars = map[rune]struct{}{
	'.': {}, '!': {}, '?': {},
	'"': {}, '\'': {}, '”': {}, '’': {}, ')': {}, ']': {}, '}': {},
}

var internalScalars = map[rune]struct{}{
	',': {}, ';': {}, ':': {}, '-': {}, '/': {},
	'(': {}, '[': {}, '{': {}, '—': {}, '–': {}, '“': {}, '‘': {}, '…': {},
}

const hardSeparatorScanWindow = 20

// shouldRejectHardSeparator runs a bounded backward scan: a blank-line run
// only counts as a paragraph break if the text immediately preceding it
// ends on terminal punctuation or a closing quote/bracket. Runs of internal
// punctuation, letters, or digits within the scan window demote the
// separator (it is folded into the surrounding sentence instead of
// splitting it).
func shouldRejectHardSeparator(buf []byte, matchStart int) bool {
	lo := matchStart - hardSeparatorScanWindow
	if lo < 0 {
		lo = 0
	}
	window := buf[lo:matchStart]

	for i := len(window); i > 0; {
		r, size := utf8.DecodeLastRuneInString(string(window[:i]))
		i -= size
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			continue
		}
		if _, ok := terminalScalars[r]; ok {
			return false
		}
		if _, ok := internalScalars[r]; ok {
			return true
		}
		return true
	}
	// Nothing but whitespace in the window, or the window ran out before
	// finding a non-whitespace scalar: treat as not a genuine break.
	return true
}
