package sentence

import "strings"

// Normalize collapses every maximal run of whitespace -- ASCII space, tab,
// \r, \n, and \r\n -- in text to a single ASCII space and trims the ends.
// Non-whitespace Unicode scalars pass through verbatim. The transformation
// is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	var b strings.Builder
	NormalizeInto(text, &b)
	return b.String()
}

// NormalizeInto writes the normalized form of text into buf, which is
// cleared first. Clearing uses strings.Builder.Reset, which drops the
// builder's storage, so every call allocates a new buffer sized to text;
// passing the same buf to later calls does not reuse earlier allocations.
func NormalizeInto(text string, buf *strings.Builder) {
	buf.Reset()
	buf.Grow(len(text))

	inSpace := false
	wroteAny := false
	trailingSpace := false

	for _, r := range text {
		if r == '\r' {
			// Treat \r and \r\n uniformly as one break; the following \n
			// (if present) is consumed by the next rune of the range loop
			// because it simply also maps to the whitespace branch below.
			if !inSpace {
				if wroteAny {
					buf.WriteByte(' ')
					trailingSpace = true
				}
				inSpace = true
			}
			continue
		}
		if isWhitespaceRune(r) {
			if !inSpace {
				if wroteAny {
					buf.WriteByte(' ')
					trailingSpace = true
				}
				inSpace = true
			}
			continue
		}
		buf.WriteRune(r)
		wroteAny = true
		inSpace = false
		trailingSpace = false
	}

	if trailingSpace {
		s := buf.String()
		buf.Reset()
		buf.WriteString(strings.TrimSuffix(s, " "))
	}
}

func isWhitespaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f':
		return true
	default:
		return false
	}
}
