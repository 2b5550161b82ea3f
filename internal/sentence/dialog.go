package sentence

import (
	"fmt"
	"regexp"
)

// DialogState is the tagged state of the dialog-aware boundary detector.
type DialogState int

const (
	StateNarrative DialogState = iota
	StateDialogDoubleQuote
	StateDialogSingleQuote
	StateDialogSmartDoubleOpen
	StateDialogSmartSingleOpen
	StateDialogParenRound
	StateDialogParenSquare
	StateDialogParenCurly
	StateUnknown
)

func (s DialogState) String() string {
	switch s {
	case StateNarrative:
		return "Narrative"
	case StateDialogDoubleQuote:
		return "DialogDoubleQuote"
	case StateDialogSingleQuote:
		return "DialogSingleQuote"
	case StateDialogSmartDoubleOpen:
		return "DialogSmartDoubleOpen"
	case StateDialogSmartSingleOpen:
		return "DialogSmartSingleOpen"
	case StateDialogParenRound:
		return "DialogParenRound"
	case StateDialogParenSquare:
		return "DialogParenSquare"
	case StateDialogParenCurly:
		return "DialogParenCurly"
	case StateUnknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}

// matchKind classifies a regex hit within a state's pattern catalog.
type matchKind int

const (
	kindNarrativeGesture matchKind = iota
	kindNarrativeToDialog
	kindDialogOpen
	kindDialogEnd
	kindDialogSoftEnd
	kindHardSeparator
)

type transition struct {
	kind matchKind
	next DialogState
}

type compiledState struct {
	matcher     *multiPattern
	transitions []transition
}

// Machine is the compiled, immutable per-state multi-pattern matcher table.
// Safe for concurrent use by multiple goroutines once built; build it once
// at process start and share it by reference.
type Machine struct {
	states map[DialogState]*compiledState
}

const (
	sentEndPunct   = `[.!?]`
	nonSentPunct   = `[,:;]`
	softSep        = `[ \t]+`
	lineSep        = `\r?\n`
	hardSep        = `(?:\r\n\r\n|\n\n)`
	nonDialogStart = `[A-Z]`
	// startUnionClass / notStartUnionClass both enumerate ASCII uppercase
	// plus the seven dialog-opening runes: " ' “ ‘ ( [ {
	startUnionClass    = `[A-Z"'“‘(\[{]`
	notStartUnionClass = `[^A-Z"'“‘(\[{]`
)

type opener struct {
	open  string
	close string
	state DialogState
}

var openers = []opener{
	{`"`, `"`, StateDialogDoubleQuote},
	{`'`, `'`, StateDialogSingleQuote},
	{"“", "”", StateDialogSmartDoubleOpen},
	{"‘", "’", StateDialogSmartSingleOpen},
	{`(`, `)`, StateDialogParenRound},
	{`[`, `]`, StateDialogParenSquare},
	{`{`, `}`, StateDialogParenCurly},
}

// NewMachine compiles the full per-state pattern catalog: 25 patterns for
// Narrative, 3 for each of the seven dialog states. Compilation failure is
// fatal at process startup: the pipeline never runs with a half-built
// machine.
func NewMachine() (*Machine, error) {
	m := &Machine{states: make(map[DialogState]*compiledState)}

	narrativePatterns := make([]string, 0, 25)
	narrativeTransitions := make([]transition, 0, 25)

	// 0-6: SENT_END_PUNCT SOFT_SEP <open> -> NarrativeToDialog
	for _, o := range openers {
		narrativePatterns = append(narrativePatterns, sentEndPunct+softSep+regexp.QuoteMeta(o.open))
		narrativeTransitions = append(narrativeTransitions, transition{kindNarrativeToDialog, o.state})
	}
	// 7-13: NON_SENT_PUNCT SOFT_SEP <open> -> DialogOpen
	for _, o := range openers {
		narrativePatterns = append(narrativePatterns, nonSentPunct+softSep+regexp.QuoteMeta(o.open))
		narrativeTransitions = append(narrativeTransitions, transition{kindDialogOpen, o.state})
	}
	// 14-20: (SOFT_SEP|LINE_SEP) <open> -> DialogOpen
	for _, o := range openers {
		narrativePatterns = append(narrativePatterns, `(?:`+softSep+`|`+lineSep+`)`+regexp.QuoteMeta(o.open))
		narrativeTransitions = append(narrativeTransitions, transition{kindDialogOpen, o.state})
	}
	// 21-24: narrative gestures and the bare hard separator
	narrativePatterns = append(narrativePatterns,
		sentEndPunct+lineSep+nonDialogStart,
		sentEndPunct+softSep+nonDialogStart,
		sentEndPunct+`\s*`+hardSep+`\s*`+nonDialogStart,
		hardSep,
	)
	narrativeTransitions = append(narrativeTransitions,
		transition{kindNarrativeGesture, StateNarrative},
		transition{kindNarrativeGesture, StateNarrative},
		transition{kindNarrativeGesture, StateNarrative},
		transition{kindHardSeparator, StateUnknown},
	)

	narrativeMatcher, err := newMultiPattern(narrativePatterns)
	if err != nil {
		return nil, fmt.Errorf("compiling narrative state patterns: %w", err)
	}
	m.states[StateNarrative] = &compiledState{matcher: narrativeMatcher, transitions: narrativeTransitions}

	for _, o := range openers {
		closeLit := regexp.QuoteMeta(o.close)
		patterns := []string{
			hardSep,
			sentEndPunct + closeLit + softSep + startUnionClass,
			sentEndPunct + closeLit + softSep + notStartUnionClass,
		}
		transitions := []transition{
			{kindHardSeparator, StateUnknown},
			{kindDialogEnd, StateNarrative},
			{kindDialogSoftEnd, StateNarrative},
		}
		matcher, err := newMultiPattern(patterns)
		if err != nil {
			return nil, fmt.Errorf("compiling %s state patterns: %w", o.state, err)
		}
		m.states[o.state] = &compiledState{matcher: matcher, transitions: transitions}
	}

	return m, nil
}

// forState returns the compiled pattern set for state, falling back to the
// Narrative set for Unknown (the machine re-establishes a concrete state
// via the matched pattern's NextState on its first hit).
func (m *Machine) forState(state DialogState) *compiledState {
	if cs, ok := m.states[state]; ok {
		return cs
	}
	return m.states[StateNarrative]
}
