package text

import (
	"github.com/go-text/typesetting/language"
	"golang.org/x/text/unicode/bidi"
)

// SegmentProperties are the run-level properties a shaper needs before it
// can shape a string.
type SegmentProperties struct {
	Direction Direction
	Script    language.Script
}

// GuessSegment guesses the direction and script of s.
//
// The direction is taken from the logically first bidi run and the script
// from the first rune that is neither Common nor Inherited. Text is shaped
// as a single run; mixed-direction text is not reordered.
func GuessSegment(s string) SegmentProperties {
	props := SegmentProperties{
		Direction: guessDirection(s),
		Script:    language.Latin,
	}
	for _, r := range s {
		sc := language.LookupScript(r)
		if sc == language.Common || sc == language.Inherited {
			continue
		}
		props.Script = sc
		break
	}
	return props
}

func guessDirection(s string) Direction {
	if s == "" {
		return DirectionLTR
	}

	var p bidi.Paragraph
	if _, err := p.SetString(s, bidi.DefaultDirection(bidi.Neutral)); err != nil {
		return DirectionLTR
	}
	ordering, err := p.Order()
	if err != nil || ordering.NumRuns() == 0 {
		return DirectionLTR
	}

	// Runs come back in visual order; pick the one that starts first logically.
	first := ordering.Run(0)
	firstStart, _ := first.Pos()
	for i := 1; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		if start, _ := run.Pos(); start < firstStart {
			first, firstStart = run, start
		}
	}
	if first.Direction() == bidi.RightToLeft {
		return DirectionRTL
	}
	return DirectionLTR
}
