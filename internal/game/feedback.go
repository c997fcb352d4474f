// internal/game/feedback.go
//
// Feedback codec: display strings <-> WordJudgment <-> base-3 Feedback.
//
// Encoding:
//   - One base-3 digit per letter, position 0 most significant.
//   - Digits: Incorrect=0, Correct=1, Misplaced=2.
//
// Display:
//   - One symbol per letter. The glyphs are configuration (Symbols); the
//     canonical set is C (correct), M (misplaced) and . (incorrect).

package game

import (
	"fmt"
	"strings"
)

// Symbols maps each LetterJudgment to a single display character.
type Symbols struct {
	Correct   byte
	Misplaced byte
	Incorrect byte
}

// DefaultSymbols is the canonical glyph set.
var DefaultSymbols = Symbols{Correct: 'C', Misplaced: 'M', Incorrect: '.'}

// ParseSymbols reads a glyph set written in the order correct, misplaced,
// incorrect, e.g. "CM." or "GYX". The three glyphs must be distinct.
func ParseSymbols(s string) (Symbols, error) {
	if len(s) != 3 {
		return Symbols{}, fmt.Errorf("%w: symbol set %q needs 3 characters", ErrInvalidLength, s)
	}
	if s[0] == s[1] || s[0] == s[2] || s[1] == s[2] {
		return Symbols{}, fmt.Errorf("%w: symbol set %q repeats a character", ErrInvalidSymbol, s)
	}
	return Symbols{Correct: s[0], Misplaced: s[1], Incorrect: s[2]}, nil
}

// String returns the glyphs in ParseSymbols order.
func (s Symbols) String() string {
	return string([]byte{s.Correct, s.Misplaced, s.Incorrect})
}

// Parse decodes a display string of exactly n symbols.
func (s Symbols) Parse(str string, n int) (WordJudgment, error) {
	if len(str) != n {
		return nil, fmt.Errorf("%w: feedback %q has %d symbols, want %d", ErrInvalidLength, str, len(str), n)
	}
	out := make(WordJudgment, n)
	for i := 0; i < n; i++ {
		switch str[i] {
		case s.Correct:
			out[i] = Correct
		case s.Misplaced:
			out[i] = Misplaced
		case s.Incorrect:
			out[i] = Incorrect
		default:
			return nil, fmt.Errorf("%w: %q at position %d (want one of %q)", ErrInvalidSymbol, str[i], i, s.String())
		}
	}
	return out, nil
}

// Format renders j one symbol per letter.
func (s Symbols) Format(j WordJudgment) string {
	var b strings.Builder
	b.Grow(len(j))
	for _, l := range j {
		switch l {
		case Correct:
			b.WriteByte(s.Correct)
		case Misplaced:
			b.WriteByte(s.Misplaced)
		default:
			b.WriteByte(s.Incorrect)
		}
	}
	return b.String()
}

// ParseFeedback decodes str with DefaultSymbols.
func ParseFeedback(str string, n int) (WordJudgment, error) {
	return DefaultSymbols.Parse(str, n)
}

// Encode packs j into its base-3 Feedback value.
func (j WordJudgment) Encode() Feedback {
	var v Feedback
	for _, l := range j {
		v = v*3 + Feedback(l)
	}
	return v
}

// DecodeFeedback unpacks v into an n-letter WordJudgment.
// v must be below MaxFeedbackValue(n).
func DecodeFeedback(v Feedback, n int) WordJudgment {
	out := make(WordJudgment, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = LetterJudgment(v % 3)
		v /= 3
	}
	return out
}

// MaxFeedbackValue returns 3^n, the exclusive upper bound of Feedback for
// n-letter words.
func MaxFeedbackValue(n int) int {
	v := 1
	for i := 0; i < n; i++ {
		v *= 3
	}
	return v
}

// SolvedFeedback returns the Feedback of an all-Correct judgment.
func SolvedFeedback(n int) Feedback {
	var v Feedback
	for i := 0; i < n; i++ {
		v = v*3 + Feedback(Correct)
	}
	return v
}
