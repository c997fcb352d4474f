// internal/game/types.go
//
// Core type definitions for the judgment engine.
// Defines:
//   - Word: a fixed-length guess or goal.
//   - LetterJudgment: per-letter result of a guess (incorrect/correct/misplaced).
//   - WordJudgment: the full feedback for one guess against one goal.
//   - Feedback: the base-3 integer encoding of a WordJudgment.

package game

import (
	"errors"
	"fmt"
)

// MaxWordLength bounds N so that per-guess histograms (3^N entries) stay small.
const MaxWordLength = 12

var (
	// ErrInvalidLength indicates a word or feedback string of the wrong length.
	ErrInvalidLength = errors.New("game: invalid length")
	// ErrInvalidSymbol indicates a feedback string with an unrecognized character.
	ErrInvalidSymbol = errors.New("game: invalid feedback symbol")
)

// Word is an immutable sequence of exactly N letters (bytes).
// The natural string order is the vocabulary order.
type Word string

// ParseWord validates that s has exactly n letters.
// The alphabet is not checked; letters are stored as given.
func ParseWord(s string, n int) (Word, error) {
	if len(s) != n {
		return "", fmt.Errorf("%w: word %q has %d letters, want %d", ErrInvalidLength, s, len(s), n)
	}
	return Word(s), nil
}

// String returns the letters of w.
func (w Word) String() string { return string(w) }

// Len returns the number of letters in w.
func (w Word) Len() int { return len(w) }

// LetterJudgment is the feedback class for a single letter.
// The numeric values are the base-3 digits used by Encode.
type LetterJudgment uint8

const (
	Incorrect LetterJudgment = iota // letter not available in the goal
	Correct                         // right letter, right position
	Misplaced                       // letter in the goal at another position
)

func (l LetterJudgment) String() string {
	switch l {
	case Incorrect:
		return "incorrect"
	case Correct:
		return "correct"
	case Misplaced:
		return "misplaced"
	}
	return fmt.Sprintf("LetterJudgment(%d)", uint8(l))
}

// WordJudgment holds one LetterJudgment per position.
type WordJudgment []LetterJudgment

// Feedback is a WordJudgment encoded as a base-3 number in [0, 3^N).
type Feedback uint32

// Solved reports whether every letter is Correct.
func (j WordJudgment) Solved() bool {
	for _, l := range j {
		if l != Correct {
			return false
		}
	}
	return true
}

// Equal reports whether both judgments have the same letters.
func (j WordJudgment) Equal(o WordJudgment) bool {
	if len(j) != len(o) {
		return false
	}
	for i := range j {
		if j[i] != o[i] {
			return false
		}
	}
	return true
}

// String formats j with the default symbols.
func (j WordJudgment) String() string { return DefaultSymbols.Format(j) }
