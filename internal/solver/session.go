// Package solver holds an interactive solving session: the live candidate set
// layered over an immutable optimizer.
//
// States:
//
//   - Active:    more than one candidate remains.
//   - Solved:    exactly one candidate remains.
//   - Exhausted: no candidate remains; only reachable by feedback that no
//     remaining word can produce. Reset is the only way out.
//
// Candidates are kept in a bitset over word indices, so iteration is always
// ascending index order: the full vocabulary, thinned, never reordered.
package solver

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/optimizer"
)

// ErrNoCandidates indicates an exhausted session was asked for a guess.
var ErrNoCandidates = errors.New("solver: no candidates left")

// State is a coarse view of the candidate count.
type State string

const (
	StateActive    State = "active"
	StateSolved    State = "solved"
	StateExhausted State = "exhausted"
)

// Round records one applied guess.
type Round struct {
	Guess     game.Word         `json:"guess"`
	Feedback  game.WordJudgment `json:"-"`
	Remaining int               `json:"remaining"`
}

// Option configures a Session.
type Option func(*Session)

// WithSymbols sets the glyphs ApplyGuess accepts.
func WithSymbols(s game.Symbols) Option {
	return func(se *Session) { se.symbols = s }
}

// Session is not safe for concurrent use.
type Session struct {
	opt        *optimizer.Optimizer
	symbols    game.Symbols
	all        []int
	candidates *bitset.BitSet
	rounds     []Round

	// scratch for candidate indices
	buf []uint
}

// New starts a session over every word of opt. The optimizer may be shared
// with other sessions; New takes a private clone of its scratch space.
func New(opt *optimizer.Optimizer, opts ...Option) *Session {
	s := &Session{
		opt:        opt.Clone(),
		symbols:    game.DefaultSymbols,
		all:        opt.Indices(),
		candidates: bitset.New(uint(opt.Len())),
	}
	for _, fn := range opts {
		fn(s)
	}
	s.Reset()
	return s
}

// FromLines parses raw word-list lines and builds the optimizer and session.
func FromLines(n int, lines []string, opts ...optimizer.Option) (*Session, error) {
	vocab, err := optimizer.ParseVocabulary(n, lines)
	if err != nil {
		return nil, err
	}
	opt, err := optimizer.New(vocab, opts...)
	if err != nil {
		return nil, err
	}
	return New(opt), nil
}

// Optimizer returns the session's optimizer.
func (s *Session) Optimizer() *optimizer.Optimizer { return s.opt }

// Symbols returns the glyphs ApplyGuess accepts.
func (s *Session) Symbols() game.Symbols { return s.symbols }

// BestGuess returns the vocabulary word that best splits the candidates.
func (s *Session) BestGuess() (game.Word, error) {
	goals := s.candidateIndices()
	if len(goals) == 0 {
		return "", ErrNoCandidates
	}
	i, err := s.opt.BestGuess(s.all, goals)
	if err != nil {
		return "", err
	}
	return s.opt.WordAt(i), nil
}

// ApplyGuess keeps only the candidates that would produce feedback when
// judged against guess. Parsing and lookup happen before any change, so on
// error the candidates are untouched.
func (s *Session) ApplyGuess(guess, feedback string) error {
	n := s.opt.WordLength()
	w, err := game.ParseWord(guess, n)
	if err != nil {
		return err
	}
	j, err := s.symbols.Parse(feedback, n)
	if err != nil {
		return err
	}
	gi, err := s.opt.IndexOf(w)
	if err != nil {
		return err
	}
	s.apply(gi, j)
	return nil
}

func (s *Session) apply(guess int, j game.WordJudgment) {
	target := j.Encode()
	for _, c := range s.candidateIndices() {
		if s.opt.FeedbackClass(guess, c) != target {
			s.candidates.Clear(uint(c))
		}
	}
	s.rounds = append(s.rounds, Round{
		Guess:     s.opt.WordAt(guess),
		Feedback:  j,
		Remaining: s.PossibleSolutionCount(),
	})
}

// Candidates returns the candidate word indices in ascending order.
func (s *Session) Candidates() []int { return s.candidateIndices() }

// Solution returns the last candidate when exactly one remains.
func (s *Session) Solution() (game.Word, bool) {
	if s.candidates.Count() != 1 {
		return "", false
	}
	i, _ := s.candidates.NextSet(0)
	return s.opt.WordAt(int(i)), true
}

// PossibleSolutions lists the candidates in ascending index order.
func (s *Session) PossibleSolutions() []game.Word {
	idx := s.candidateIndices()
	out := make([]game.Word, len(idx))
	for i, c := range idx {
		out[i] = s.opt.WordAt(c)
	}
	return out
}

// PossibleSolutionCount returns the number of candidates.
func (s *Session) PossibleSolutionCount() int { return int(s.candidates.Count()) }

// State reports Active, Solved or Exhausted.
func (s *Session) State() State {
	switch s.candidates.Count() {
	case 0:
		return StateExhausted
	case 1:
		return StateSolved
	}
	return StateActive
}

// Rounds returns the guesses applied since the last reset.
func (s *Session) Rounds() []Round {
	out := make([]Round, len(s.rounds))
	copy(out, s.rounds)
	return out
}

// Reset restores the full vocabulary and forgets all rounds.
func (s *Session) Reset() {
	s.candidates.ClearAll()
	s.candidates.FlipRange(0, uint(s.opt.Len()))
	s.rounds = s.rounds[:0]
}

// String summarizes the session for logs.
func (s *Session) String() string {
	return fmt.Sprintf("session{%s, %d/%d candidates, %d rounds}", s.State(), s.PossibleSolutionCount(), s.opt.Len(), len(s.rounds))
}

func (s *Session) candidateIndices() []int {
	if cap(s.buf) < s.opt.Len() {
		s.buf = make([]uint, s.opt.Len())
	}
	_, set := s.candidates.NextSetMany(0, s.buf[:s.opt.Len()])
	out := make([]int, len(set))
	for i, c := range set {
		out[i] = int(c)
	}
	return out
}
