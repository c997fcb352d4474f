package solver

import (
	"errors"
	"fmt"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// ErrRoundLimit indicates Autoplay did not reach the goal in time.
var ErrRoundLimit = errors.New("solver: round limit reached")

// Autoplay resets the session and plays it against a known goal, using the
// feedback matrix as the referee. Each round plays BestGuess, except that a
// single remaining candidate is played directly. It returns the rounds played,
// the last of which is solved on success.
func (s *Session) Autoplay(goal string, maxRounds int) ([]Round, error) {
	w, err := game.ParseWord(goal, s.opt.WordLength())
	if err != nil {
		return nil, err
	}
	gi, err := s.opt.IndexOf(w)
	if err != nil {
		return nil, err
	}

	s.Reset()
	for len(s.rounds) < maxRounds {
		guess, ok := s.Solution()
		if !ok {
			if guess, err = s.BestGuess(); err != nil {
				return s.Rounds(), err
			}
		}
		guessIdx, err := s.opt.IndexOf(guess)
		if err != nil {
			return s.Rounds(), err
		}
		fb := s.opt.FeedbackClass(guessIdx, gi)
		s.apply(guessIdx, game.DecodeFeedback(fb, s.opt.WordLength()))
		if fb == game.SolvedFeedback(s.opt.WordLength()) {
			return s.Rounds(), nil
		}
	}
	return s.Rounds(), fmt.Errorf("%w: %d rounds for %q", ErrRoundLimit, maxRounds, goal)
}
