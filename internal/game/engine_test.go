package game_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/game"
)

// nestedScanJudge is the quadratic form of the judgment: every non-correct
// guess position scans the goal for an unused equal letter.
func nestedScanJudge(guess, goal game.Word) game.WordJudgment {
	n := len(guess)
	used := make([]bool, n)
	res := make(game.WordJudgment, n)
	for i := 0; i < n; i++ {
		if guess[i] == goal[i] {
			res[i] = game.Correct
			used[i] = true
		}
	}
	for i := 0; i < n; i++ {
		if res[i] == game.Correct {
			continue
		}
		for j := 0; j < n; j++ {
			if !used[j] && guess[i] == goal[j] {
				res[i] = game.Misplaced
				used[j] = true
				break
			}
		}
	}
	return res
}

func randomWord(r *rand.Rand, n int, alphabet string) game.Word {
	b := make([]byte, n)
	for i := range b {
		b[i] = alphabet[r.Intn(len(alphabet))]
	}
	return game.Word(b)
}

func TestJudge_Scenarios(t *testing.T) {
	cases := []struct {
		guess, goal, want string
	}{
		{"TRAIN", "TRAIN", "CCCCC"},
		{"TRAIN", "DRAIN", ".CCCC"},
		{"ABCDE", "EDCBA", "MMCMM"},
		{"ABCDE", "FGHIJ", "....."},
		// repeated letters
		{"LLAMA", "HELLO", "MM..."},
		{"SPEED", "ABIDE", "..M.M"},
		{"EERIE", "THERE", "M.M.C"},
		{"AABBB", "BBAAC", "MMMM."},
	}
	for _, tc := range cases {
		t.Run(tc.guess+"/"+tc.goal, func(t *testing.T) {
			want, err := game.ParseFeedback(tc.want, len(tc.want))
			require.NoError(t, err)
			got := game.Judge(game.Word(tc.guess), game.Word(tc.goal))
			assert.Equal(t, want, got, "Judge(%s, %s) = %s", tc.guess, tc.goal, got)
			assert.Equal(t, want.Encode(), game.JudgeFeedback(game.Word(tc.guess), game.Word(tc.goal)))
		})
	}
}

func TestJudge_SelfIsSolved(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		w := randomWord(r, 5, "ABCDEFGHIJKLMNOPQRSTUVWXYZ")
		assert.True(t, game.Judge(w, w).Solved(), "Judge(%s, %s)", w, w)
	}
}

func TestJudge_AgreesWithNestedScan(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	// A small alphabet forces plenty of repeated letters.
	for _, alphabet := range []string{"ABCDEFGHIJKLMNOPQRSTUVWXYZ", "ABC", "AE"} {
		for i := 0; i < 2000; i++ {
			guess := randomWord(r, 5, alphabet)
			goal := randomWord(r, 5, alphabet)
			assert.Equal(t, nestedScanJudge(guess, goal), game.Judge(guess, goal), "Judge(%s, %s)", guess, goal)
		}
	}
}

func TestJudge_MisplacedNeverExceedsRemainingLetters(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 2000; i++ {
		guess := randomWord(r, 6, "ABCD")
		goal := randomWord(r, 6, "ABCD")
		j := game.Judge(guess, goal)

		guessLeft := map[byte]int{}
		goalLeft := map[byte]int{}
		misplaced := map[byte]int{}
		for k := range j {
			if j[k] == game.Correct {
				continue
			}
			guessLeft[guess[k]]++
			goalLeft[goal[k]]++
			if j[k] == game.Misplaced {
				misplaced[guess[k]]++
			}
		}
		for c, k := range guessLeft {
			assert.Equal(t, min(k, goalLeft[c]), misplaced[c], "letter %c in Judge(%s, %s)", c, guess, goal)
		}
	}
}

func TestJudge_LowestIndexConsumesFirst(t *testing.T) {
	got := game.Judge("ABAXX", "YYYYA")
	assert.Equal(t, game.WordJudgment{game.Misplaced, game.Incorrect, game.Incorrect, game.Incorrect, game.Incorrect}, got)
}

func TestJudge_DoesNotMutateInputs(t *testing.T) {
	guess, goal := game.Word("HELLO"), game.Word("LLAMA")
	_ = game.Judge(guess, goal)
	assert.Equal(t, game.Word("HELLO"), guess)
	assert.Equal(t, game.Word("LLAMA"), goal)
}
