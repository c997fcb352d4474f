package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/console"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

func run(t *testing.T, input string, opts console.Options) (*solver.Session, string) {
	t.Helper()
	sess, err := solver.FromLines(5, []string{"TRAIN", "DRAIN", "BRAIN", "CRANE"})
	require.NoError(t, err)
	var out bytes.Buffer
	require.NoError(t, console.New(sess, strings.NewReader(input), &out, opts).Run())
	return sess, out.String()
}

func TestREPL_SolvesInTwoRounds(t *testing.T) {
	sess, out := run(t, "g\nDRAIN\n.CCCC\ng\nbrain\n.CCCC\nq\n", console.Options{})
	assert.Contains(t, out, "best guess:")
	assert.Contains(t, out, "DRAIN .CCCC  2 left")
	assert.Contains(t, out, "Solved: TRAIN")

	sol, ok := sess.Solution()
	require.True(t, ok)
	assert.Equal(t, "TRAIN", sol.String())
}

func TestREPL_BadRoundKeepsCandidates(t *testing.T) {
	sess, out := run(t, "g\nZZZZZ\n.....\ng\nTRAIN\nCCXCC\ng\nTRAIN\nCCC\n", console.Options{})
	assert.Equal(t, 3, strings.Count(out, "error:"))
	assert.Equal(t, 4, sess.PossibleSolutionCount())
}

func TestREPL_Commands(t *testing.T) {
	_, out := run(t, "?\nl\nx\n\ng\nTRAIN\nMMMMM\ng\nr\nq\n", console.Options{})
	assert.Contains(t, out, "commands:")
	assert.Contains(t, out, "BRAIN CRANE DRAIN TRAIN\n4 candidates")
	assert.Contains(t, out, `unknown command "x"`)
	assert.Contains(t, out, "No word matches that feedback")
	assert.Contains(t, out, "no candidates left")
	assert.Contains(t, out, "Reset: 4 candidates.")
}

func TestREPL_EmptyGuessPlaysBest(t *testing.T) {
	sess, _ := run(t, "g\n\nCCCCC\n", console.Options{})
	rounds := sess.Rounds()
	require.Len(t, rounds, 1)
	assert.Equal(t, 1, sess.PossibleSolutionCount())
}

func TestREPL_ColorOutput(t *testing.T) {
	_, out := run(t, "g\nDRAIN\n.CCCC\nq\n", console.Options{Color: true})
	assert.NotContains(t, out, ".CCCC")
	assert.Contains(t, out, "2 left")
}

func TestREPL_EndOfInput(t *testing.T) {
	_, out := run(t, "g\nDRAIN\n", console.Options{})
	assert.Contains(t, out, "feedback: ")
}
