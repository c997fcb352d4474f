// Package console drives a solver session from line-oriented text I/O.
//
// Commands:
//
//	g  play a round: show the best guess, read the guess played, read its feedback
//	r  reset the session
//	l  list remaining candidates
//	q  quit
//	?  help
//
// Bad commands and bad rounds are reported and the prompt comes back; the
// session is only changed by a round that parses cleanly.
package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/TwiN/go-color"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

const help = `commands:
  g  play a round (best guess, then enter guess and feedback)
  r  reset to the full word list
  l  list remaining candidates
  q  quit
  ?  this help
feedback: one symbol per letter, %c correct, %c misplaced, %c incorrect
`

// Options tunes the console output.
type Options struct {
	Color bool // colorize feedback echoes
}

// REPL reads commands from in and writes to out.
type REPL struct {
	sess *solver.Session
	in   *bufio.Scanner
	out  io.Writer
	opts Options
}

// New wires a REPL to a session.
func New(sess *solver.Session, in io.Reader, out io.Writer, opts Options) *REPL {
	return &REPL{sess: sess, in: bufio.NewScanner(in), out: out, opts: opts}
}

// Run loops until q or end of input.
func (r *REPL) Run() error {
	r.printf("%d words loaded. Type ? for help.\n", r.sess.PossibleSolutionCount())
	for {
		r.printf("[%d] > ", r.sess.PossibleSolutionCount())
		line, ok := r.readLine()
		if !ok {
			r.printf("\n")
			return r.in.Err()
		}
		switch strings.TrimSpace(line) {
		case "":
		case "g":
			if !r.round() {
				r.printf("\n")
				return r.in.Err()
			}
		case "r":
			r.sess.Reset()
			r.printf("Reset: %d candidates.\n", r.sess.PossibleSolutionCount())
		case "l":
			r.list()
		case "q":
			return nil
		case "?":
			sym := r.sess.Symbols()
			r.printf(help, sym.Correct, sym.Misplaced, sym.Incorrect)
		default:
			r.printf("unknown command %q (type ? for help)\n", line)
		}
	}
}

// round plays one g command. It returns false when input ran out.
func (r *REPL) round() bool {
	if sol, ok := r.sess.Solution(); ok {
		r.printf("Solved: %s\n", sol)
		return true
	}
	best, err := r.sess.BestGuess()
	if err != nil {
		r.printf("error: %v (type r to reset)\n", err)
		return true
	}
	r.printf("%d candidates, best guess: %s\n", r.sess.PossibleSolutionCount(), best)

	r.printf("guess: ")
	guess, ok := r.readLine()
	if !ok {
		return false
	}
	guess = strings.ToUpper(strings.TrimSpace(guess))
	if guess == "" {
		guess = best.String()
	}

	r.printf("feedback: ")
	fb, ok := r.readLine()
	if !ok {
		return false
	}
	fb = strings.TrimSpace(fb)

	if err := r.sess.ApplyGuess(guess, fb); err != nil {
		log.Debug().Err(err).Str("guess", guess).Str("feedback", fb).Msg("round rejected")
		r.printf("error: %v\n", err)
		return true
	}

	if rounds := r.sess.Rounds(); len(rounds) > 0 {
		last := rounds[len(rounds)-1]
		r.printf("%s  %d left\n", r.render(last.Guess, last.Feedback), last.Remaining)
	}
	switch r.sess.State() {
	case solver.StateSolved:
		sol, _ := r.sess.Solution()
		r.printf("Solved: %s\n", sol)
	case solver.StateExhausted:
		r.printf("No word matches that feedback. Type r to reset.\n")
	}
	return true
}

func (r *REPL) list() {
	sols := r.sess.PossibleSolutions()
	for i, w := range sols {
		sep := " "
		if (i+1)%10 == 0 || i == len(sols)-1 {
			sep = "\n"
		}
		r.printf("%s%s", w, sep)
	}
	r.printf("%d candidates\n", len(sols))
}

// render shows the guess with its feedback, colored when enabled.
func (r *REPL) render(w game.Word, j game.WordJudgment) string {
	if !r.opts.Color {
		return fmt.Sprintf("%s %s", w, r.sess.Symbols().Format(j))
	}
	var b strings.Builder
	for i := 0; i < w.Len(); i++ {
		c := color.Gray
		switch j[i] {
		case game.Correct:
			c = color.Green
		case game.Misplaced:
			c = color.Yellow
		}
		b.WriteString(color.Colorize(c, string(w[i])))
	}
	return b.String()
}

func (r *REPL) readLine() (string, bool) {
	if !r.in.Scan() {
		return "", false
	}
	return r.in.Text(), true
}

func (r *REPL) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}
