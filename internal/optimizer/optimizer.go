// Package optimizer owns a vocabulary and its all-pairs feedback matrix and
// answers "which guess best splits a candidate set".
//
// Words are addressed by their index in the sorted, deduplicated vocabulary.
// The matrix is filled once in New (O(|V|²·N)) and is read-only afterwards,
// so an Optimizer can be shared between sessions without locking.
//
// Scoring: for a guess g and goals G, build the histogram h of
// FeedbackClass(g, x) over x in G. Score(g) = Σ h[k]² / |G|, the expected size
// of the candidate set left after playing g against a uniformly drawn goal.
// BestGuess is the argmin; ties go to the earliest guess in the input order.
package optimizer

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/robalobadob/wordle-solver/internal/game"
)

var (
	// ErrNotFound indicates a word that is not in the vocabulary.
	ErrNotFound = errors.New("optimizer: word not in vocabulary")
	// ErrEmptyInput indicates BestGuess was given no guesses or no goals.
	ErrEmptyInput = errors.New("optimizer: empty guesses or goals")
	// ErrEmptyVocabulary indicates New was given no words.
	ErrEmptyVocabulary = errors.New("optimizer: vocabulary is empty")
	// ErrMixedLength indicates words of differing lengths.
	ErrMixedLength = errors.New("optimizer: words must all have the same length")
)

// Option configures New.
type Option func(*options)

type options struct {
	progress func(done, total int)
}

// WithProgress registers fn to be called after each matrix row is filled.
func WithProgress(fn func(done, total int)) Option {
	return func(o *options) { o.progress = fn }
}

// Optimizer is immutable after construction.
type Optimizer struct {
	n      int
	words  []game.Word
	matrix []game.Feedback // matrix[guess*len(words)+goal]

	// scratch histogram for BestGuess; see score
	hist []uint32
}

// ParseVocabulary runs each raw line through the word codec.
// Errors name the 1-based line and wrap game.ErrInvalidLength.
func ParseVocabulary(n int, lines []string) ([]game.Word, error) {
	out := make([]game.Word, 0, len(lines))
	for i, l := range lines {
		w, err := game.ParseWord(l, n)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// New sorts and deduplicates words and builds the feedback matrix.
func New(words []game.Word, opts ...Option) (*Optimizer, error) {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if len(words) == 0 {
		return nil, ErrEmptyVocabulary
	}

	n := words[0].Len()
	if n == 0 || n > game.MaxWordLength {
		return nil, fmt.Errorf("%w: word length %d not in [1, %d]", game.ErrInvalidLength, n, game.MaxWordLength)
	}
	for _, w := range words {
		if w.Len() != n {
			return nil, fmt.Errorf("%w: %q has %d letters, want %d", ErrMixedLength, w, w.Len(), n)
		}
	}

	vocab := slices.Clone(words)
	slices.Sort(vocab)
	vocab = slices.Compact(vocab)

	size := len(vocab)
	matrix := make([]game.Feedback, size*size)
	for gi, guess := range vocab {
		row := matrix[gi*size : (gi+1)*size]
		for ti, goal := range vocab {
			row[ti] = game.JudgeFeedback(guess, goal)
		}
		if o.progress != nil {
			o.progress(gi+1, size)
		}
	}

	return &Optimizer{
		n:      n,
		words:  vocab,
		matrix: matrix,
		hist:   make([]uint32, game.MaxFeedbackValue(n)),
	}, nil
}

// Len returns the vocabulary size.
func (o *Optimizer) Len() int { return len(o.words) }

// WordLength returns N.
func (o *Optimizer) WordLength() int { return o.n }

// Words returns a copy of the sorted vocabulary.
func (o *Optimizer) Words() []game.Word { return slices.Clone(o.words) }

// Indices returns 0..Len()-1.
func (o *Optimizer) Indices() []int {
	out := make([]int, len(o.words))
	for i := range out {
		out[i] = i
	}
	return out
}

// IndexOf locates w by binary search.
func (o *Optimizer) IndexOf(w game.Word) (int, error) {
	i := sort.Search(len(o.words), func(i int) bool { return o.words[i] >= w })
	if i < len(o.words) && o.words[i] == w {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrNotFound, w)
}

// WordAt returns the word at index i. It panics when i is out of range.
func (o *Optimizer) WordAt(i int) game.Word {
	if i < 0 || i >= len(o.words) {
		panic(fmt.Sprintf("optimizer: word index %d out of range [0, %d)", i, len(o.words)))
	}
	return o.words[i]
}

// FeedbackClass is the encoded judgment of guess against goal.
func (o *Optimizer) FeedbackClass(guess, goal int) game.Feedback {
	return o.matrix[guess*len(o.words)+goal]
}

// Score returns the expected remaining candidate count after playing guess
// against goals. It returns 0 for empty goals.
func (o *Optimizer) Score(guess int, goals []int) float64 {
	if len(goals) == 0 {
		return 0
	}
	return float64(o.sumOfSquares(make([]uint32, len(o.hist)), guess, goals)) / float64(len(goals))
}

// BestGuess returns the entry of guesses with the lowest Score against goals.
//
// All guesses share the same |goals| divisor, so the comparison uses the exact
// integer Σ h[k]² and never misranks through rounding. Ties keep the earliest
// guess. BestGuess uses scratch space on o and must not run concurrently with
// itself on the same Optimizer; Clone gives an independent copy.
func (o *Optimizer) BestGuess(guesses, goals []int) (int, error) {
	if len(guesses) == 0 || len(goals) == 0 {
		return -1, ErrEmptyInput
	}
	i := minIndexBy(guesses, func(g int) uint64 {
		return o.sumOfSquares(o.hist, g, goals)
	})
	return guesses[i], nil
}

// Clone shares the vocabulary and matrix with o but has its own scratch
// space, so the clone's BestGuess can run alongside o's.
func (o *Optimizer) Clone() *Optimizer {
	c := *o
	c.hist = make([]uint32, len(o.hist))
	return &c
}

// Partition groups goals by the feedback class guess would produce.
func (o *Optimizer) Partition(guess int, goals []int) map[game.Feedback][]int {
	out := make(map[game.Feedback][]int)
	for _, g := range goals {
		k := o.FeedbackClass(guess, g)
		out[k] = append(out[k], g)
	}
	return out
}

// sumOfSquares fills hist for guess over goals, sums the squared bucket
// sizes and leaves hist zeroed again.
func (o *Optimizer) sumOfSquares(hist []uint32, guess int, goals []int) uint64 {
	row := o.matrix[guess*len(o.words) : (guess+1)*len(o.words)]
	var sum uint64
	for _, g := range goals {
		k := row[g]
		// (h+1)² - h² = 2h+1
		sum += 2*uint64(hist[k]) + 1
		hist[k]++
	}
	for _, g := range goals {
		hist[row[g]] = 0
	}
	return sum
}
