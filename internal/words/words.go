// internal/words/words.go
//
// Word-list sources for the solver.
//
// Responsibilities:
//   - Read one word per line from a reader, file, or the embedded default list.
//   - Normalize to uppercase (the feedback symbols assume uppercase words).
//   - Hand raw lines to the core; lines of the wrong length are NOT dropped
//     here, so the word codec reports them as invalid length.
//
// Selection (Load):
//   1. If Source.DB is set, read the words table of that SQLite database.
//   2. Else if Source.File is set, read that file.
//   3. Else fall back to the embedded assets/words.txt.

package words

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/assets"
)

// Source says where Load reads words from.
type Source struct {
	DB     string // SQLite DSN
	File   string // one word per line
	Length int    // word length, used to filter database rows
}

// ReadLines reads one word per line.
//
//   - Trailing "\r" is trimmed and words are upper-cased.
//   - Lines starting with "#" are comments.
//   - Blank lines at the end of the input are dropped; blank lines in the
//     middle are kept so they fail validation like any other bad line.
func ReadLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(line, "#") {
			continue
		}
		out = append(out, strings.ToUpper(line))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out, nil
}

// LoadFile reads a word list from path.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// Embedded returns the default word list compiled into the binary.
func Embedded() ([]string, error) {
	f, err := assets.FS.Open(assets.WordsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

// Load reads words from the first configured source.
func Load(ctx context.Context, src Source) ([]string, error) {
	switch {
	case src.DB != "":
		db, err := OpenDB(src.DB)
		if err != nil {
			return nil, fmt.Errorf("words: open %s: %w", src.DB, err)
		}
		defer db.Close()
		out, err := LoadDB(ctx, db, src.Length)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("db", src.DB).Int("words", len(out)).Msg("word list loaded")
		return out, nil

	case src.File != "":
		out, err := LoadFile(src.File)
		if err != nil {
			return nil, fmt.Errorf("words: %w", err)
		}
		log.Debug().Str("file", src.File).Int("words", len(out)).Msg("word list loaded")
		return out, nil

	default:
		out, err := Embedded()
		if err != nil {
			return nil, fmt.Errorf("words: embedded list: %w", err)
		}
		log.Debug().Int("words", len(out)).Msg("embedded word list loaded")
		return out, nil
	}
}
