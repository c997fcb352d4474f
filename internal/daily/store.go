package daily

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// ErrNoResult is returned by Get when a date has not been solved yet.
var ErrNoResult = errors.New("daily: no result for date")

// Result is one recorded autoplay of a date's goal word.
type Result struct {
	Date      string    `json:"date"`
	WordIndex int       `json:"wordIndex"`
	Goal      string    `json:"goal"`
	Guesses   []string  `json:"guesses"`
	Solved    bool      `json:"solved"`
	ElapsedMs int       `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists daily autoplay results in SQLite, one row per date.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the daily_solves table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS daily_solves (
		date       TEXT PRIMARY KEY,
		word_index INTEGER NOT NULL,
		goal       TEXT NOT NULL,
		guesses    TEXT NOT NULL,
		solved     INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		created_at TEXT NOT NULL
	)`)
	return err
}

// Record stores r, replacing any earlier result for the same date.
func (s *Store) Record(ctx context.Context, r Result) error {
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO daily_solves(date, word_index, goal, guesses, solved, elapsed_ms, created_at)
		VALUES(?,?,?,?,?,?,?)`,
		r.Date, r.WordIndex, r.Goal, strings.Join(r.Guesses, ","), r.Solved, r.ElapsedMs, r.CreatedAt.Format(time.RFC3339),
	)
	return err
}

// Get returns the result recorded for date.
func (s *Store) Get(ctx context.Context, date string) (Result, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT date, word_index, goal, guesses, solved, elapsed_ms, created_at
		FROM daily_solves WHERE date=?`, date)
	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, ErrNoResult
	}
	return r, err
}

// Recent lists the latest results, newest date first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT date, word_index, goal, guesses, solved, elapsed_ms, created_at
		FROM daily_solves
		ORDER BY date DESC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Result, 0, limit)
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(sc scanner) (Result, error) {
	var (
		r       Result
		guesses string
		created string
	)
	if err := sc.Scan(&r.Date, &r.WordIndex, &r.Goal, &guesses, &r.Solved, &r.ElapsedMs, &created); err != nil {
		return Result{}, err
	}
	r.Guesses = []string{}
	if guesses != "" {
		r.Guesses = strings.Split(guesses, ",")
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	return r, nil
}
