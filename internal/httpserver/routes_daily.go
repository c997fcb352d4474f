// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily self-play mode.
// Exposes two endpoints under /daily:
//   - GET /daily/solve?date=YYYY-MM-DD → autoplay the date's goal word (default today)
//   - GET /daily/history?limit=N       → recorded solves, newest first
//
// The goal is picked deterministically from date + salt over the loaded
// vocabulary. Solves are recorded when a daily store is configured; without
// one, history answers 404.

package httpserver

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/solver"
)

// Option configures optional Server dependencies.
type Option func(*Server)

// WithDailyStore records daily solves in ds.
func WithDailyStore(ds *daily.Store) Option {
	return func(s *Server) { s.daily = ds }
}

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/solve", s.handleDailySolve)
		r.Get("/history", s.handleDailyHistory)
	})
}

// dailyRes is returned by /daily/solve.
type dailyRes struct {
	Date   string      `json:"date"`
	Goal   string      `json:"goal"`
	Solved bool        `json:"solved"`
	Rounds []roundView `json:"rounds"`
}

// handleDailySolve plays the date's goal with a fresh session.
func (s *Server) handleDailySolve(w http.ResponseWriter, r *http.Request) {
	date, err := daily.ParseDate(r.URL.Query().Get("date"), time.Now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	idx := daily.WordIndex(date, s.cfg.DailySalt, s.opt.Len())
	goal := s.opt.WordAt(idx)

	start := time.Now()
	sess := solver.New(s.opt, solver.WithSymbols(s.cfg.Symbols))
	rounds, err := sess.Autoplay(goal.String(), s.cfg.MaxRounds)
	elapsed := time.Since(start)

	res := dailyRes{Date: daily.DateKey(date), Goal: goal.String(), Solved: err == nil, Rounds: []roundView{}}
	guesses := make([]string, 0, len(rounds))
	for _, rd := range rounds {
		res.Rounds = append(res.Rounds, roundView{
			Guess:     rd.Guess.String(),
			Feedback:  s.cfg.Symbols.Format(rd.Feedback),
			Remaining: rd.Remaining,
		})
		guesses = append(guesses, rd.Guess.String())
	}
	if err != nil {
		log.Warn().Err(err).Str("date", res.Date).Msg("daily autoplay did not finish")
	}

	if s.daily != nil {
		rec := daily.Result{
			Date: res.Date, WordIndex: idx, Goal: res.Goal,
			Guesses: guesses, Solved: res.Solved, ElapsedMs: int(elapsed.Milliseconds()),
		}
		if err := s.daily.Record(r.Context(), rec); err != nil {
			log.Error().Err(err).Str("date", res.Date).Msg("record daily solve")
		}
	}
	log.Info().Str("date", res.Date).Int("guesses", len(rounds)).Str("by", subject(r)).Msg("daily solved")
	writeJSON(w, http.StatusOK, res)
}

// handleDailyHistory lists recorded solves (default 20).
func (s *Server) handleDailyHistory(w http.ResponseWriter, r *http.Request) {
	if s.daily == nil {
		writeError(w, http.StatusNotFound, "history_disabled")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.daily.Recent(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("daily history")
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": rows})
}
