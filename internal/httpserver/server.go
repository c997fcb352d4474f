// internal/httpserver/server.go
//
// HTTP server wiring for the solver API.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", POST /auth/token.
//   - Session endpoints: create, inspect, best guess, apply guess, reset, list, delete.
//   - GET /opener: best first guess over the whole vocabulary (computed once).
//   - Daily autoplay endpoints: mounted under /daily.
//
// Notes:
//   - The optimizer is shared read-only; each session gets its own scratch space.
//   - When Config.JWTSecret is set, every non-public route requires a bearer token.
//   - Bad user input (unknown word, bad feedback) is a 400 and leaves the session unchanged.

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/optimizer"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
)

// Config carries the server settings resolved by main.
type Config struct {
	ClientOrigin      string
	JWTSecret         string
	JWTExpiresDays    int
	AdminPasswordHash string
	DailySalt         string
	MaxRounds         int
	Symbols           game.Symbols
}

// Server bundles router, session store, and the shared optimizer.
type Server struct {
	r     *chi.Mux
	store store.Store
	opt   *optimizer.Optimizer
	cfg   Config
	daily *daily.Store // optional

	openerOnce sync.Once
	opener     openerRes
	openerErr  error
}

// New constructs a Server, installs middleware, and registers routes.
func New(st store.Store, opt *optimizer.Optimizer, cfg Config, opts ...Option) *Server {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = 12
	}
	if cfg.Symbols == (game.Symbols{}) {
		cfg.Symbols = game.DefaultSymbols
	}
	s := &Server{r: chi.NewRouter(), store: st, opt: opt, cfg: cfg}
	for _, fn := range opts {
		fn(s)
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog)                       // one zerolog line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(30 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"service":   "wordle-solver",
			"words":     s.opt.Len(),
			"length":    s.opt.WordLength(),
			"symbols":   s.cfg.Symbols.String(),
			"endpoints": []string{"/health", "POST /sessions", "/sessions/{id}", "/opener", "/daily/solve", "/daily/history", "POST /auth/token"},
		})
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true, "sessions": s.store.Len()})
	})

	s.r.Post("/auth/token", s.handleToken)

	// Solver routes, gated when a JWT secret is configured.
	s.r.Group(func(r chi.Router) {
		if s.cfg.JWTSecret != "" {
			r.Use(s.requireAuth())
		}
		r.Post("/sessions", s.handleNewSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Delete("/", s.handleDeleteSession)
			r.Get("/best", s.handleBest)
			r.Get("/candidates", s.handleCandidates)
			r.Post("/guess", s.handleGuess)
			r.Post("/reset", s.handleReset)
		})
		r.Get("/opener", s.handleOpener)
		s.mountDaily(r)
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// Run serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	hs := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 10 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", addr).Int("words", s.opt.Len()).Msg("solver api listening")
		if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("shutting down solver api")
		return hs.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,DELETE,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one debug line per request with status and latency.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("requestId", chimw.GetReqID(r.Context())).
			Msg("request")
	})
}

// ----------------------------- sessions ------------------------------------

type roundView struct {
	Guess     string `json:"guess"`
	Feedback  string `json:"feedback"`
	Remaining int    `json:"remaining"`
}

type sessionView struct {
	SessionID  string       `json:"sessionId"`
	State      solver.State `json:"state"`
	Candidates int          `json:"candidates"`
	Solution   string       `json:"solution,omitempty"`
	Rounds     []roundView  `json:"rounds"`
}

func (s *Server) view(id string, sess *solver.Session) sessionView {
	v := sessionView{
		SessionID:  id,
		State:      sess.State(),
		Candidates: sess.PossibleSolutionCount(),
		Rounds:     []roundView{},
	}
	if sol, ok := sess.Solution(); ok {
		v.Solution = sol.String()
	}
	for _, rd := range sess.Rounds() {
		v.Rounds = append(v.Rounds, roundView{
			Guess:     rd.Guess.String(),
			Feedback:  s.cfg.Symbols.Format(rd.Feedback),
			Remaining: rd.Remaining,
		})
	}
	return v
}

// handleNewSession starts a session over the full vocabulary.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	sess := solver.New(s.opt, solver.WithSymbols(s.cfg.Symbols))
	id := genID()
	if err := s.store.Save(r.Context(), id, sess); err != nil {
		log.Error().Err(err).Msg("save session")
		writeError(w, http.StatusInternalServerError, "save_failed")
		return
	}
	log.Info().Str("sessionId", id).Int("candidates", sess.PossibleSolutionCount()).Msg("session created")
	writeJSON(w, http.StatusCreated, s.view(id, sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var v sessionView
	s.withSession(w, r, func(sess *solver.Session) error {
		v = s.view(id, sess)
		return nil
	}, func() { writeJSON(w, http.StatusOK, v) })
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, http.StatusNotFound, "not_found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bestRes struct {
	Guess             string  `json:"guess"`
	Candidates        int     `json:"candidates"`
	ExpectedRemaining float64 `json:"expectedRemaining"`
	Partitions        int     `json:"partitions"`
}

// handleBest recommends the next guess for a session.
func (s *Server) handleBest(w http.ResponseWriter, r *http.Request) {
	var res bestRes
	s.withSession(w, r, func(sess *solver.Session) error {
		best, err := sess.BestGuess()
		if err != nil {
			return err
		}
		opt := sess.Optimizer()
		gi, err := opt.IndexOf(best)
		if err != nil {
			return err
		}
		cands := sess.Candidates()
		res = bestRes{
			Guess:             best.String(),
			Candidates:        len(cands),
			ExpectedRemaining: opt.Score(gi, cands),
			Partitions:        len(opt.Partition(gi, cands)),
		}
		return nil
	}, func() { writeJSON(w, http.StatusOK, res) })
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	var out []string
	s.withSession(w, r, func(sess *solver.Session) error {
		for _, wd := range sess.PossibleSolutions() {
			out = append(out, wd.String())
		}
		return nil
	}, func() {
		if out == nil {
			out = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]any{"candidates": out, "count": len(out)})
	})
}

type guessReq struct {
	Guess    string `json:"guess"`
	Feedback string `json:"feedback"`
}

// handleGuess applies one guess/feedback round.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	id := chi.URLParam(r, "id")
	guess := strings.ToUpper(strings.TrimSpace(req.Guess))
	fb := strings.TrimSpace(req.Feedback)

	var v sessionView
	s.withSession(w, r, func(sess *solver.Session) error {
		if err := sess.ApplyGuess(guess, fb); err != nil {
			return err
		}
		v = s.view(id, sess)
		return nil
	}, func() {
		log.Info().Str("sessionId", id).Str("guess", guess).Int("candidates", v.Candidates).Msg("guess applied")
		writeJSON(w, http.StatusOK, v)
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var v sessionView
	s.withSession(w, r, func(sess *solver.Session) error {
		sess.Reset()
		v = s.view(id, sess)
		return nil
	}, func() { writeJSON(w, http.StatusOK, v) })
}

// withSession runs fn under the session lock and maps its error to a status;
// ok runs only when fn succeeded.
func (s *Server) withSession(w http.ResponseWriter, r *http.Request, fn func(*solver.Session) error, ok func()) {
	err := s.store.Update(r.Context(), chi.URLParam(r, "id"), fn)
	switch {
	case err == nil:
		ok()
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, game.ErrInvalidLength),
		errors.Is(err, game.ErrInvalidSymbol),
		errors.Is(err, optimizer.ErrNotFound):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, solver.ErrNoCandidates):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("session update")
		writeError(w, http.StatusInternalServerError, "internal")
	}
}

// ------------------------------ opener -------------------------------------

type openerRes struct {
	Guess             string  `json:"guess"`
	Words             int     `json:"words"`
	ExpectedRemaining float64 `json:"expectedRemaining"`
}

// handleOpener returns the best first guess; it is computed on first use.
func (s *Server) handleOpener(w http.ResponseWriter, r *http.Request) {
	s.openerOnce.Do(func() {
		start := time.Now()
		opt := s.opt.Clone()
		all := opt.Indices()
		gi, err := opt.BestGuess(all, all)
		if err != nil {
			s.openerErr = err
			return
		}
		s.opener = openerRes{Guess: opt.WordAt(gi).String(), Words: len(all), ExpectedRemaining: opt.Score(gi, all)}
		log.Info().Str("guess", s.opener.Guess).Dur("elapsed", time.Since(start)).Msg("opener computed")
	})
	if s.openerErr != nil {
		writeError(w, http.StatusInternalServerError, s.openerErr.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.opener)
}

// ------------------------------- util --------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// genID creates a 22-char URL-safe, crypto-random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.URLEncoding.WithPadding(base64.NoPadding).EncodeToString(b[:])
}
