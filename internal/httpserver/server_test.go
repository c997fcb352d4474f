package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/optimizer"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

func newServer(t *testing.T, cfg httpserver.Config, opts ...httpserver.Option) http.Handler {
	t.Helper()
	opt, err := optimizer.New([]game.Word{"TRAIN", "DRAIN", "BRAIN", "CRANE"})
	require.NoError(t, err)
	return httpserver.New(store.NewMemoryStore(), opt, cfg, opts...).Router()
}

func do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func TestHealthAndIndex(t *testing.T) {
	h := newServer(t, httpserver.Config{})

	rec := do(t, h, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["ok"])

	rec = do(t, h, http.MethodGet, "/", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	m := decode(t, rec)
	assert.EqualValues(t, 4, m["words"])
	assert.Equal(t, "CM.", m["symbols"])

	rec = do(t, h, http.MethodGet, "/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSessionLifecycle(t *testing.T) {
	h := newServer(t, httpserver.Config{})

	rec := do(t, h, http.MethodPost, "/sessions", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	m := decode(t, rec)
	id, _ := m["sessionId"].(string)
	require.NotEmpty(t, id)
	assert.EqualValues(t, 4, m["candidates"])
	assert.Equal(t, "active", m["state"])
	base := "/sessions/" + id

	rec = do(t, h, http.MethodGet, base+"/best", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	best := decode(t, rec)
	assert.NotEmpty(t, best["guess"])
	assert.EqualValues(t, 4, best["candidates"])
	assert.Greater(t, best["partitions"], 1.0)

	rec = do(t, h, http.MethodPost, base+"/guess", map[string]string{"guess": "drain", "feedback": ".CCCC"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m = decode(t, rec)
	assert.EqualValues(t, 2, m["candidates"])
	rounds := m["rounds"].([]any)
	require.Len(t, rounds, 1)
	assert.Equal(t, "DRAIN", rounds[0].(map[string]any)["guess"])
	assert.Equal(t, ".CCCC", rounds[0].(map[string]any)["feedback"])

	// rejected rounds leave the candidates alone
	for _, body := range []map[string]string{
		{"guess": "ZZZZZ", "feedback": "....."},
		{"guess": "TRAIN", "feedback": "CCXCC"},
		{"guess": "TRAIN", "feedback": "CC"},
	} {
		rec = do(t, h, http.MethodPost, base+"/guess", body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.NotEmpty(t, decode(t, rec)["error"])
	}
	rec = do(t, h, http.MethodGet, base+"/candidates", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []any{"BRAIN", "TRAIN"}, decode(t, rec)["candidates"])

	rec = do(t, h, http.MethodPost, base+"/guess", map[string]string{"guess": "BRAIN", "feedback": ".CCCC"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	m = decode(t, rec)
	assert.Equal(t, "solved", m["state"])
	assert.Equal(t, "TRAIN", m["solution"])

	rec = do(t, h, http.MethodPost, base+"/reset", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	m = decode(t, rec)
	assert.EqualValues(t, 4, m["candidates"])
	assert.Empty(t, m["rounds"])

	rec = do(t, h, http.MethodDelete, base, nil, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = do(t, h, http.MethodGet, base, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = do(t, h, http.MethodDelete, base, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExhaustedSession(t *testing.T) {
	h := newServer(t, httpserver.Config{})
	id := decode(t, do(t, h, http.MethodPost, "/sessions", nil, ""))["sessionId"].(string)

	rec := do(t, h, http.MethodPost, "/sessions/"+id+"/guess", map[string]string{"guess": "TRAIN", "feedback": "MMMMM"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "exhausted", decode(t, rec)["state"])

	rec = do(t, h, http.MethodGet, "/sessions/"+id+"/best", nil, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCustomSymbols(t *testing.T) {
	h := newServer(t, httpserver.Config{Symbols: mustSymbols(t, "GYX")})
	id := decode(t, do(t, h, http.MethodPost, "/sessions", nil, ""))["sessionId"].(string)

	rec := do(t, h, http.MethodPost, "/sessions/"+id+"/guess", map[string]string{"guess": "DRAIN", "feedback": "XGGGG"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m := decode(t, rec)
	assert.EqualValues(t, 2, m["candidates"])
	assert.Equal(t, "XGGGG", m["rounds"].([]any)[0].(map[string]any)["feedback"])
}

func mustSymbols(t *testing.T, s string) game.Symbols {
	t.Helper()
	sym, err := game.ParseSymbols(s)
	require.NoError(t, err)
	return sym
}

func TestOpener(t *testing.T) {
	h := newServer(t, httpserver.Config{})
	rec := do(t, h, http.MethodGet, "/opener", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	first := decode(t, rec)
	assert.Contains(t, []any{"BRAIN", "CRANE", "DRAIN", "TRAIN"}, first["guess"])
	assert.EqualValues(t, 4, first["words"])

	// cached
	assert.Equal(t, first, decode(t, do(t, h, http.MethodGet, "/opener", nil, "")))
}

func TestDailySolve(t *testing.T) {
	db, err := words.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	ds := daily.NewStore(db)
	require.NoError(t, ds.EnsureSchema(context.Background()))

	h := newServer(t, httpserver.Config{DailySalt: "salt"}, httpserver.WithDailyStore(ds))

	rec := do(t, h, http.MethodGet, "/daily/solve?date=2026-10-16", nil, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	m := decode(t, rec)
	assert.Equal(t, "2026-10-16", m["date"])
	assert.Equal(t, true, m["solved"])
	rounds := m["rounds"].([]any)
	require.NotEmpty(t, rounds)
	last := rounds[len(rounds)-1].(map[string]any)
	assert.Equal(t, m["goal"], last["guess"])
	assert.Equal(t, "CCCCC", last["feedback"])

	rec = do(t, h, http.MethodGet, "/daily/solve?date=16-10-2026", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/daily/history", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode(t, rec)["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, m["goal"], results[0].(map[string]any)["goal"])
}

func TestDailyHistoryDisabled(t *testing.T) {
	h := newServer(t, httpserver.Config{})
	rec := do(t, h, http.MethodGet, "/daily/history", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAuth(t *testing.T) {
	hash, err := httpserver.HashPassword("hunter22")
	require.NoError(t, err)
	h := newServer(t, httpserver.Config{JWTSecret: "s3cret", AdminPasswordHash: hash})

	// public
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", nil, "").Code)

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/sessions", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/opener", nil, "garbage").Code)

	rec := do(t, h, http.MethodPost, "/auth/token", map[string]string{"password": "wrong"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/auth/token", map[string]string{"password": "hunter22"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	m := decode(t, rec)
	token, _ := m["token"].(string)
	require.NotEmpty(t, token)
	assert.NotEmpty(t, m["expiresAt"])

	assert.Equal(t, http.StatusCreated, do(t, h, http.MethodPost, "/sessions", nil, token).Code)

	other, _, err := httpserver.SignToken("other-secret", "admin", 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/sessions", nil, other).Code)

	offline, _, err := httpserver.SignToken("s3cret", "cli", 1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/opener", nil, offline).Code)
}

func TestAuthDisabled(t *testing.T) {
	h := newServer(t, httpserver.Config{})
	rec := do(t, h, http.MethodPost, "/auth/token", map[string]string{"password": "x"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	_, _, err := httpserver.SignToken("", "admin", 1)
	assert.ErrorIs(t, err, httpserver.ErrAuthDisabled)
}
