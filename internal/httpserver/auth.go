// internal/httpserver/auth.go
//
// Bearer-token auth for the solver API.
//   - POST /auth/token trades the admin password for an HS256 JWT.
//   - requireAuth guards the session routes when a JWT secret is configured.
// There are no user accounts: one bcrypt hash (ADMIN_PASSWORD_HASH) gates
// token issue, and the subject claim names the caller for logs.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ErrAuthDisabled is returned when no JWT secret is configured.
var ErrAuthDisabled = errors.New("auth: no JWT secret configured")

type contextKey string

var subjectCtxKey = contextKey("subject")

// HashPassword bcrypt-hashes pw for use as ADMIN_PASSWORD_HASH.
func HashPassword(pw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost) // cost=10
	return string(b), err
}

func checkPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}

// SignToken mints an HS256 token for subject valid for days days.
func SignToken(secret, subject string, days int) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, ErrAuthDisabled
	}
	if days <= 0 {
		days = 14
	}
	now := time.Now()
	exp := now.Add(time.Duration(days) * 24 * time.Hour)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	})
	ss, err := token.SignedString([]byte(secret))
	return ss, exp, err
}

func bearer(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	return ""
}

func (s *Server) requireAuth() func(http.Handler) http.Handler {
	secret := []byte(s.cfg.JWTSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearer(r)
			if tokenStr == "" {
				writeError(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			claims := jwt.MapClaims{}
			token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
				return secret, nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			sub, _ := claims["sub"].(string)
			if sub == "" {
				writeError(w, http.StatusUnauthorized, "Invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), subjectCtxKey, sub)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// subject returns the authenticated caller, or "" on open servers.
func subject(r *http.Request) string {
	sub, _ := r.Context().Value(subjectCtxKey).(string)
	return sub
}

type tokenReq struct {
	Password string `json:"password"`
}

// handleToken issues a token for the admin password.
func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if s.cfg.JWTSecret == "" || s.cfg.AdminPasswordHash == "" {
		writeError(w, http.StatusNotFound, "auth_disabled")
		return
	}
	var req tokenReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	if !checkPassword(s.cfg.AdminPasswordHash, req.Password) {
		log.Warn().Str("remote", r.RemoteAddr).Msg("token request with wrong password")
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	tok, exp, err := SignToken(s.cfg.JWTSecret, "admin", s.cfg.JWTExpiresDays)
	if err != nil {
		log.Error().Err(err).Msg("sign token")
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"token": tok, "expiresAt": exp.UTC().Format(time.RFC3339)})
}
