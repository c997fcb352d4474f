// internal/config/config.go
//
// Environment configuration for the solver binary.
//
// Environment variables (all optional):
//   WORD_LENGTH=5                 letters per word
//   WORDS_FILE=/path/to/words.txt one word per line
//   WORDS_DB=./data/words.db      SQLite word source (wins over WORDS_FILE)
//   FEEDBACK_SYMBOLS=CM.          glyphs for correct, misplaced, incorrect
//   MAX_ROUNDS=12                 autoplay round limit
//   LOG_LEVEL=info
//   PORT=5175
//   CLIENT_ORIGIN=http://localhost:5173
//   JWT_SECRET=...                enables bearer auth on the API when set
//   JWT_EXPIRES_DAYS=14
//   ADMIN_PASSWORD_HASH=...       bcrypt hash checked by POST /auth/token
//   DAILY_SALT=local_dev_salt
//
// A .env file in the working directory is loaded first by main via godotenv.

package config

import (
	"os"
	"strconv"

	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// Config is the resolved process configuration.
type Config struct {
	WordLength int
	WordsFile  string
	WordsDB    string
	Symbols    string
	MaxRounds  int
	LogLevel   string

	Port              string
	ClientOrigin      string
	JWTSecret         string
	JWTExpiresDays    int
	AdminPasswordHash string
	DailySalt         string
}

// FromEnv reads the configuration, filling defaults.
func FromEnv() Config {
	return Config{
		WordLength: getEnvInt("WORD_LENGTH", 5),
		WordsFile:  os.Getenv("WORDS_FILE"),
		WordsDB:    os.Getenv("WORDS_DB"),
		Symbols:    getEnv("FEEDBACK_SYMBOLS", game.DefaultSymbols.String()),
		MaxRounds:  getEnvInt("MAX_ROUNDS", 12),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Port:              getEnv("PORT", "5175"),
		ClientOrigin:      getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		JWTExpiresDays:    getEnvInt("JWT_EXPIRES_DAYS", 14),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),
	}
}

// Source returns where the word list comes from.
func (c Config) Source() words.Source {
	return words.Source{DB: c.WordsDB, File: c.WordsFile, Length: c.WordLength}
}

// FeedbackSymbols parses Symbols.
func (c Config) FeedbackSymbols() (game.Symbols, error) {
	return game.ParseSymbols(c.Symbols)
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
