// main.go
//
// Entry point for the wordle-solver binary.
// Responsibilities:
//   - Loading .env (godotenv) and configuring zerolog.
//   - Resolving configuration: environment first, then command-line flags.
//   - Building the optimizer from the configured word source.
//   - Subcommands: play, opener, solve, serve, import, token, hash-password.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/config"
	"github.com/robalobadob/wordle-solver/internal/console"
	"github.com/robalobadob/wordle-solver/internal/daily"
	"github.com/robalobadob/wordle-solver/internal/game"
	"github.com/robalobadob/wordle-solver/internal/httpserver"
	"github.com/robalobadob/wordle-solver/internal/optimizer"
	"github.com/robalobadob/wordle-solver/internal/solver"
	"github.com/robalobadob/wordle-solver/internal/store"
	"github.com/robalobadob/wordle-solver/internal/words"
)

// cfg is filled by the root command before any subcommand runs.
var cfg config.Config

var showProgress bool

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	_ = godotenv.Load()
	cfg = config.FromEnv()

	root := &cobra.Command{
		Use:          "wordle-solver",
		Short:        "Suggest the guess that leaves the fewest Wordle candidates",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cfg.LogLevel)
			return nil
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&cfg.WordsFile, "words", cfg.WordsFile, "word list file, one word per line (WORDS_FILE)")
	f.StringVar(&cfg.WordsDB, "db", cfg.WordsDB, "SQLite word database (WORDS_DB)")
	f.IntVar(&cfg.WordLength, "length", cfg.WordLength, "letters per word (WORD_LENGTH)")
	f.StringVar(&cfg.Symbols, "symbols", cfg.Symbols, "feedback glyphs for correct, misplaced, incorrect (FEEDBACK_SYMBOLS)")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "zerolog level (LOG_LEVEL)")
	f.BoolVar(&showProgress, "progress", isatty.IsTerminal(os.Stderr.Fd()), "show a progress bar while precomputing feedback")

	root.AddCommand(playCmd(), openerCmd(), solveCmd(), serveCmd(), importCmd(), tokenCmd(), hashPasswordCmd())
	return root
}

// setupLogging sets the global level and a console writer on terminals.
func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	if isatty.IsTerminal(os.Stderr.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// buildOptimizer loads the word list and precomputes the feedback matrix.
func buildOptimizer(ctx context.Context) (*optimizer.Optimizer, game.Symbols, error) {
	sym, err := cfg.FeedbackSymbols()
	if err != nil {
		return nil, sym, err
	}
	lines, err := words.Load(ctx, cfg.Source())
	if err != nil {
		return nil, sym, err
	}
	vocab, err := optimizer.ParseVocabulary(cfg.WordLength, lines)
	if err != nil {
		return nil, sym, err
	}

	var opts []optimizer.Option
	if showProgress {
		var bar *progressbar.ProgressBar
		opts = append(opts, optimizer.WithProgress(func(done, total int) {
			if bar == nil {
				bar = progressbar.Default(int64(total), "feedback matrix")
			}
			_ = bar.Set(done)
		}))
	}

	start := time.Now()
	opt, err := optimizer.New(vocab, opts...)
	if err != nil {
		return nil, sym, err
	}
	log.Info().Int("words", opt.Len()).Int("length", opt.WordLength()).Dur("elapsed", time.Since(start)).Msg("feedback matrix ready")
	return opt, sym, nil
}

func playCmd() *cobra.Command {
	var colorOut bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Interactive solver: enter each guess and its feedback",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, sym, err := buildOptimizer(cmd.Context())
			if err != nil {
				return err
			}
			sess := solver.New(opt, solver.WithSymbols(sym))
			return console.New(sess, cmd.InOrStdin(), cmd.OutOrStdout(), console.Options{Color: colorOut}).Run()
		},
	}
	cmd.Flags().BoolVar(&colorOut, "color", isatty.IsTerminal(os.Stdout.Fd()), "colorize feedback")
	return cmd
}

func openerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "opener",
		Short: "Print the best first guess for the word list",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, _, err := buildOptimizer(cmd.Context())
			if err != nil {
				return err
			}
			all := opt.Indices()
			gi, err := opt.BestGuess(all, all)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  expected remaining %.2f of %d\n", opt.WordAt(gi), opt.Score(gi, all), len(all))
			return nil
		},
	}
}

func solveCmd() *cobra.Command {
	var (
		goal      string
		useDaily  bool
		date      string
		maxRounds int
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Autoplay against a known goal word (or the daily word)",
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, sym, err := buildOptimizer(cmd.Context())
			if err != nil {
				return err
			}
			if useDaily {
				d, err := daily.ParseDate(date, time.Now())
				if err != nil {
					return err
				}
				goal = opt.WordAt(daily.WordIndex(d, cfg.DailySalt, opt.Len())).String()
			}
			if goal == "" {
				return fmt.Errorf("solve: need --goal or --daily")
			}

			sess := solver.New(opt, solver.WithSymbols(sym))
			rounds, err := sess.Autoplay(goal, maxRounds)
			out := cmd.OutOrStdout()
			for i, rd := range rounds {
				fmt.Fprintf(out, "%2d  %s %s  %d left\n", i+1, rd.Guess, sym.Format(rd.Feedback), rd.Remaining)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&goal, "goal", "", "goal word")
	cmd.Flags().BoolVar(&useDaily, "daily", false, "use the daily goal word")
	cmd.Flags().StringVar(&date, "date", "", "daily date YYYY-MM-DD (default today, UTC)")
	cmd.Flags().IntVar(&maxRounds, "max-rounds", cfg.MaxRounds, "give up after this many rounds (MAX_ROUNDS)")
	cmd.MarkFlagsMutuallyExclusive("goal", "daily")
	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP solver API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opt, sym, err := buildOptimizer(ctx)
			if err != nil {
				return err
			}

			var opts []httpserver.Option
			if cfg.WordsDB != "" {
				db, err := words.OpenDB(cfg.WordsDB)
				if err != nil {
					return err
				}
				defer db.Close()
				ds := daily.NewStore(db)
				if err := ds.EnsureSchema(ctx); err != nil {
					return err
				}
				opts = append(opts, httpserver.WithDailyStore(ds))
			}

			srv := httpserver.New(store.NewMemoryStore(), opt, httpserver.Config{
				ClientOrigin:      cfg.ClientOrigin,
				JWTSecret:         cfg.JWTSecret,
				JWTExpiresDays:    cfg.JWTExpiresDays,
				AdminPasswordHash: cfg.AdminPasswordHash,
				DailySalt:         cfg.DailySalt,
				MaxRounds:         cfg.MaxRounds,
				Symbols:           sym,
			}, opts...)
			if cfg.JWTSecret == "" {
				log.Warn().Msg("JWT_SECRET not set; API is open")
			}
			return srv.Run(ctx, ":"+cfg.Port)
		},
	}
	cmd.Flags().StringVar(&cfg.Port, "port", cfg.Port, "listen port (PORT)")
	return cmd
}
