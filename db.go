// db.go
//
// "import" subcommand: loads a word list file into the SQLite word store.
//   - Reads the file with the same rules as WORDS_FILE (comments, case, blanks).
//   - Opens (and migrates) the database given by --db / WORDS_DB.
//   - Inserts words idempotently; existing rows are kept.

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/wordle-solver/internal/words"
)

func importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a word list file into the SQLite word store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.WordsDB == "" {
				return fmt.Errorf("import: --db (or WORDS_DB) is required")
			}
			list, err := words.LoadFile(args[0])
			if err != nil {
				return err
			}
			db, err := words.OpenDB(cfg.WordsDB)
			if err != nil {
				return err
			}
			defer db.Close()

			added, err := words.ImportDB(cmd.Context(), db, list)
			if err != nil {
				return err
			}
			log.Info().Str("file", args[0]).Str("db", cfg.WordsDB).Int("read", len(list)).Int("added", added).Msg("import done")
			fmt.Fprintf(cmd.OutOrStdout(), "%d words read, %d added\n", len(list), added)
			return nil
		},
	}
}
