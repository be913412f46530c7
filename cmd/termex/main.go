package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// setupLogger configures the default slog logger used by the library
// packages.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

var rootCmd = &cobra.Command{
	Use:   "termex",
	Short: "Multi-word term recognition",
	Long: `termex extracts multi-word terms from a document collection, folds
acronyms into their long forms, merges spelling variants and scores every
term by C-value and IDF.

Examples:
  termex extract --input ./texts --out ./out
  termex extract --input docs.jsonl --settings settings.yaml --db runs.db
  termex show --db runs.db --top 20`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
