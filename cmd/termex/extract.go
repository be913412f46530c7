package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cognicore/termex/internal/source"
	"github.com/cognicore/termex/pkg/termex"
	"github.com/cognicore/termex/pkg/termex/config"
	"github.com/cognicore/termex/pkg/termex/ingest"
	"github.com/cognicore/termex/pkg/termex/internalerr"
	"github.com/cognicore/termex/pkg/termex/store"
	"github.com/cognicore/termex/pkg/termex/store/sqlite"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Recognize terms in a document collection",
	Long: `Reads a directory of .txt/.html files or a JSONL file, recognizes
multi-word terms and writes terminology.csv and annotations.json to the
output directory. With --db the run is also stored for later inspection.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("input", "", "input directory or JSONL file (required)")
	extractCmd.Flags().String("settings", "", "settings file (YAML, JSON or TOML)")
	extractCmd.Flags().String("stoplist", "", "stoplist file, overrides the settings file")
	extractCmd.Flags().String("out", "out", "output directory")
	extractCmd.Flags().String("db", "", "SQLite database to store the run in")
	extractCmd.Flags().Int("workers", 0, "worker goroutines (default: number of CPUs)")
	extractCmd.Flags().BoolP("verbose", "v", false, "enable debug logging")
	_ = extractCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, _ []string) error {
	input, _ := cmd.Flags().GetString("input")
	settingsPath, _ := cmd.Flags().GetString("settings")
	stoplistPath, _ := cmd.Flags().GetString("stoplist")
	outDir, _ := cmd.Flags().GetString("out")
	dbPath, _ := cmd.Flags().GetString("db")
	workers, _ := cmd.Flags().GetInt("workers")
	verbose, _ := cmd.Flags().GetBool("verbose")

	logger := setupLogger(verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	loader := &config.Loader{SettingsPath: settingsPath, StoplistPath: stoplistPath, Logger: logger}
	components := loader.Load()

	raw, err := source.Load(input, logger)
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("%s: %w", input, internalerr.ErrNoInput)
	}
	log.Printf("Loaded %d documents from %s", len(raw), input)

	inputs := make([]ingest.Input, len(raw))
	titles := make(map[string]string, len(raw))
	for i, d := range raw {
		inputs[i] = ingest.Input{ID: d.ID, Text: d.Text}
		titles[d.ID] = d.Title
	}
	pipeline := ingest.New(logger)
	c, err := pipeline.Corpus(ctx, inputs, workers)
	if err != nil {
		return fmt.Errorf("annotate: %w", err)
	}

	var st store.Store
	if dbPath != "" {
		st, err = sqlite.OpenSQLite(ctx, dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
	}

	engine := termex.New(termex.Options{
		Settings: components.Settings,
		Stoplist: components.Stoplist,
		Pattern:  components.Pattern,
		Analyzer: pipeline,
		Workers:  workers,
		Logger:   logger,
		Store:    st,
		Observer: termex.ObserverFunc(func(ev termex.PhaseEvent) {
			if verbose {
				log.Printf("%-22s %6d items  %s", ev.Phase, ev.Items, ev.Elapsed)
			}
		}),
	})
	res, err := engine.Run(ctx, c)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	termsPath := filepath.Join(outDir, "terminology.csv")
	if err := writeTerminology(termsPath, res.Ranked()); err != nil {
		return err
	}
	annPath := filepath.Join(outDir, "annotations.json")
	if err := writeAnnotations(annPath, c, res.Labels, titles); err != nil {
		return err
	}

	if len(res.Ambiguous) > 0 {
		log.Printf("WARNING: ambiguous acronyms left unresolved: %v", res.Ambiguous)
	}
	log.Printf("Run %s: %d terms, %d occurrences, %d acronyms", res.RunID, len(res.Terms), len(res.Labels), len(res.Acronyms))
	log.Printf("Wrote %s and %s", termsPath, annPath)
	return nil
}
