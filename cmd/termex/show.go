package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cognicore/termex/pkg/termex/store"
	"github.com/cognicore/termex/pkg/termex/store/sqlite"
	"github.com/cognicore/termex/pkg/termex/termhood"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the ranked terms of a stored run",
	Args:  cobra.NoArgs,
	RunE:  runShow,
}

func init() {
	showCmd.Flags().String("db", "", "SQLite database with stored runs (required)")
	showCmd.Flags().String("run", "", "run ID (default: latest run)")
	showCmd.Flags().IntP("top", "n", 20, "number of terms to print, 0 for all")
	showCmd.Flags().Bool("list", false, "list stored runs instead")
	_ = showCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, _ []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	runID, _ := cmd.Flags().GetString("run")
	top, _ := cmd.Flags().GetInt("top")
	list, _ := cmd.Flags().GetBool("list")

	ctx := context.Background()
	st, err := sqlite.OpenSQLite(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if list {
		runs, err := st.ListRuns(ctx, top)
		if err != nil {
			return err
		}
		for _, r := range runs {
			cmd.Printf("%s  %s  %d documents  %d terms\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Documents, r.Terms)
		}
		return nil
	}

	var run store.Run
	if runID == "" {
		var ok bool
		run, ok, err = st.LatestRun(ctx)
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("No runs stored.")
			return nil
		}
	} else if run, err = st.GetRun(ctx, runID); err != nil {
		return err
	}

	cmd.Printf("Run %s (%d documents, %d terms)\n\n", run.ID, run.Documents, len(run.Terms))
	for i, t := range rankStored(run.Terms) {
		if top > 0 && i >= top {
			break
		}
		variants := ""
		for j, v := range t.Variants {
			if j > 0 {
				variants += ", "
			}
			variants += fmt.Sprintf("%s (%d)", v.Text, v.Frequency)
		}
		cmd.Printf("%4d. [%d] c=%.3f f=%d df=%d c*idf=%.3f  %s\n", i+1, t.ID, t.CValue, t.F, t.DF, t.Score(), variants)
	}
	return nil
}

// rankStored orders stored terms the way a fresh run ranks them.
func rankStored(terms []store.Term) []termhood.Record {
	records := make([]termhood.Record, len(terms))
	for i, t := range terms {
		r := termhood.Record{ID: t.ID, Expanded: t.Expanded, CValue: t.CValue, F: t.F, DF: t.DF, IDF: t.IDF}
		for _, v := range t.Variants {
			r.Variants = append(r.Variants, termhood.Variant{Text: v.Text, Frequency: v.Frequency})
		}
		records[i] = r
	}
	return termhood.Rank(records)
}
