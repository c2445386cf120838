// Package run executes the full classification pipeline.
package run

import (
	"fmt"

	"github.com/spf13/cobra"

	"jmoreno/gastos-csv/cmd/root"
	"jmoreno/gastos-csv/internal/pipeline"
	"jmoreno/gastos-csv/internal/store"
)

var (
	skipDedup  bool
	reclassify bool
)

// Cmd represents the run command.
var Cmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: dedupe, classify, write back",
	Long: `Run loads the full transaction set, removes duplicate imports, runs the
classification cascade over each surviving record and writes the assignments
back in a single batch.`,
	Run: runFunc,
}

func init() {
	Cmd.Flags().BoolVar(&skipDedup, "skip-dedup", false, "Leave duplicate groups untouched")
	Cmd.Flags().BoolVar(&reclassify, "reclassify", false, "Re-run the cascade over already-classified records too")
}

func runFunc(cmd *cobra.Command, args []string) {
	db, err := store.Open(root.ResolveStorePath())
	if err != nil {
		root.Log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	opts := root.PipelineOptions()
	opts.SkipDedup = skipDedup
	opts.OnlyUnclassified = !reclassify

	outcome, err := pipeline.Run(db, opts)
	if err != nil {
		root.Log.Fatalf("Pipeline run failed: %v", err)
	}

	fmt.Print(outcome.Summary.Render())
	if n := len(outcome.Duplicates.Discard); n > 0 {
		root.Log.WithField("discarded", n).Info("Duplicates removed")
	}
}
