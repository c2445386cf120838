// Package enrich applies the merchant catalog to stored transactions in
// bulk.
package enrich

import (
	"github.com/spf13/cobra"

	"jmoreno/gastos-csv/cmd/root"
	"jmoreno/gastos-csv/internal/pipeline"
	"jmoreno/gastos-csv/internal/store"
)

// Cmd represents the enrich command.
var Cmd = &cobra.Command{
	Use:   "enrich",
	Short: "Apply the merchant catalog to stored transactions",
	Long: `Enrich re-runs the merchant lookup over every stored transaction and
fills in categories, overwriting only records whose current category is
empty, unclassified or the generic catch-all.`,
	Run: enrichFunc,
}

func enrichFunc(cmd *cobra.Command, args []string) {
	db, err := store.Open(root.ResolveStorePath())
	if err != nil {
		root.Log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	outcome, err := pipeline.Enrich(db, root.PipelineOptions())
	if err != nil {
		root.Log.Fatalf("Enrichment failed: %v", err)
	}

	root.Log.WithField("updated", outcome.Updated).Info("Enrichment finished")
}
