// Package dedupe runs duplicate resolution on its own.
package dedupe

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jmoreno/gastos-csv/cmd/root"
	"jmoreno/gastos-csv/internal/dedup"
	"jmoreno/gastos-csv/internal/store"
)

// Cmd represents the dedupe command.
var Cmd = &cobra.Command{
	Use:   "dedupe",
	Short: "Collapse duplicate imports into one canonical record each",
	Long: `Dedupe groups records by (date, |amount|, bank, account), scores each
member of a group and deletes everything but the highest-scoring survivor.
With --dry-run it only reports what would be deleted.`,
	Run: dedupeFunc,
}

func dedupeFunc(cmd *cobra.Command, args []string) {
	db, err := store.Open(root.ResolveStorePath())
	if err != nil {
		root.Log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	txs, err := db.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Failed to load transactions: %v", err)
	}

	res := dedup.New(root.Logger).Resolve(txs)

	root.Log.WithFields(logrus.Fields{
		"total":   len(txs),
		"keep":    len(res.Keep),
		"discard": len(res.Discard),
	}).Info("Duplicate resolution complete")

	if root.DryRun || len(res.Discard) == 0 {
		return
	}

	if err := db.DeleteTransactions(res.Discard); err != nil {
		root.Log.Fatalf("Failed to delete duplicates: %v", err)
	}
	root.Log.WithField("deleted", len(res.Discard)).Info("Duplicates deleted")
}
