// Package report prints an aggregate view of the stored classifications.
package report

import (
	"fmt"

	"github.com/spf13/cobra"

	"jmoreno/gastos-csv/cmd/root"
	reportgen "jmoreno/gastos-csv/internal/report"
	"jmoreno/gastos-csv/internal/store"
)

// Cmd represents the report command.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Print per-kind and per-category counts",
	Run:   reportFunc,
}

func reportFunc(cmd *cobra.Command, args []string) {
	db, err := store.Open(root.ResolveStorePath())
	if err != nil {
		root.Log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	txs, err := db.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Failed to load transactions: %v", err)
	}

	fmt.Print(reportgen.FromTransactions(txs).Render())
}
