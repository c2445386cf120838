// Package export writes the stored transactions to a CSV file.
package export

import (
	"github.com/spf13/cobra"

	"jmoreno/gastos-csv/cmd/root"
	"jmoreno/gastos-csv/internal/common"
	"jmoreno/gastos-csv/internal/store"
)

var output string

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored transactions to a CSV file",
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Output CSV file")
	_ = Cmd.MarkFlagRequired("output")
}

func exportFunc(cmd *cobra.Command, args []string) {
	db, err := store.Open(root.ResolveStorePath())
	if err != nil {
		root.Log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	txs, err := db.LoadTransactions()
	if err != nil {
		root.Log.Fatalf("Failed to load transactions: %v", err)
	}

	if err := common.WriteTransactionsCSV(txs, output); err != nil {
		root.Log.Fatalf("Failed to write CSV: %v", err)
	}

	root.Log.WithField("count", len(txs)).Info("Export finished")
}
