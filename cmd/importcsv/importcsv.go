// Package importcsv loads transaction rows from a CSV export into the
// store.
package importcsv

import (
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jmoreno/gastos-csv/cmd/root"
	"jmoreno/gastos-csv/internal/common"
	"jmoreno/gastos-csv/internal/store"
)

var input string

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV file into the store",
	Long: `Import reads transaction rows from a CSV file and inserts them keyed by
identity hash, so re-importing the same statement is a no-op.`,
	Run: importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Input CSV file")
	_ = Cmd.MarkFlagRequired("input")
}

func importFunc(cmd *cobra.Command, args []string) {
	rows, err := common.ReadTransactionsCSV(input)
	if err != nil {
		root.Log.Fatalf("Failed to read CSV: %v", err)
	}

	db, err := store.Open(root.ResolveStorePath())
	if err != nil {
		root.Log.Fatalf("Failed to open store: %v", err)
	}
	defer db.Close()

	inserted, skipped, err := db.InsertTransactions(rows, filepath.Base(input))
	if err != nil {
		root.Log.Fatalf("Failed to insert transactions: %v", err)
	}

	root.Log.WithFields(logrus.Fields{
		"inserted": inserted,
		"skipped":  skipped,
	}).Info("Import finished")
}
