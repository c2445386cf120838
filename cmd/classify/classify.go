// Package classify exposes the cascade for a single description, mainly for
// inspecting why a record is classified the way it is.
package classify

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jmoreno/gastos-csv/cmd/root"
	"jmoreno/gastos-csv/internal/catalog"
	"jmoreno/gastos-csv/internal/classifier"
	"jmoreno/gastos-csv/internal/extractor"
	"jmoreno/gastos-csv/internal/matcher"
	"jmoreno/gastos-csv/internal/store"
)

var (
	description string
	bank        string
	amount      string
)

// Cmd represents the classify command.
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single transaction description",
	Long: `Classify runs the full cascade for one description and prints the
resulting kind, category and the layer that produced the assignment.`,
	Run: classifyFunc,
}

func init() {
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Transaction description")
	Cmd.Flags().StringVarP(&bank, "bank", "b", "", "Bank the record came from")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "", "Signed amount (optional)")
	_ = Cmd.MarkFlagRequired("description")
	_ = Cmd.MarkFlagRequired("bank")
}

func classifyFunc(cmd *cobra.Command, args []string) {
	cat, err := catalog.NewStore(root.Cfg.Catalog.File, root.Logger).Load()
	if err != nil {
		root.Log.Fatalf("Cannot classify without the merchant catalog: %v", err)
	}

	strategies, err := extractor.LoadStrategies(root.Cfg.Rules.BanksFile)
	if err != nil {
		root.Log.Fatalf("Failed to load bank strategies: %v", err)
	}

	rules, err := classifier.LoadRuleSet(root.Cfg.Rules.File)
	if err != nil {
		root.Log.Fatalf("Failed to load rules: %v", err)
	}

	opts := classifier.Options{
		Extractor: extractor.New(strategies, root.Logger),
		Catalog:   cat,
		Rules:     rules,
		Logger:    root.Logger,
	}

	// With a store at hand, layer 1 and counterpart matching work too.
	if db, err := store.Open(root.ResolveStorePath()); err == nil {
		defer db.Close()
		if verified, err := db.LoadVerified(); err == nil {
			opts.Exact = verified
		}
		if pool, err := db.LoadTransactions(); err == nil {
			opts.Pool = pool
			opts.Finder = matcher.New(root.Cfg.Matcher.ToleranceDays, root.Logger)
		}
	}

	result := classifier.New(opts).Classify(description, bank, amount)

	root.Log.WithFields(logrus.Fields{
		"kind":  result.Kind,
		"cat1":  result.Cat1,
		"cat2":  result.Cat2,
		"layer": result.Layer,
	}).Info("Classification result")
}
