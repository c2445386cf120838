package pipeline

import (
	"jmoreno/gastos-csv/internal/catalog"
	"jmoreno/gastos-csv/internal/extractor"
	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
	"jmoreno/gastos-csv/internal/store"
)

// Enrich walks the stored transactions and re-applies the merchant catalog.
// Only empty, unclassified or catch-all categories are overwritten: a bulk
// pass carries less confidence than whatever assigned the specific category
// already there.
func Enrich(db *store.DB, opts Options) (*Outcome, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}

	cat, err := catalog.NewStore(opts.CatalogFile, logger).Load()
	if err != nil {
		return nil, err
	}

	strategies, err := extractor.LoadStrategies(opts.BanksFile)
	if err != nil {
		return nil, err
	}
	ext := extractor.New(strategies, logger)

	txs, err := db.LoadTransactions()
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{}

	var updates []*models.Transaction
	for _, tx := range txs {
		token, ok := ext.Extract(tx.Description, tx.Bank)
		if !ok {
			continue
		}
		entry, ok := cat.Lookup(token)
		if !ok {
			continue
		}
		if !catalog.ShouldOverwrite(models.Category{Cat1: tx.Cat1, Cat2: tx.Cat2}) {
			continue
		}

		tx.Cat1 = entry.Cat1
		tx.Cat2 = entry.Cat2
		if !tx.IsClassified() {
			tx.Kind = models.KindExpense
			if tx.Amount.Sign() > 0 {
				tx.Kind = models.KindIncome
			}
		}
		updates = append(updates, tx)
	}

	if !opts.DryRun {
		changed, err := db.UpdateClassifications(updates)
		if err != nil {
			return nil, err
		}
		outcome.Updated = changed
	}

	logger.WithFields(
		logging.Field{Key: "candidates", Value: len(updates)},
		logging.Field{Key: "updated", Value: outcome.Updated},
	).Info("Enrichment pass complete")

	return outcome, nil
}
