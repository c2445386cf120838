// Package pipeline wires the full classification run: load the store
// snapshot, resolve duplicates, run the cascade over each surviving record
// and write the assignments back in one batch.
package pipeline

import (
	"jmoreno/gastos-csv/internal/catalog"
	"jmoreno/gastos-csv/internal/classifier"
	"jmoreno/gastos-csv/internal/dedup"
	"jmoreno/gastos-csv/internal/extractor"
	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/matcher"
	"jmoreno/gastos-csv/internal/models"
	"jmoreno/gastos-csv/internal/report"
	"jmoreno/gastos-csv/internal/store"
)

// Options configures one pipeline run.
type Options struct {
	CatalogFile   string
	BanksFile     string
	RulesFile     string
	ToleranceDays int

	// SkipDedup leaves duplicate groups untouched.
	SkipDedup bool
	// OnlyUnclassified restricts the cascade to records without a final
	// kind; the default reclassifies everything, which is safe because
	// identical assignments never touch the store.
	OnlyUnclassified bool
	// DryRun computes everything but writes nothing back.
	DryRun bool

	Logger logging.Logger
}

// Outcome reports what one run did.
type Outcome struct {
	Summary    *report.Summary
	Duplicates dedup.Resolution
	Updated    int
}

// Run executes the full pipeline. A missing merchant catalog aborts the run
// before anything is touched.
func Run(db *store.DB, opts Options) (*Outcome, error) {
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

	rules, err := classifier.LoadRuleSet(opts.RulesFile)
	if err != nil {
		return nil, err
	}

	verified, err := db.LoadVerified()
	if err != nil {
		return nil, err
	}

	txs, err := db.LoadTransactions()
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{Summary: report.NewSummary()}

	// Duplicate resolution runs as a pre-pass over the full record set so
	// the matcher never sees a record and its import-twin as a fake
	// transfer pair.
	pool := txs
	if !opts.SkipDedup {
		outcome.Duplicates = dedup.New(logger).Resolve(txs)
		if len(outcome.Duplicates.Discard) > 0 {
			if !opts.DryRun {
				if err := db.DeleteTransactions(outcome.Duplicates.Discard); err != nil {
					return nil, err
				}
			}
			pool = survivors(txs, outcome.Duplicates.Discard)
			logger.WithField("discarded", len(outcome.Duplicates.Discard)).Info("Removed duplicate records")
		}
	}

	cascade := classifier.New(classifier.Options{
		Exact:     verified,
		Extractor: extractor.New(strategies, logger),
		Catalog:   cat,
		Finder:    matcher.New(opts.ToleranceDays, logger),
		Pool:      pool,
		Rules:     rules,
		Logger:    logger,
	})

	var updates []*models.Transaction
	for _, tx := range pool {
		if opts.OnlyUnclassified && tx.IsClassified() {
			continue
		}

		result := cascade.ClassifyTransaction(tx)
		outcome.Summary.AddResult(result.Kind, result.Cat1, result.Layer)

		tx.Kind = result.Kind
		tx.Cat1 = result.Cat1
		tx.Cat2 = result.Cat2
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
		logging.Field{Key: "run_id", Value: outcome.Summary.RunID},
		logging.Field{Key: "classified", Value: outcome.Summary.Total},
		logging.Field{Key: "updated", Value: outcome.Updated},
	).Info("Classification run complete")

	return outcome, nil
}

func survivors(txs []*models.Transaction, discard []int64) []*models.Transaction {
	discarded := make(map[int64]struct{}, len(discard))
	for _, id := range discard {
		discarded[id] = struct{}{}
	}

	kept := make([]*models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if _, gone := discarded[tx.ID]; !gone {
			kept = append(kept, tx)
		}
	}
	return kept
}
