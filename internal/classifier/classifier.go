// Package classifier implements the layered classification cascade. Five
// ordered layers are attempted in turn (exact match, merchant lookup,
// transfer detection, token heuristics, unclassified fallback) and the
// first match wins. The cascade is a pure function of its inputs and the
// reference data loaded at construction, so identical calls always return
// identical results.
package classifier

import (
	"jmoreno/gastos-csv/internal/catalog"
	"jmoreno/gastos-csv/internal/extractor"
	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/matcher"
	"jmoreno/gastos-csv/internal/models"
)

// Cascade orchestrates the ordered classification layers.
type Cascade struct {
	layers []Layer
	logger logging.Logger
}

// Options collects the collaborators of a Cascade. Zero-value fields are
// allowed: a missing exact table just means layer 1 never matches, a nil
// finder means layer 3 relies on vocabulary alone.
type Options struct {
	Exact     ExactTable
	Extractor *extractor.Extractor
	Catalog   *catalog.Catalog
	Finder    matcher.Finder
	Pool      []*models.Transaction
	Rules     RuleSet
	Logger    logging.Logger
}

// New builds a Cascade. The catalog is required: classifying without it
// would silently push everything to the fallback layer (see clserror
// ReferenceDataError at load time).
func New(opts Options) *Cascade {
	logger := opts.Logger
	if logger == nil {
		logger = logging.GetLogger()
	}

	ext := opts.Extractor
	if ext == nil {
		ext = extractor.NewDefault(logger)
	}

	cat := opts.Catalog
	if cat == nil {
		cat = catalog.New(nil, logger)
	}

	return &Cascade{
		logger: logger,
		layers: []Layer{
			&exactLayer{table: opts.Exact},
			&merchantLayer{extractor: ext, catalog: cat},
			&transferLayer{rules: opts.Rules.Transfers, finder: opts.Finder, pool: opts.Pool},
			&tokenLayer{rules: opts.Rules.Tokens},
		},
	}
}

// Classify runs the cascade for a bare description. This is the single
// entry point external callers depend on; it never fails on malformed
// input.
func (c *Cascade) Classify(description, bank, amount string) Result {
	return c.run(Input{Description: description, Bank: bank, Amount: amount})
}

// ClassifyTransaction runs the cascade for a pool member. Transfer
// evaluation is always requested here: a pool record with a counterpart on
// another bank is an internal move even when its description carries no
// transfer vocabulary.
func (c *Cascade) ClassifyTransaction(tx *models.Transaction) Result {
	return c.run(Input{
		Description:   tx.Description,
		Bank:          tx.Bank,
		Amount:        tx.Amount.String(),
		Tx:            tx,
		ForceTransfer: true,
	})
}

func (c *Cascade) run(in Input) Result {
	for _, layer := range c.layers {
		result, ok := layer.Classify(in)
		if !ok {
			continue
		}
		c.logger.WithFields(
			logging.Field{Key: "layer", Value: layer.Name()},
			logging.Field{Key: "cat1", Value: result.Cat1},
		).Debug("Layer matched")
		return result
	}
	return Unclassified()
}
