package classifier

import "jmoreno/gastos-csv/internal/models"

// Result is the outcome of one cascade run. Layer records which layer
// produced the assignment (1 = exact match, 5 = unclassified fallback) and
// is kept for auditing and accuracy measurement.
type Result struct {
	Kind  string
	Cat1  string
	Cat2  string
	Layer int
}

// Unclassified is the terminal fallback result. It is a valid output, not a
// failure.
func Unclassified() Result {
	return Result{
		Kind:  models.KindUnclassified,
		Cat1:  models.Cat1Unclassified,
		Layer: models.LayerUnclassified,
	}
}

// Input carries everything a layer may consult. Amount stays a raw string:
// malformed amounts only disable sign-dependent rules, they never abort
// classification.
type Input struct {
	Description string
	Bank        string
	Amount      string

	// Tx, when set, is the pool member being classified; it enables
	// counterpart matching by date.
	Tx *models.Transaction

	// ForceTransfer requests transfer evaluation even when the description
	// carries no transfer vocabulary.
	ForceTransfer bool
}

// Layer is one stage of the cascade. Layers are attempted in order; the
// first one to report a match ends the run.
type Layer interface {
	Name() string
	Classify(in Input) (Result, bool)
}
