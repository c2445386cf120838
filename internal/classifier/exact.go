package classifier

import (
	"jmoreno/gastos-csv/internal/models"
)

// ExactKey identifies one verified classification. Sign buckets the entry by
// amount sign; 0 means the entry applies regardless of sign.
type ExactKey struct {
	Description string
	Bank        string
	Sign        int
}

// ExactEntry is a previously verified assignment.
type ExactEntry struct {
	Kind string
	Cat1 string
	Cat2 string
}

// ExactTable is the curated table of verified transactions consulted by
// layer 1. It is loaded once per run and read-only afterwards.
type ExactTable map[ExactKey]ExactEntry

// Lookup tries the sign-specific bucket first, then the sign-agnostic one.
func (t ExactTable) Lookup(description, bank string, sign int) (ExactEntry, bool) {
	if e, ok := t[ExactKey{Description: description, Bank: bank, Sign: sign}]; ok {
		return e, true
	}
	e, ok := t[ExactKey{Description: description, Bank: bank}]
	return e, ok
}

// exactLayer is layer 1: deterministic lookup against verified
// classifications, highest confidence.
type exactLayer struct {
	table ExactTable
}

func (l *exactLayer) Name() string { return "ExactMatch" }

func (l *exactLayer) Classify(in Input) (Result, bool) {
	if len(l.table) == 0 {
		return Result{}, false
	}

	sign, _ := models.AmountSign(in.Amount)
	e, ok := l.table.Lookup(in.Description, in.Bank, sign)
	if !ok {
		return Result{}, false
	}

	return Result{Kind: e.Kind, Cat1: e.Cat1, Cat2: e.Cat2, Layer: models.LayerExactMatch}, true
}
