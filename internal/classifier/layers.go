package classifier

import (
	"strings"

	"jmoreno/gastos-csv/internal/catalog"
	"jmoreno/gastos-csv/internal/extractor"
	"jmoreno/gastos-csv/internal/matcher"
	"jmoreno/gastos-csv/internal/models"
)

// merchantLayer is layer 2: extract a merchant token, look it up in the
// catalog, and derive the kind from the amount sign.
type merchantLayer struct {
	extractor *extractor.Extractor
	catalog   *catalog.Catalog
}

func (l *merchantLayer) Name() string { return "MerchantLookup" }

func (l *merchantLayer) Classify(in Input) (Result, bool) {
	token, ok := l.extractor.Extract(in.Description, in.Bank)
	if !ok {
		return Result{}, false
	}

	cat, ok := l.catalog.Lookup(token)
	if !ok {
		return Result{}, false
	}

	kind := models.KindExpense
	if sign, known := models.AmountSign(in.Amount); known && sign > 0 {
		kind = models.KindIncome
	}

	return Result{Kind: kind, Cat1: cat.Cat1, Cat2: cat.Cat2, Layer: models.LayerMerchantLookup}, true
}

// transferLayer is layer 3: transfer vocabulary plus counterpart detection.
type transferLayer struct {
	rules  []TransferRule
	finder matcher.Finder
	pool   []*models.Transaction
}

func (l *transferLayer) Name() string { return "Transfer" }

func (l *transferLayer) Classify(in Input) (Result, bool) {
	rule, hasVocab := l.matchVocabulary(in.Description)
	if !hasVocab && !in.ForceTransfer {
		return Result{}, false
	}

	// A found counterpart is proof of an internal move. No counterpart is a
	// valid terminal state: the vocabulary still identifies the transaction
	// as a transfer, scoped to the external category for that vocabulary.
	if l.finder != nil && in.Tx != nil {
		if other := l.finder.FindCounterpart(in.Tx, l.pool); other != nil {
			return Result{
				Kind:  models.KindTransfer,
				Cat1:  models.Cat1Internal,
				Layer: models.LayerTransfer,
			}, true
		}
	}

	if !hasVocab {
		// Forced evaluation with no counterpart and no vocabulary: nothing
		// to say, fall through to the next layer.
		return Result{}, false
	}

	return Result{
		Kind:  models.KindTransfer,
		Cat1:  rule.Cat1,
		Cat2:  rule.Cat2,
		Layer: models.LayerTransfer,
	}, true
}

func (l *transferLayer) matchVocabulary(description string) (TransferRule, bool) {
	desc := strings.ToUpper(description)
	for _, rule := range l.rules {
		if strings.Contains(desc, strings.ToUpper(rule.Keyword)) {
			return rule, true
		}
	}
	return TransferRule{}, false
}

// tokenLayer is layer 4: ordered keyword-to-category heuristics with
// sign-aware kind derivation.
type tokenLayer struct {
	rules []TokenRule
}

func (l *tokenLayer) Name() string { return "TokenRules" }

func (l *tokenLayer) Classify(in Input) (Result, bool) {
	desc := strings.ToUpper(in.Description)

	// Longest keyword wins; equal lengths keep declaration order.
	var best *TokenRule
	for i := range l.rules {
		keyword := strings.ToUpper(l.rules[i].Keyword)
		if !strings.Contains(desc, keyword) {
			continue
		}
		if best == nil || len(keyword) > len(strings.ToUpper(best.Keyword)) {
			best = &l.rules[i]
		}
	}
	if best == nil {
		return Result{}, false
	}

	sign, signKnown := models.AmountSign(in.Amount)

	kind := best.Kind
	if kind == "" {
		kind = models.KindExpense
		if signKnown && sign > 0 {
			kind = models.KindIncome
		}
	}

	// A positive amount with refund vocabulary on an expense-bearing
	// category reduces a prior expense; it is not new income.
	if kind == models.KindIncome && best.Kind == "" && isRefund(desc) {
		kind = models.KindExpense
	}

	return Result{Kind: kind, Cat1: best.Cat1, Cat2: best.Cat2, Layer: models.LayerTokenRules}, true
}

func isRefund(upperDescription string) bool {
	for _, kw := range refundKeywords {
		if strings.Contains(upperDescription, kw) {
			return true
		}
	}
	return false
}
