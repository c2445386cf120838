// Package dedup collapses near-identical records observed from multiple
// import sources into one canonical record per group. Resolution is a pure,
// deterministic function of the input: re-running it on its own output
// discards nothing further.
package dedup

import (
	"regexp"
	"strings"

	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
)

// Generic description prefixes some imports prepend; their presence marks
// the less informative member of a duplicate group.
const (
	genericOtherPrefix    = "Otros "
	genericTransferPrefix = "Transferencia "
)

// maskedCardMarker matches the masked card suffix newer exports append,
// e.g. "(XXXX1234)". Its presence indicates the more complete import.
var maskedCardMarker = regexp.MustCompile(`X{4}\d{4}`)

// GroupKey identifies records that describe the same ledger entry.
type GroupKey struct {
	Date    string
	AbsAmt  string
	Bank    string
	Account string
}

// Group is an ephemeral set of transactions sharing a GroupKey, in input
// order.
type Group struct {
	Key     GroupKey
	Members []*models.Transaction
}

// Resolution is the outcome of one run: ids to keep and ids to discard.
type Resolution struct {
	Keep    []int64
	Discard []int64
}

// Resolver selects one canonical survivor per duplicate group.
type Resolver struct {
	logger logging.Logger
}

// New creates a Resolver.
func New(logger logging.Logger) *Resolver {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Resolver{logger: logger}
}

// Resolve groups transactions by (date, |amount|, bank, account) and picks
// the highest-scoring member of each group as the canonical record. Ties go
// to the member seen first in the input, so the outcome is deterministic.
// Groups of size one are untouched.
func (r *Resolver) Resolve(txs []*models.Transaction) Resolution {
	groups := groupByIdentity(txs)

	var res Resolution
	for _, g := range groups {
		if len(g.Members) == 1 {
			res.Keep = append(res.Keep, g.Members[0].ID)
			continue
		}

		survivor := pickSurvivor(g.Members)
		res.Keep = append(res.Keep, survivor.ID)
		for _, m := range g.Members {
			if m != survivor {
				res.Discard = append(res.Discard, m.ID)
			}
		}

		r.logger.WithFields(
			logging.Field{Key: "date", Value: g.Key.Date},
			logging.Field{Key: "amount", Value: g.Key.AbsAmt},
			logging.Field{Key: "group_size", Value: len(g.Members)},
		).Debug("Resolved duplicate group")
	}

	return res
}

// groupByIdentity buckets transactions preserving both first-seen group
// order and input order within each group.
func groupByIdentity(txs []*models.Transaction) []Group {
	index := make(map[GroupKey]int)
	var groups []Group

	for _, tx := range txs {
		key := GroupKey{
			Date:    tx.Date,
			AbsAmt:  tx.Amount.Abs().StringFixed(2),
			Bank:    tx.Bank,
			Account: tx.Account,
		}
		i, ok := index[key]
		if !ok {
			index[key] = len(groups)
			groups = append(groups, Group{Key: key})
			i = len(groups) - 1
		}
		groups[i].Members = append(groups[i].Members, tx)
	}

	return groups
}

// pickSurvivor returns the maximum-score member; the first member wins ties.
func pickSurvivor(members []*models.Transaction) *models.Transaction {
	best := members[0]
	bestScore := Score(best.Description)
	for _, m := range members[1:] {
		if s := Score(m.Description); s > bestScore {
			best = m
			bestScore = s
		}
	}
	return best
}

// Score rates how informative a description is. Specific descriptions beat
// generic import prefixes, the masked-card marker signals the more complete
// export, and excessive verbosity costs a little.
func Score(description string) int {
	score := 0
	if !strings.HasPrefix(description, genericOtherPrefix) {
		score += 10
	}
	if !strings.HasPrefix(description, genericTransferPrefix) {
		score += 10
	}
	if maskedCardMarker.MatchString(description) {
		score += 5
	}
	score -= len(description) / 100
	return score
}
