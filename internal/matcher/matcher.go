// Package matcher finds the opposite leg of an internal transfer: the
// opposite-sign, equal-magnitude transaction recorded by another bank within
// a small date window.
package matcher

import (
	"time"

	"github.com/shopspring/decimal"

	"jmoreno/gastos-csv/internal/dateutils"
	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
)

// DefaultToleranceDays absorbs the processing-delay skew between two banks
// recording the same transfer on different calendar days.
const DefaultToleranceDays = 3

// amountResidualCap is the maximum |a.Amount + b.Amount| for two
// transactions to count as the same money moving.
var amountResidualCap = decimal.RequireFromString("0.01")

// Candidate is the ephemeral result of examining one pool member.
type Candidate struct {
	Tx          *models.Transaction
	DayDistance int
	Residual    decimal.Decimal
}

// Finder locates the counterpart of a transaction in a candidate pool. The
// scan-based implementation below is O(n) per call; an index-backed one can
// replace it without touching call sites as long as it keeps the tolerance
// and tie-break semantics.
type Finder interface {
	FindCounterpart(tx *models.Transaction, pool []*models.Transaction) *models.Transaction
}

// ScanMatcher is the full-scan Finder. The pool must be a stable snapshot
// for the duration of a call.
type ScanMatcher struct {
	ToleranceDays int
	logger        logging.Logger
}

// New creates a ScanMatcher. A negative tolerance falls back to the default.
func New(toleranceDays int, logger logging.Logger) *ScanMatcher {
	if toleranceDays < 0 {
		toleranceDays = DefaultToleranceDays
	}
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &ScanMatcher{ToleranceDays: toleranceDays, logger: logger}
}

// FindCounterpart scans the pool for the best opposite-sign match of tx.
//
// A pool member qualifies when it is not tx itself, was recorded by a
// different bank, its date parses and lies within the tolerance window, and
// the two amounts cancel out to within a cent. Among qualifying candidates
// the smallest day distance wins; ties keep the candidate encountered first
// in pool order, so the result is deterministic. Returns nil when nothing
// qualifies; that is an expected outcome, not an error.
func (m *ScanMatcher) FindCounterpart(tx *models.Transaction, pool []*models.Transaction) *models.Transaction {
	txDate, err := dateutils.ParseDate(tx.Date)
	if err != nil {
		// Unparseable dates are unmatchable, never an error.
		return nil
	}

	var best *Candidate
	for _, other := range pool {
		c, ok := m.examine(tx, txDate, other)
		if !ok {
			continue
		}
		if best == nil || c.DayDistance < best.DayDistance {
			best = &c
		}
	}

	if best == nil {
		return nil
	}
	return best.Tx
}

func (m *ScanMatcher) examine(tx *models.Transaction, txDate time.Time, other *models.Transaction) (Candidate, bool) {
	if other == tx {
		return Candidate{}, false
	}
	// A transfer must cross providers; same-bank inverted pairs are refunds
	// or corrections, not transfers.
	if other.Bank == tx.Bank {
		return Candidate{}, false
	}

	otherDate, err := dateutils.ParseDate(other.Date)
	if err != nil {
		return Candidate{}, false
	}

	dist := dateutils.DaysBetween(txDate, otherDate)
	if dist > m.ToleranceDays {
		return Candidate{}, false
	}

	residual := tx.Amount.Add(other.Amount).Abs()
	if residual.Cmp(amountResidualCap) > 0 {
		return Candidate{}, false
	}

	return Candidate{Tx: other, DayDistance: dist, Residual: residual}, true
}
