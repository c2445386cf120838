// Package models provides the data structures shared across the application.
package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction represents one ledger entry as read from the store or an
// import file. Amounts are signed: negative is an outflow.
type Transaction struct {
	ID          int64           `csv:"-"`
	Date        string          `csv:"date"`
	Amount      decimal.Decimal `csv:"amount"`
	Description string          `csv:"description"`
	Bank        string          `csv:"bank"`
	Account     string          `csv:"account"`
	Kind        string          `csv:"kind"`
	Cat1        string          `csv:"cat1"`
	Cat2        string          `csv:"cat2"`
	OriginFile  string          `csv:"origin_file"`
	Hash        string          `csv:"-"`
}

// Category is a two-level taxonomy assignment. Cat2 may be empty.
type Category struct {
	Cat1 string `yaml:"cat1"`
	Cat2 string `yaml:"cat2"`
}

// IsZero reports whether no category has been assigned.
func (c Category) IsZero() bool {
	return c.Cat1 == ""
}

// IdentityHash derives the stable identity of a transaction from the fields
// that survive any re-import: date, amount, description and bank. It is used
// to make statement reloads idempotent.
func (t Transaction) IdentityHash() string {
	payload := fmt.Sprintf("%s|%s|%s|%s",
		t.Date, t.Amount.StringFixed(2), t.Description, t.Bank)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}

// IsClassified reports whether the transaction carries a final kind.
func (t Transaction) IsClassified() bool {
	return t.Kind != "" && t.Kind != KindUnclassified
}
