// Package store persists transactions in SQLite. The pipeline treats it as
// a synchronous resource: read the full set once, compute, write back in one
// all-or-nothing batch.
package store

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"jmoreno/gastos-csv/internal/clserror"
	"jmoreno/gastos-csv/internal/models"
)

//go:embed schema.sql
var schema string

// DB wraps the SQLite connection.
type DB struct {
	*sql.DB
}

// Open opens or creates the database at the given path and applies the
// schema.
func Open(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("execute schema: %w", err)
	}

	return &DB{db}, nil
}

// LoadTransactions returns the full transaction set ordered by id. The
// slice is the stable snapshot the matcher and resolver scan; iteration
// order never changes between runs over the same data.
func (db *DB) LoadTransactions() ([]*models.Transaction, error) {
	rows, err := db.Query(`
		SELECT id, date, amount, description, bank, account, kind, cat1, cat2, origin_file, hash
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, &clserror.StoreError{Op: "load", Err: err}
	}
	defer rows.Close()

	var txs []*models.Transaction
	for rows.Next() {
		var t models.Transaction
		var amount string
		if err := rows.Scan(&t.ID, &t.Date, &amount, &t.Description, &t.Bank, &t.Account,
			&t.Kind, &t.Cat1, &t.Cat2, &t.OriginFile, &t.Hash); err != nil {
			return nil, &clserror.StoreError{Op: "scan", Err: err}
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, &clserror.StoreError{Op: "scan", Err: fmt.Errorf("amount '%s': %w", amount, err)}
		}
		t.Amount = d
		txs = append(txs, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, &clserror.StoreError{Op: "load", Err: err}
	}
	return txs, nil
}

// InsertTransactions inserts rows keyed by identity hash; rows whose hash is
// already present are skipped, which makes statement reloads idempotent.
// Returns the number of inserted and skipped rows.
func (db *DB) InsertTransactions(txs []*models.Transaction, originFile string) (int, int, error) {
	sqlTx, err := db.Begin()
	if err != nil {
		return 0, 0, &clserror.StoreError{Op: "insert", Err: err}
	}
	defer func() { _ = sqlTx.Rollback() }()

	stmt, err := sqlTx.Prepare(`
		INSERT OR IGNORE INTO transactions
			(date, amount, description, bank, account, kind, cat1, cat2, origin_file, hash)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, 0, &clserror.StoreError{Op: "insert", Err: err}
	}
	defer stmt.Close()

	inserted, skipped := 0, 0
	for _, t := range txs {
		hash := t.Hash
		if hash == "" {
			hash = t.IdentityHash()
		}
		res, err := stmt.Exec(t.Date, t.Amount.StringFixed(2), t.Description, t.Bank, t.Account,
			t.Kind, t.Cat1, t.Cat2, originFile, hash)
		if err != nil {
			return 0, 0, &clserror.StoreError{Op: "insert", Err: err}
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, 0, &clserror.StoreError{Op: "insert", Err: err}
		}
		if n > 0 {
			inserted++
		} else {
			skipped++
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, 0, &clserror.StoreError{Op: "insert", Err: err}
	}
	return inserted, skipped, nil
}

// UpdateClassifications writes kind/cat1/cat2 back for the given rows in a
// single transaction. Rows already carrying the same values are left alone,
// so re-applying a correction is a no-op. Returns the number of rows
// actually changed.
func (db *DB) UpdateClassifications(txs []*models.Transaction) (int, error) {
	sqlTx, err := db.Begin()
	if err != nil {
		return 0, &clserror.StoreError{Op: "update", Err: err}
	}
	defer func() { _ = sqlTx.Rollback() }()

	stmt, err := sqlTx.Prepare(`
		UPDATE transactions
		SET kind = ?, cat1 = ?, cat2 = ?
		WHERE id = ? AND (kind != ? OR cat1 != ? OR cat2 != ?)
	`)
	if err != nil {
		return 0, &clserror.StoreError{Op: "update", Err: err}
	}
	defer stmt.Close()

	changed := 0
	for _, t := range txs {
		res, err := stmt.Exec(t.Kind, t.Cat1, t.Cat2, t.ID, t.Kind, t.Cat1, t.Cat2)
		if err != nil {
			return 0, &clserror.StoreError{Op: "update", Err: err}
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, &clserror.StoreError{Op: "update", Err: err}
		}
		changed += int(n)
	}

	if err := sqlTx.Commit(); err != nil {
		return 0, &clserror.StoreError{Op: "update", Err: err}
	}
	return changed, nil
}

// DeleteTransactions removes the given rows in one transaction. Used only
// by the duplicate resolver to drop non-canonical records.
func (db *DB) DeleteTransactions(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	sqlTx, err := db.Begin()
	if err != nil {
		return &clserror.StoreError{Op: "delete", Err: err}
	}
	defer func() { _ = sqlTx.Rollback() }()

	stmt, err := sqlTx.Prepare(`DELETE FROM transactions WHERE id = ?`)
	if err != nil {
		return &clserror.StoreError{Op: "delete", Err: err}
	}
	defer stmt.Close()

	for _, id := range ids {
		if _, err := stmt.Exec(id); err != nil {
			return &clserror.StoreError{Op: "delete", Err: err}
		}
	}

	if err := sqlTx.Commit(); err != nil {
		return &clserror.StoreError{Op: "delete", Err: err}
	}
	return nil
}
