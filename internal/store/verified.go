package store

import (
	"jmoreno/gastos-csv/internal/classifier"
	"jmoreno/gastos-csv/internal/clserror"
)

// LoadVerified loads the curated table of verified classifications consulted
// by the cascade's exact-match layer.
func (db *DB) LoadVerified() (classifier.ExactTable, error) {
	rows, err := db.Query(`
		SELECT description, bank, sign, kind, cat1, cat2
		FROM verified_classifications
	`)
	if err != nil {
		return nil, &clserror.StoreError{Op: "load verified", Err: err}
	}
	defer rows.Close()

	table := make(classifier.ExactTable)
	for rows.Next() {
		var key classifier.ExactKey
		var entry classifier.ExactEntry
		if err := rows.Scan(&key.Description, &key.Bank, &key.Sign,
			&entry.Kind, &entry.Cat1, &entry.Cat2); err != nil {
			return nil, &clserror.StoreError{Op: "scan verified", Err: err}
		}
		table[key] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, &clserror.StoreError{Op: "load verified", Err: err}
	}
	return table, nil
}

// SaveVerified records a manually confirmed classification so layer 1 can
// reproduce it deterministically on future runs.
func (db *DB) SaveVerified(key classifier.ExactKey, entry classifier.ExactEntry) error {
	_, err := db.Exec(`
		INSERT INTO verified_classifications (description, bank, sign, kind, cat1, cat2)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(description, bank, sign) DO UPDATE SET
			kind = excluded.kind, cat1 = excluded.cat1, cat2 = excluded.cat2
	`, key.Description, key.Bank, key.Sign, entry.Kind, entry.Cat1, entry.Cat2)
	if err != nil {
		return &clserror.StoreError{Op: "save verified", Err: err}
	}
	return nil
}
