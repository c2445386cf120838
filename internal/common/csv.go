// Package common provides shared file helpers: CSV import/export of
// transaction rows and config file resolution.
package common

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
)

var log = logging.GetLogger()

// Delimiter is the field separator used for CSV import and export.
var Delimiter rune = ','

// SetLogger allows setting a configured logger.
func SetLogger(logger logging.Logger) {
	if logger != nil {
		log = logger
	}
}

// SetDelimiter configures the CSV delimiter for both reading and writing.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// ReadTransactionsCSV reads transaction rows from a CSV file. Identity
// hashes are computed on the way in so the rows are ready for an idempotent
// store insert.
func ReadTransactionsCSV(filePath string) ([]*models.Transaction, error) {
	log.WithField("file", filePath).Info("Reading CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvReader := csv.NewReader(file)
	csvReader.Comma = Delimiter

	var rows []*models.Transaction
	if err := gocsv.UnmarshalCSV(csvReader, &rows); err != nil {
		return nil, fmt.Errorf("error parsing CSV file: %w", err)
	}

	for _, row := range rows {
		row.OriginFile = filepath.Base(filePath)
		row.Hash = row.IdentityHash()
	}

	log.WithField("count", len(rows)).Info("Successfully read CSV data")
	return rows, nil
}

// WriteTransactionsCSV writes transaction rows to a CSV file, creating the
// parent directory when needed.
func WriteTransactionsCSV(txs []*models.Transaction, filePath string) error {
	if txs == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "count", Value: len(txs)},
		logging.Field{Key: "delimiter", Value: string(Delimiter)},
	).Info("Writing transactions to CSV file")

	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(&txs, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	return nil
}
