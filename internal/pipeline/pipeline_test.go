package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jmoreno/gastos-csv/internal/clserror"
	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
	"jmoreno/gastos-csv/internal/store"
)

func writeCatalogFile(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "merchants.yaml")
	content := []byte(`merchants:
  MERCADONA:
    cat1: Alimentación
    cat2: Supermercado
`)
	require.NoError(t, os.WriteFile(file, content, 0o644))
	return file
}

func openSeededDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "gastos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	txs := []*models.Transaction{
		{
			Date:        "2024-03-02",
			Amount:      decimal.RequireFromString("-50.25"),
			Description: "COMPRA EN MERCADONA, CON LA TARJETA 4021XXXXXXXX1234",
			Bank:        models.BankOpenbank,
			Account:     "ES01",
		},
		{
			Date:        "2024-04-15",
			Amount:      decimal.RequireFromString("7200.00"),
			Description: "ABONO RECIBIDO",
			Bank:        models.BankOpenbank,
			Account:     "ES01",
		},
		{
			Date:        "2024-04-16",
			Amount:      decimal.RequireFromString("-7200.00"),
			Description: "CARGO POR ORDEN",
			Bank:        models.BankMediolanum,
			Account:     "ES02",
		},
		{
			Date:        "2024-03-09",
			Amount:      decimal.RequireFromString("-45.00"),
			Description: "Otros COMPRA X",
			Bank:        models.BankOpenbank,
			Account:     "ES01",
		},
		{
			Date:        "2024-03-09",
			Amount:      decimal.RequireFromString("-45.00"),
			Description: "COMPRA X (XXXX1234)",
			Bank:        models.BankOpenbank,
			Account:     "ES01",
		},
	}
	_, _, err = db.InsertTransactions(txs, "seed.csv")
	require.NoError(t, err)
	return db
}

func TestRun_FullPass(t *testing.T) {
	db := openSeededDB(t)

	outcome, err := Run(db, Options{
		CatalogFile: writeCatalogFile(t),
		Logger:      logging.NewMockLogger(),
	})
	require.NoError(t, err)

	// One of the two import-twins is discarded before classification.
	assert.Len(t, outcome.Duplicates.Discard, 1)
	assert.Equal(t, 4, outcome.Summary.Total)
	assert.Equal(t, 4, outcome.Updated)

	assert.Equal(t, 1, outcome.Summary.ByLayer[models.LayerMerchantLookup])
	assert.Equal(t, 2, outcome.Summary.ByLayer[models.LayerTransfer])
	assert.Equal(t, 1, outcome.Summary.ByLayer[models.LayerTokenRules])

	txs, err := db.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, txs, 4)

	byDesc := make(map[string]*models.Transaction, len(txs))
	for _, tx := range txs {
		byDesc[tx.Description] = tx
	}

	mercadona := byDesc["COMPRA EN MERCADONA, CON LA TARJETA 4021XXXXXXXX1234"]
	require.NotNil(t, mercadona)
	assert.Equal(t, models.KindExpense, mercadona.Kind)
	assert.Equal(t, "Alimentación", mercadona.Cat1)

	// Both legs of the cross-bank pair land on the internal transfer
	// category even though neither description carries transfer vocabulary.
	for _, desc := range []string{"ABONO RECIBIDO", "CARGO POR ORDEN"} {
		leg := byDesc[desc]
		require.NotNil(t, leg)
		assert.Equal(t, models.KindTransfer, leg.Kind)
		assert.Equal(t, models.Cat1Internal, leg.Cat1)
	}

	// The generic import-twin is gone; the masked-card one survived.
	assert.Nil(t, byDesc["Otros COMPRA X"])
	assert.NotNil(t, byDesc["COMPRA X (XXXX1234)"])
}

func TestRun_SecondPassChangesNothing(t *testing.T) {
	db := openSeededDB(t)
	opts := Options{
		CatalogFile: writeCatalogFile(t),
		Logger:      logging.NewMockLogger(),
	}

	_, err := Run(db, opts)
	require.NoError(t, err)

	second, err := Run(db, opts)
	require.NoError(t, err)

	assert.Empty(t, second.Duplicates.Discard)
	assert.Equal(t, 0, second.Updated, "identical assignments never touch the store")
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	db := openSeededDB(t)

	outcome, err := Run(db, Options{
		CatalogFile: writeCatalogFile(t),
		DryRun:      true,
		Logger:      logging.NewMockLogger(),
	})
	require.NoError(t, err)

	assert.Len(t, outcome.Duplicates.Discard, 1)
	assert.Equal(t, 0, outcome.Updated)

	txs, err := db.LoadTransactions()
	require.NoError(t, err)
	assert.Len(t, txs, 5, "duplicates are reported but not deleted")
	for _, tx := range txs {
		assert.Empty(t, tx.Kind)
	}
}

func TestRun_OnlyUnclassifiedSkipsFinalizedRows(t *testing.T) {
	db := openSeededDB(t)
	opts := Options{
		CatalogFile: writeCatalogFile(t),
		Logger:      logging.NewMockLogger(),
	}

	_, err := Run(db, opts)
	require.NoError(t, err)

	opts.OnlyUnclassified = true
	outcome, err := Run(db, opts)
	require.NoError(t, err)

	assert.Equal(t, 0, outcome.Summary.Total)
	assert.Equal(t, 0, outcome.Updated)
}

func TestRun_MissingCatalogAborts(t *testing.T) {
	db := openSeededDB(t)

	_, err := Run(db, Options{
		CatalogFile: filepath.Join(t.TempDir(), "missing.yaml"),
		Logger:      logging.NewMockLogger(),
	})
	require.Error(t, err)

	var refErr *clserror.ReferenceDataError
	assert.ErrorAs(t, err, &refErr)

	txs, err := db.LoadTransactions()
	require.NoError(t, err)
	assert.Len(t, txs, 5, "nothing is touched when the catalog cannot be loaded")
}

func TestEnrich(t *testing.T) {
	db, err := store.Open(filepath.Join(t.TempDir(), "gastos.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	txs := []*models.Transaction{
		{
			Date:        "2024-03-02",
			Amount:      decimal.RequireFromString("-50.25"),
			Description: "COMPRA EN MERCADONA, CON LA TARJETA",
			Bank:        models.BankOpenbank,
			Account:     "ES01",
		},
		{
			Date:        "2024-03-03",
			Amount:      decimal.RequireFromString("-18.00"),
			Description: "COMPRA EN MERCADONA, CON LA TARJETA 9999",
			Bank:        models.BankOpenbank,
			Account:     "ES01",
			Kind:        models.KindExpense,
			Cat1:        "Regalos",
			Cat2:        "Cumpleaños",
		},
	}
	_, _, err = db.InsertTransactions(txs, "seed.csv")
	require.NoError(t, err)

	outcome, err := Enrich(db, Options{
		CatalogFile: writeCatalogFile(t),
		Logger:      logging.NewMockLogger(),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, outcome.Updated)

	reloaded, err := db.LoadTransactions()
	require.NoError(t, err)
	require.Len(t, reloaded, 2)

	assert.Equal(t, "Alimentación", reloaded[0].Cat1)
	assert.Equal(t, models.KindExpense, reloaded[0].Kind)

	// A specific category already in place is never overwritten by the
	// bulk pass.
	assert.Equal(t, "Regalos", reloaded[1].Cat1)
}
