package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jmoreno/gastos-csv/internal/clserror"
	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
)

func TestLookup(t *testing.T) {
	c := New(map[string]models.Category{
		"MERCADONA": {Cat1: "Alimentación", Cat2: "Supermercado"},
	}, logging.NewMockLogger())

	cat, ok := c.Lookup("MERCADONA")
	require.True(t, ok)
	assert.Equal(t, "Alimentación", cat.Cat1)
	assert.Equal(t, "Supermercado", cat.Cat2)

	// Exact-string and case-sensitive: normalization is the extractor's job.
	_, ok = c.Lookup("Mercadona")
	assert.False(t, ok)

	_, ok = c.Lookup("LIDL")
	assert.False(t, ok)
}

func TestReplace_WholeEntry(t *testing.T) {
	c := New(map[string]models.Category{
		"AMAZON": {Cat1: "Compras", Cat2: "Online"},
	}, logging.NewMockLogger())

	c.Replace("AMAZON", models.Category{Cat1: "Suscripciones"})

	cat, ok := c.Lookup("AMAZON")
	require.True(t, ok)
	assert.Equal(t, "Suscripciones", cat.Cat1)
	assert.Empty(t, cat.Cat2, "entries are replaced wholesale, not merged")
}

func TestShouldOverwrite(t *testing.T) {
	tests := []struct {
		name     string
		existing models.Category
		want     bool
	}{
		{"empty category", models.Category{}, true},
		{"catch-all category", models.Category{Cat1: models.Cat1CatchAll}, true},
		{"unclassified category", models.Category{Cat1: models.Cat1Unclassified}, true},
		{"specific category is protected", models.Category{Cat1: "Alimentación", Cat2: "Supermercado"}, false},
		{"specific cat1 without cat2 is protected", models.Category{Cat1: "Salud"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldOverwrite(tt.existing))
		})
	}
}

func TestStore_LoadSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "merchants.yaml")

	content := []byte(`merchants:
  MERCADONA:
    cat1: Alimentación
    cat2: Supermercado
  RENFE:
    cat1: Transporte
    cat2: Tren
`)
	require.NoError(t, os.WriteFile(file, content, 0o644))

	s := NewStore(file, logging.NewMockLogger())
	c, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	cat, ok := c.Lookup("RENFE")
	require.True(t, ok)
	assert.Equal(t, "Transporte", cat.Cat1)

	c.Replace("LIDL", models.Category{Cat1: "Alimentación", Cat2: "Supermercado"})
	require.NoError(t, s.Save(c))

	reloaded, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Len())
}

func TestStore_MissingFileIsReferenceDataError(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope.yaml"), logging.NewMockLogger())

	_, err := s.Load()
	require.Error(t, err)

	var refErr *clserror.ReferenceDataError
	assert.ErrorAs(t, err, &refErr)
}

func TestStore_SaveWithoutChangesIsNoOp(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "merchants.yaml")
	require.NoError(t, os.WriteFile(file, []byte("merchants: {}\n"), 0o644))

	s := NewStore(file, logging.NewMockLogger())
	c, err := s.Load()
	require.NoError(t, err)

	info, err := os.Stat(file)
	require.NoError(t, err)
	before := info.ModTime()

	require.NoError(t, s.Save(c))

	info, err = os.Stat(file)
	require.NoError(t, err)
	assert.Equal(t, before, info.ModTime())
}
