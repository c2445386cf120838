package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"plain decimal", "1234.56", "1234.56", false},
		{"european thousands and comma", "1.234,56", "1234.56", false},
		{"negative european", "-7.200,00", "-7200", false},
		{"currency suffix", "45,90 €", "45.9", false},
		{"surrounding whitespace", "  -12.00 ", "-12", false},
		{"garbage", "??", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"got %s, want %s", got, tt.want)
		})
	}
}

func TestAmountSign(t *testing.T) {
	tests := []struct {
		raw    string
		sign   int
		wantOK bool
	}{
		{"-50.25", -1, true},
		{"2100.00", 1, true},
		{"0.00", 0, true},
		{"not-a-number", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			sign, ok := AmountSign(tt.raw)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.sign, sign)
		})
	}
}

func TestIdentityHash(t *testing.T) {
	base := Transaction{
		Date:        "2024-03-02",
		Amount:      decimal.RequireFromString("-45.00"),
		Description: "COMPRA X",
		Bank:        BankOpenbank,
	}

	same := base
	same.ID = 99
	same.Cat1 = "Compras"
	same.OriginFile = "marzo.csv"
	assert.Equal(t, base.IdentityHash(), same.IdentityHash(),
		"classification and provenance do not change identity")

	// Amount formatting is normalized to two decimals before hashing.
	reformatted := base
	reformatted.Amount = decimal.RequireFromString("-45")
	assert.Equal(t, base.IdentityHash(), reformatted.IdentityHash())

	other := base
	other.Bank = BankSantander
	assert.NotEqual(t, base.IdentityHash(), other.IdentityHash())
}

func TestIsClassified(t *testing.T) {
	assert.False(t, Transaction{}.IsClassified())
	assert.False(t, Transaction{Kind: KindUnclassified}.IsClassified())
	assert.True(t, Transaction{Kind: KindExpense}.IsClassified())
}
