package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jmoreno/gastos-csv/internal/logging"
	"jmoreno/gastos-csv/internal/models"
)

func TestExtract_DefaultStrategies(t *testing.T) {
	ext := NewDefault(logging.NewMockLogger())

	tests := []struct {
		name        string
		description string
		bank        string
		wantToken   string
		wantFound   bool
	}{
		{
			name:        "openbank card template",
			description: "COMPRA EN MERCADONA, CON LA TARJETA 4021XXXXXXXX1234",
			bank:        models.BankOpenbank,
			wantToken:   "MERCADONA",
			wantFound:   true,
		},
		{
			name:        "openbank pattern is case insensitive",
			description: "Compra en Farmacia Lopez, con la tarjeta",
			bank:        models.BankOpenbank,
			wantToken:   "FARMACIA LOPEZ",
			wantFound:   true,
		},
		{
			name:        "openbank pattern miss yields nothing",
			description: "TRANSFERENCIA RECIBIDA DE JUAN",
			bank:        models.BankOpenbank,
			wantFound:   false,
		},
		{
			name:        "santander pattern miss falls back to full description",
			description: "RECIBO LUZ IBERDROLA",
			bank:        models.BankSantander,
			wantToken:   "RECIBO LUZ IBERDROLA",
			wantFound:   true,
		},
		{
			name:        "revolut description is the merchant",
			description: "Carrefour Express",
			bank:        models.BankRevolut,
			wantToken:   "CARREFOUR EXPRESS",
			wantFound:   true,
		},
		{
			name:        "unknown bank yields nothing",
			description: "COMPRA EN MERCADONA, CON LA TARJETA",
			bank:        "Caixa",
			wantFound:   false,
		},
		{
			name:        "empty description yields nothing even verbatim",
			description: "   ",
			bank:        models.BankRevolut,
			wantFound:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, found := ext.Extract(tt.description, tt.bank)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantToken, token)
			}
		})
	}
}

func TestExtract_NonFallbackBankStaysEmpty(t *testing.T) {
	ext := New(map[string]Strategy{
		"StrictBank": {Mode: ModePattern, Pattern: `PAGO EN (.+?);`},
	}, logging.NewMockLogger())

	_, found := ext.Extract("something else entirely", "StrictBank")
	assert.False(t, found)
}

func TestExtract_FallbackEligibleBank(t *testing.T) {
	ext := New(map[string]Strategy{
		"LooseBank": {Mode: ModePattern, Pattern: `PAGO EN (.+?);`, Fallback: true},
	}, logging.NewMockLogger())

	token, found := ext.Extract("something else entirely", "LooseBank")
	require.True(t, found)
	assert.Equal(t, "SOMETHING ELSE ENTIRELY", token)
}

func TestNew_InvalidPatternDropsBank(t *testing.T) {
	ext := New(map[string]Strategy{
		"BrokenBank": {Mode: ModePattern, Pattern: `([`},
	}, logging.NewMockLogger())

	_, found := ext.Extract("anything", "BrokenBank")
	assert.False(t, found)
}
