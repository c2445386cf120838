package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"jmoreno/gastos-csv/internal/common"
	"jmoreno/gastos-csv/internal/models"
)

// TransferRule recognizes transfer vocabulary in a description. Cat1/Cat2 is
// the external category assigned when no counterpart is found (a Bizum to a
// friend is still a transfer, just not an internal one).
type TransferRule struct {
	Keyword string `yaml:"keyword"`
	Cat1    string `yaml:"cat1"`
	Cat2    string `yaml:"cat2,omitempty"`
}

// TokenRule maps a description keyword to a category. Kind, when set,
// overrides the sign-derived kind (salaries are income regardless of
// occasional corrections, investments are neither expense nor income).
type TokenRule struct {
	Keyword string `yaml:"keyword"`
	Cat1    string `yaml:"cat1"`
	Cat2    string `yaml:"cat2,omitempty"`
	Kind    string `yaml:"kind,omitempty"`
}

// RuleSet bundles the vocabulary both rule-based layers consult.
type RuleSet struct {
	Transfers []TransferRule `yaml:"transfers"`
	Tokens    []TokenRule    `yaml:"tokens"`
}

// DefaultRuleSet returns the compiled-in rules so the cascade works with no
// rules file present.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Transfers: []TransferRule{
			{Keyword: "BIZUM", Cat1: "Bizum"},
			{Keyword: "TRASPASO", Cat1: models.Cat1Internal},
			{Keyword: "TRANSFERENCIA", Cat1: "Transferencia"},
		},
		Tokens: []TokenRule{
			{Keyword: "NOMINA", Cat1: "Nómina", Kind: models.KindIncome},
			{Keyword: "NÓMINA", Cat1: "Nómina", Kind: models.KindIncome},
			{Keyword: "SUPERMERCADO", Cat1: "Alimentación", Cat2: "Supermercado"},
			{Keyword: "FARMACIA", Cat1: "Salud", Cat2: "Farmacia"},
			{Keyword: "GASOLINERA", Cat1: "Transporte", Cat2: "Combustible"},
			{Keyword: "REPSOL", Cat1: "Transporte", Cat2: "Combustible"},
			{Keyword: "CEPSA", Cat1: "Transporte", Cat2: "Combustible"},
			{Keyword: "RENFE", Cat1: "Transporte", Cat2: "Tren"},
			{Keyword: "AMAZON", Cat1: "Compras", Cat2: "Online"},
			{Keyword: "NETFLIX", Cat1: "Suscripciones", Cat2: "Streaming"},
			{Keyword: "SPOTIFY", Cat1: "Suscripciones", Cat2: "Streaming"},
			{Keyword: "RESTAURANTE", Cat1: "Restauración", Cat2: "Restaurante"},
			{Keyword: "CAFETERIA", Cat1: "Restauración", Cat2: "Bar"},
			{Keyword: "RETIRADA DE EFECTIVO", Cat1: "Efectivo", Cat2: "Cajero"},
			{Keyword: "CAJERO", Cat1: "Efectivo", Cat2: "Cajero"},
			{Keyword: "RECIBO", Cat1: "Recibos"},
			{Keyword: "ALQUILER", Cat1: "Vivienda", Cat2: "Alquiler"},
			{Keyword: "HIPOTECA", Cat1: "Vivienda", Cat2: "Hipoteca"},
			{Keyword: "FONDO INDEXADO", Cat1: "Inversión", Cat2: "Fondos", Kind: models.KindInvestment},
			{Keyword: "SUSCRIPCION FONDO", Cat1: "Inversión", Cat2: "Fondos", Kind: models.KindInvestment},
			{Keyword: "ETF", Cat1: "Inversión", Cat2: "ETF", Kind: models.KindInvestment},
			{Keyword: "COMPRAS", Cat1: "Compras"},
			{Keyword: "COMPRA", Cat1: "Compras"},
		},
	}
}

// refundKeywords flag descriptions that reverse a prior expense. A positive
// amount carrying one of these reduces an expense rather than being income.
var refundKeywords = []string{"DEVOLUCIÓN", "DEVOLUCION", "REEMBOLSO"}

// rulesConfig is the on-disk shape of the rules file.
type rulesConfig struct {
	Transfers []TransferRule `yaml:"transfers"`
	Tokens    []TokenRule    `yaml:"tokens"`
}

// LoadRuleSet reads a rules file, falling back to the compiled-in defaults
// when it does not exist. A present file replaces the defaults wholesale; a
// partial file keeps the defaults for the section it omits.
func LoadRuleSet(path string) (RuleSet, error) {
	rules := DefaultRuleSet()

	resolved, err := common.FindConfigFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rules, nil
		}
		return RuleSet{}, fmt.Errorf("error resolving rules file: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return RuleSet{}, fmt.Errorf("error reading rules file: %w", err)
	}

	var cfg rulesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return RuleSet{}, fmt.Errorf("error parsing rules file: %w", err)
	}

	if len(cfg.Transfers) > 0 {
		rules.Transfers = cfg.Transfers
	}
	if len(cfg.Tokens) > 0 {
		rules.Tokens = cfg.Tokens
	}

	return rules, nil
}
