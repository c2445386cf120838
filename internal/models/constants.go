package models

// Transaction kinds as stored in the ledger.
const (
	KindExpense      = "GASTO"
	KindIncome       = "INGRESO"
	KindTransfer     = "TRASPASO"
	KindInvestment   = "INVERSION"
	KindUnclassified = "SIN_CLASIFICAR"
)

// Well-known taxonomy values.
const (
	Cat1Unclassified = "SIN_CLASIFICAR"
	Cat1Internal     = "Interna"
	Cat1CatchAll     = "Otros"
)

// Banks with compiled-in extraction strategies.
const (
	BankOpenbank   = "Openbank"
	BankSantander  = "Santander"
	BankRevolut    = "Revolut"
	BankMediolanum = "Mediolanum"
	BankAbanca     = "Abanca"
)

// Cascade layers, used as provenance on classification results.
const (
	LayerExactMatch     = 1
	LayerMerchantLookup = 2
	LayerTransfer       = 3
	LayerTokenRules     = 4
	LayerUnclassified   = 5
)
