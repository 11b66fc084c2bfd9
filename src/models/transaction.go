// backend/src/models/transaction.go
package models

// Transaction types. Every committed transaction is one or the other and the
// sign of Amount always agrees with the type (negative for expense).
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Account is one entry of the chart of accounts ("plano de contas").
// The ID is the reconciliation key for imported transactions.
type Account struct {
	ID          string `json:"ID_Conta"`
	Nature      string `json:"Natureza"` // "Receita" / "Despesa" free text
	Type        string `json:"Tipo"`
	Category    string `json:"Categoria"`
	SubCategory string `json:"SubCategoria"`
	Name        string `json:"Conta"`
}

// Transaction is a committed financial record.
//
// The Origin* fields carry the raw source-row values for traceability back to
// the imported file; they are empty for manually created transactions.
type Transaction struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
	Amount      float64 `json:"amount"` // signed: negative when Type == expense
	Type        string  `json:"type"`   // "income" or "expense"
	Category    string  `json:"category"`

	// Campos de origem preservados para rastreabilidade da importação.
	OriginAccountID   string `json:"Id_Item,omitempty"`
	OriginNature      string `json:"Natureza,omitempty"`
	OriginType        string `json:"Tipo,omitempty"`
	OriginCategory    string `json:"Categoria,omitempty"`
	OriginSubCategory string `json:"SubCategoria,omitempty"`
	OriginOperation   string `json:"Operacao,omitempty"`
	OriginDestination string `json:"OrigemDestino,omitempty"`
	OriginItem        string `json:"Item,omitempty"`
	OriginDate        string `json:"Data,omitempty"`
	OriginAmount      string `json:"Valor,omitempty"`
}

// ImportDiagnostic describes one rejected row of a submission.
// Line is 1-based and counts the header row, so the first data row is line 2.
type ImportDiagnostic struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
	RawRow string `json:"raw_row,omitempty"`
}
