// backend/src/models/raw.go
package models

// RawTransactionRow holds the direct string values of one tokenized data row
// of a transactions file, already placed under their canonical fields by the
// header mapper. Fields the file did not carry stay empty.
type RawTransactionRow struct {
	AccountID   string // Id_Item
	Nature      string // Natureza
	Type        string // Tipo
	Category    string // Categoria
	SubCategory string // SubCategoria
	Operation   string // Operação
	OriginDest  string // Origem|Destino
	Item        string // Item (description)
	Date        string // Data
	Amount      string // Valor

	// Legacy column set (date/description/amount/type/category), accepted
	// interchangeably with the Portuguese headers.
	LegacyDate        string
	LegacyDescription string
	LegacyAmount      string
	LegacyType        string
	LegacyCategory    string

	RawLine string // original line, kept for diagnostics
}

// RawAccountRow holds the direct string values of one tokenized data row of an
// account-plan file.
type RawAccountRow struct {
	ID          string
	Nature      string
	Type        string
	Category    string
	SubCategory string
	Name        string

	RawLine string
}
