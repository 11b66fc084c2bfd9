// backend/src/parsers/headers.go
package parsers

import (
	"fmt"
	"strings"
)

// PlanColumns maps each canonical account-plan field to its column index in
// the header row. Unmatched fields resolve to -1; only ID is mandatory.
type PlanColumns struct {
	ID          int
	Nature      int
	Type        int
	Category    int
	SubCategory int
	Name        int
}

// TransactionColumns maps the canonical transaction fields (and the legacy
// alias set) to column indexes. No field is mandatory here; absent columns
// resolve to -1.
type TransactionColumns struct {
	AccountID   int // Id_Item
	Nature      int
	Type        int
	Category    int
	SubCategory int
	Operation   int
	OriginDest  int
	Item        int
	Date        int
	Amount      int

	LegacyDate        int
	LegacyDescription int
	LegacyAmount      int
	LegacyType        int
	LegacyCategory    int
}

// foldHeader lowers the case and strips whitespace and underscores, so
// "ID_Conta", "id conta" and "idconta" all compare equal.
func foldHeader(h string) string {
	h = strings.ToLower(h)
	h = strings.ReplaceAll(h, "_", "")
	return strings.Join(strings.Fields(h), "")
}

// findColumn returns the index of the first header cell whose folded form
// matches one of the accepted spellings, or -1.
func findColumn(header []string, spellings ...string) int {
	for i, cell := range header {
		folded := foldHeader(cell)
		for _, s := range spellings {
			if folded == s {
				return i
			}
		}
	}
	return -1
}

// MapPlanHeaders resolves the column layout of an account-plan file. The
// account identifier column is the only hard requirement; its absence fails
// the whole submission with an error naming the header row actually seen.
func MapPlanHeaders(header []string) (PlanColumns, error) {
	cols := PlanColumns{
		ID:          findColumn(header, "idconta"),
		Nature:      findColumn(header, "natureza"),
		Type:        findColumn(header, "tipo"),
		Category:    findColumn(header, "categoria"),
		SubCategory: findColumn(header, "subcategoria"),
		Name:        findColumn(header, "conta"),
	}
	if cols.ID == -1 {
		return cols, fmt.Errorf("coluna ID_Conta não encontrada. Colunas disponíveis: %s. Verifique o formato do arquivo", strings.Join(header, ", "))
	}
	return cols, nil
}

// MapTransactionHeaders resolves the column layout of a transactions file,
// accepting both the native Portuguese headers and the legacy
// date/description/amount/type/category set interchangeably.
func MapTransactionHeaders(header []string) TransactionColumns {
	return TransactionColumns{
		AccountID:   findColumn(header, "iditem"),
		Nature:      findColumn(header, "natureza"),
		Type:        findColumn(header, "tipo"),
		Category:    findColumn(header, "categoria"),
		SubCategory: findColumn(header, "subcategoria"),
		Operation:   findColumn(header, "operação", "operacao"),
		OriginDest:  findColumn(header, "origemdestino", "origem|destino"),
		Item:        findColumn(header, "item"),
		Date:        findColumn(header, "data"),
		Amount:      findColumn(header, "valor"),

		LegacyDate:        findColumn(header, "date"),
		LegacyDescription: findColumn(header, "description"),
		LegacyAmount:      findColumn(header, "amount"),
		LegacyType:        findColumn(header, "type"),
		LegacyCategory:    findColumn(header, "category"),
	}
}
