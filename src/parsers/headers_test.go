package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapPlanHeadersAcceptsSpellingVariants(t *testing.T) {
	testCases := []struct {
		name   string
		header []string
	}{
		{"canonical", []string{"ID_Conta", "Natureza", "Tipo", "Categoria", "SubCategoria", "Conta"}},
		{"lowercase", []string{"id_conta", "natureza", "tipo", "categoria", "subcategoria", "conta"}},
		{"no underscore", []string{"IDConta", "Natureza", "Tipo", "Categoria", "SubCategoria", "Conta"}},
		{"with spaces", []string{"ID Conta", "Natureza", "Tipo", "Categoria", "Sub Categoria", "Conta"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cols, err := MapPlanHeaders(tc.header)
			require.NoError(t, err)
			assert.Equal(t, 0, cols.ID)
			assert.Equal(t, 3, cols.Category)
			assert.Equal(t, 5, cols.Name)
		})
	}
}

func TestMapPlanHeadersMissingIDFails(t *testing.T) {
	_, err := MapPlanHeaders([]string{"Natureza", "Tipo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ID_Conta")
	// O erro nomeia o cabeçalho efetivamente visto.
	assert.Contains(t, err.Error(), "Natureza, Tipo")
}

func TestMapTransactionHeadersPortuguese(t *testing.T) {
	cols := MapTransactionHeaders([]string{"Id_Item", "Natureza", "Operação", "Origem|Destino", "Item", "Data", "Valor"})
	assert.Equal(t, 0, cols.AccountID)
	assert.Equal(t, 1, cols.Nature)
	assert.Equal(t, 2, cols.Operation)
	assert.Equal(t, 3, cols.OriginDest)
	assert.Equal(t, 4, cols.Item)
	assert.Equal(t, 5, cols.Date)
	assert.Equal(t, 6, cols.Amount)
	assert.Equal(t, -1, cols.LegacyDate)
}

func TestMapTransactionHeadersLegacy(t *testing.T) {
	cols := MapTransactionHeaders([]string{"date", "description", "amount", "type", "category"})
	assert.Equal(t, -1, cols.AccountID)
	assert.Equal(t, 0, cols.LegacyDate)
	assert.Equal(t, 1, cols.LegacyDescription)
	assert.Equal(t, 2, cols.LegacyAmount)
	assert.Equal(t, 3, cols.LegacyType)
	assert.Equal(t, 4, cols.LegacyCategory)
}

func TestMapTransactionHeadersUnmatchedResolveToAbsent(t *testing.T) {
	cols := MapTransactionHeaders([]string{"Coluna Desconhecida"})
	assert.Equal(t, -1, cols.AccountID)
	assert.Equal(t, -1, cols.Date)
	assert.Equal(t, -1, cols.Amount)
}
