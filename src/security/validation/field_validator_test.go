package validation

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/username/fundify/backend/src/models"
)

func validTransaction() models.Transaction {
	return models.Transaction{
		Date:        "2024-01-15",
		Description: "Mercado",
		Amount:      -45.5,
		Type:        models.TypeExpense,
		Category:    "Alimentação",
	}
}

func TestValidateTransactionInput(t *testing.T) {
	tx := validTransaction()
	assert.NoError(t, ValidateTransactionInput(&tx))
}

func TestValidateTransactionInputRejections(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*models.Transaction)
	}{
		{"bad date", func(tx *models.Transaction) { tx.Date = "15/01/2024" }},
		{"impossible date", func(tx *models.Transaction) { tx.Date = "2024-02-31" }},
		{"empty description", func(tx *models.Transaction) { tx.Description = "  " }},
		{"unknown type", func(tx *models.Transaction) { tx.Type = "transfer" }},
		{"zero amount", func(tx *models.Transaction) { tx.Amount = 0 }},
		{"expense with positive amount", func(tx *models.Transaction) { tx.Amount = 10 }},
		{"income with negative amount", func(tx *models.Transaction) {
			tx.Type = models.TypeIncome
			tx.Amount = -10
		}},
		{"description too long", func(tx *models.Transaction) {
			tx.Description = strings.Repeat("a", MaxDescriptionLength+1)
		}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tx := validTransaction()
			tc.mutate(&tx)
			assert.ErrorIs(t, ValidateTransactionInput(&tx), ErrValidationFailed)
		})
	}
}

func TestSanitizeTextStripsHTML(t *testing.T) {
	assert.Equal(t, "Mercado", SanitizeText("<script>alert(1)</script>Mercado"))
}

func TestIsBinaryContent(t *testing.T) {
	// UTF-16 com BOM tem bytes nulos mas é texto.
	utf16 := []byte{0xFF, 0xFE, 'a', 0x00, ';', 0x00}
	assert.False(t, isBinaryContent(utf16))

	// Latin-1 é UTF-8 inválido mas também é texto.
	latin1 := []byte("Alimenta\xe7\xe3o;100")
	assert.False(t, isBinaryContent(latin1))

	// Assinaturas binárias conhecidas são rejeitadas.
	assert.True(t, isBinaryContent([]byte("PK\x03\x04conteudo")))
	assert.True(t, isBinaryContent([]byte("%PDF-1.7")))

	// Byte nulo sem BOM UTF-16 indica binário.
	assert.True(t, isBinaryContent([]byte("texto\x00binario")))
}

func TestValidateFileContent(t *testing.T) {
	assert.NoError(t, ValidateFileContent(bytes.NewReader([]byte("Data;Valor\n1;2\n"))))
	assert.Error(t, ValidateFileContent(bytes.NewReader(nil)))
	assert.Error(t, ValidateFileContent(bytes.NewReader([]byte("%PDF-1.7 ..."))))
}

func TestValidateClientContentType(t *testing.T) {
	assert.NoError(t, ValidateClientContentType("text/csv"))
	assert.NoError(t, ValidateClientContentType("text/csv; charset=utf-8"))
	assert.NoError(t, ValidateClientContentType("application/vnd.ms-excel"))
	assert.Error(t, ValidateClientContentType("application/pdf"))
	assert.Error(t, ValidateClientContentType("application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"))
}
