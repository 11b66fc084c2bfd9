package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/fundify/backend/src/models"
)

func testChart() map[string]models.Account {
	return map[string]models.Account{
		"7": {ID: "7", Nature: "Despesa", Category: "Alimentação"},
		"8": {ID: "8", Nature: "Receita", Category: "Trabalho"},
	}
}

func TestProcessIncomeRow(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []models.RawTransactionRow{
		{Item: "Salário", Amount: "5000", Nature: "Receita", Date: "15/01/2024"},
	}

	accepted, diags := p.Process(rows, nil, false)
	require.Empty(t, diags)
	require.Len(t, accepted, 1)

	tx := accepted[0]
	assert.Equal(t, models.TypeIncome, tx.Type)
	assert.Equal(t, 5000.0, tx.Amount)
	assert.Equal(t, "2024-01-15", tx.Date)
	assert.Equal(t, "Salário", tx.Description)
}

func TestProcessSignInvariant(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []models.RawTransactionRow{
		{Item: "Salário", Amount: "5000", Nature: "Receita"},
		{Item: "Mercado", Amount: "450,50", Nature: "Despesa"},
		// Valor negativo com natureza receita continua positivo.
		{Item: "Estorno", Amount: "-300", Nature: "Entrada"},
		{Item: "Sem natureza", Amount: "10"},
	}

	accepted, _ := p.Process(rows, nil, false)
	require.Len(t, accepted, 4)
	for _, tx := range accepted {
		if tx.Type == models.TypeIncome {
			assert.Positive(t, tx.Amount, "renda deve ser positiva: %s", tx.Description)
		} else {
			assert.Negative(t, tx.Amount, "despesa deve ser negativa: %s", tx.Description)
		}
	}
	// Default sem natureza é despesa.
	assert.Equal(t, models.TypeExpense, accepted[3].Type)
}

func TestProcessNatureDerivationOrder(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []models.RawTransactionRow{
		{Item: "a", Amount: "1", Nature: "RECEITA mensal"},
		{Item: "b", Amount: "1", Operation: "entrada extra"},
		{Item: "c", Amount: "1", LegacyType: "income"},
		{Item: "d", Amount: "1", Nature: "Despesa", Operation: "entrada"},
	}
	accepted, _ := p.Process(rows, nil, false)
	require.Len(t, accepted, 4)
	assert.Equal(t, models.TypeIncome, accepted[0].Type)
	assert.Equal(t, models.TypeIncome, accepted[1].Type)
	assert.Equal(t, models.TypeIncome, accepted[2].Type)
	// Natureza presente vence a operação.
	assert.Equal(t, models.TypeExpense, accepted[3].Type)
}

func TestProcessUnknownAccountRejectedWithLineNumber(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []models.RawTransactionRow{
		{AccountID: "7", Item: "ok", Amount: "10"},
		{AccountID: "99", Item: "desconhecida", Amount: "20", RawLine: "99,desconhecida,20"},
		{AccountID: "8", Item: "ok", Amount: "30"},
	}

	accepted, diags := p.Process(rows, testChart(), true)
	require.Len(t, accepted, 2)
	require.Len(t, diags, 1)
	// A linha 1 de dados é a linha 2 do arquivo.
	assert.Equal(t, 3, diags[0].Line)
	assert.Contains(t, diags[0].Reason, `Id_Item "99" não encontrado no plano de contas`)
	assert.Equal(t, "99,desconhecida,20", diags[0].RawRow)
}

func TestProcessValidationDisabledAcceptsUnknownAccount(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []models.RawTransactionRow{
		{AccountID: "99", Item: "desconhecida", Amount: "20"},
	}
	accepted, diags := p.Process(rows, testChart(), false)
	assert.Len(t, accepted, 1)
	assert.Empty(t, diags)
}

func TestProcessCategoryBackfill(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []models.RawTransactionRow{
		// Sem categoria própria: vem do plano de contas.
		{AccountID: "7", Item: "Mercado", Amount: "10"},
		// Categoria explícita não é sobrescrita.
		{AccountID: "7", Item: "Padaria", Amount: "5", Category: "Lanches"},
		// Sem conta e sem categoria: "Outros".
		{Item: "Avulso", Amount: "1"},
	}

	accepted, _ := p.Process(rows, testChart(), true)
	require.Len(t, accepted, 3)
	assert.Equal(t, "Alimentação", accepted[0].Category)
	assert.Equal(t, "Lanches", accepted[1].Category)
	assert.Equal(t, "Outros", accepted[2].Category)
}

func TestProcessZeroAmountExcludedSilently(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []models.RawTransactionRow{
		{Item: "filler", Amount: "0"},
		{Item: "vazio", Amount: ""},
		{Item: "real", Amount: "10"},
	}
	accepted, diags := p.Process(rows, nil, false)
	assert.Len(t, accepted, 1)
	assert.Empty(t, diags)
}

func TestProcessPreservesOriginFields(t *testing.T) {
	p := NewTransactionProcessor()
	rows := []models.RawTransactionRow{
		{
			AccountID:  "7",
			Nature:     "Despesa",
			Operation:  "Saída",
			OriginDest: "Mercado X",
			Item:       "Compras",
			Date:       "2024-02-01",
			Amount:     "33,30",
		},
	}
	accepted, _ := p.Process(rows, testChart(), true)
	require.Len(t, accepted, 1)
	tx := accepted[0]
	assert.Equal(t, "7", tx.OriginAccountID)
	assert.Equal(t, "Saída", tx.OriginOperation)
	assert.Equal(t, "Mercado X", tx.OriginDestination)
	assert.Equal(t, "33,30", tx.OriginAmount)
	assert.Equal(t, "2024-02-01", tx.OriginDate)
}

func TestAccountProcessorSkipsRowsWithoutID(t *testing.T) {
	p := NewAccountProcessor()
	rows := []models.RawAccountRow{
		{ID: "7", Nature: "Despesa", Category: "Alimentação", Name: "Supermercado"},
		{ID: "", Name: "sem id"},
		{ID: "  ", Name: "id em branco"},
		{ID: "8", Nature: "Receita", Category: "Trabalho", Name: "Salário"},
	}
	accounts := p.Process(rows)
	require.Len(t, accounts, 2)
	assert.Equal(t, "7", accounts[0].ID)
	assert.Equal(t, "8", accounts[1].ID)
}
