package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/fundify/backend/src/models"
)

func TestComputeAggregatesBalance(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-01-15", Description: "Salário", Amount: 100, Type: models.TypeIncome, Category: "Trabalho"},
		{Date: "2024-01-20", Description: "Mercado", Amount: -40, Type: models.TypeExpense, Category: "Alimentação"},
	}

	data := ComputeAggregates(txs, nil)
	assert.Equal(t, 100.0, data.Balance.Income)
	assert.Equal(t, 40.0, data.Balance.Expenses)
	assert.Equal(t, 60.0, data.Balance.Total)
	assert.Equal(t, 60.0, data.Balance.Savings)

	require.Len(t, data.Charts.Monthly, 1)
	assert.Equal(t, "Jan", data.Charts.Monthly[0].Month)
	assert.Equal(t, 100.0, data.Charts.Monthly[0].Income)
	assert.Equal(t, 40.0, data.Charts.Monthly[0].Expenses)
}

func TestComputeAggregatesMonthlySumsMatchBalance(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-01-15", Amount: 100, Type: models.TypeIncome},
		{Date: "2024-02-10", Amount: 250, Type: models.TypeIncome},
		{Date: "2024-02-11", Amount: -80, Type: models.TypeExpense, Category: "a"},
		{Date: "2024-03-01", Amount: -20, Type: models.TypeExpense, Category: "b"},
		{Date: "2023-12-31", Amount: 30, Type: models.TypeIncome},
	}

	data := ComputeAggregates(txs, nil)
	var income, expenses float64
	for _, m := range data.Charts.Monthly {
		income += m.Income
		expenses += m.Expenses
	}
	assert.Equal(t, data.Balance.Income, income)
	assert.Equal(t, data.Balance.Expenses, expenses)
}

func TestComputeAggregatesBucketsMalformedDates(t *testing.T) {
	// NormalizeDate deixa passar strings sem "/" inalteradas, então uma
	// data como "abc" pode chegar gravada. Ela ganha seu próprio balde em
	// vez de sumir da série mensal.
	txs := []models.Transaction{
		{Date: "2024-01-15", Amount: 100, Type: models.TypeIncome},
		{Date: "abc", Amount: 50, Type: models.TypeIncome},
	}

	data := ComputeAggregates(txs, nil)
	assert.Equal(t, 150.0, data.Balance.Income)

	var monthlyIncome float64
	labels := make([]string, 0, len(data.Charts.Monthly))
	for _, m := range data.Charts.Monthly {
		monthlyIncome += m.Income
		labels = append(labels, m.Month)
	}
	assert.Equal(t, data.Balance.Income, monthlyIncome)
	assert.Contains(t, labels, "abc")
}

func TestComputeAggregatesMonthlyChronologicalAcrossYears(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-02-10", Amount: 1, Type: models.TypeIncome},
		{Date: "2023-12-31", Amount: 1, Type: models.TypeIncome},
		{Date: "2024-01-15", Amount: 1, Type: models.TypeIncome},
	}
	data := ComputeAggregates(txs, nil)
	require.Len(t, data.Charts.Monthly, 3)
	assert.Equal(t, "Dez", data.Charts.Monthly[0].Month)
	assert.Equal(t, "Jan", data.Charts.Monthly[1].Month)
	assert.Equal(t, "Fev", data.Charts.Monthly[2].Month)
}

func TestComputeAggregatesCategoriesDescendingStable(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-01-01", Amount: -10, Type: models.TypeExpense, Category: "Transporte"},
		{Date: "2024-01-02", Amount: -50, Type: models.TypeExpense, Category: "Alimentação"},
		// Empate com Transporte: mantém ordem de chegada.
		{Date: "2024-01-03", Amount: -10, Type: models.TypeExpense, Category: "Lazer"},
		{Date: "2024-01-04", Amount: 500, Type: models.TypeIncome, Category: "Trabalho"},
	}

	data := ComputeAggregates(txs, nil)
	require.Len(t, data.Charts.Categories, 3)
	assert.Equal(t, "Alimentação", data.Charts.Categories[0].Category)
	assert.Equal(t, "Transporte", data.Charts.Categories[1].Category)
	assert.Equal(t, "Lazer", data.Charts.Categories[2].Category)
}

func TestComputeAggregatesTransactionsNewestFirst(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-01-10", Amount: 1, Type: models.TypeIncome},
		{Date: "2024-03-01", Amount: 1, Type: models.TypeIncome},
		{Date: "2024-02-15", Amount: 1, Type: models.TypeIncome},
	}
	data := ComputeAggregates(txs, nil)
	require.Len(t, data.Transactions, 3)
	assert.Equal(t, "2024-03-01", data.Transactions[0].Date)
	assert.Equal(t, "2024-01-10", data.Transactions[2].Date)
}

func TestComputeAggregatesDateFilter(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-01-10", Amount: 100, Type: models.TypeIncome},
		{Date: "2024-06-10", Amount: 200, Type: models.TypeIncome},
	}
	from, _ := time.Parse("2006-01-02", "2024-05-01")
	data := ComputeAggregates(txs, &DateFilter{From: from})
	assert.Equal(t, 200.0, data.Balance.Income)
	assert.Len(t, data.Transactions, 1)
}

func TestComputeCashFlowChainsBalances(t *testing.T) {
	txs := []models.Transaction{
		{Date: "2024-01-15", Amount: 100, Type: models.TypeIncome},
		{Date: "2024-01-20", Amount: -40, Type: models.TypeExpense},
		{Date: "2024-03-05", Amount: -10, Type: models.TypeExpense},
		// Outro ano não entra na matriz.
		{Date: "2023-01-01", Amount: 999, Type: models.TypeIncome},
	}

	result := ComputeCashFlow(txs, 2024)
	require.Len(t, result.Months, 12)
	assert.Equal(t, 2024, result.Year)

	jan := result.Months[0]
	assert.Equal(t, "Jan", jan.Month)
	assert.Equal(t, 0.0, jan.OpeningBalance)
	assert.Equal(t, 100.0, jan.Income)
	assert.Equal(t, 40.0, jan.Expenses)
	assert.Equal(t, 60.0, jan.OperationalBalance)
	assert.Equal(t, 60.0, jan.ClosingBalance)

	// Fecho do mês n é abertura do mês n+1, em todos os meses.
	for i := 1; i < 12; i++ {
		assert.Equal(t, result.Months[i-1].ClosingBalance, result.Months[i].OpeningBalance)
	}
	mar := result.Months[2]
	assert.Equal(t, 60.0, mar.OpeningBalance)
	assert.Equal(t, 50.0, mar.ClosingBalance)
}

func TestComputeCashFlowEmptyYear(t *testing.T) {
	result := ComputeCashFlow(nil, 2024)
	require.Len(t, result.Months, 12)
	for _, m := range result.Months {
		assert.Zero(t, m.Income)
		assert.Zero(t, m.Expenses)
		assert.Zero(t, m.ClosingBalance)
	}
}
