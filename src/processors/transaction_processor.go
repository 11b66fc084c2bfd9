// backend/src/processors/transaction_processor.go
package processors

import (
	"fmt"
	"math"
	"strings"

	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/models"
	"github.com/username/fundify/backend/src/security/validation"
)

// TransactionProcessor reconciles raw transaction rows against the chart of
// accounts and derives the committed-record fields (type, signed amount,
// category, ISO date).
type TransactionProcessor struct{}

func NewTransactionProcessor() *TransactionProcessor { return &TransactionProcessor{} }

// incomeVocabulary são as palavras que marcam uma natureza como receita.
var incomeVocabulary = []string{"receita", "entrada", "income"}

// Process runs every row independently and partitions the batch into accepted
// transactions and per-row diagnostics. Row numbers in diagnostics are offset
// by the header row, so the first data row reports as line 2.
//
// When validate is true, a non-empty Id_Item that is not a key of the chart
// rejects the row (not the batch). Rows whose coerced amount is exactly zero
// are dropped silently: exports pad with zero-value filler lines.
func (p *TransactionProcessor) Process(rows []models.RawTransactionRow, chart map[string]models.Account, validate bool) ([]models.Transaction, []models.ImportDiagnostic) {
	var accepted []models.Transaction
	var diagnostics []models.ImportDiagnostic

	for index, row := range rows {
		line := index + 2

		accountID := strings.TrimSpace(row.AccountID)
		if validate && accountID != "" {
			if _, ok := chart[accountID]; !ok {
				reason := fmt.Sprintf("Linha %d: Id_Item \"%s\" não encontrado no plano de contas", line, accountID)
				logger.L.Warn("transaction row rejected", "line", line, "idItem", accountID)
				diagnostics = append(diagnostics, models.ImportDiagnostic{
					Line:   line,
					Reason: reason,
					RawRow: row.RawLine,
				})
				continue
			}
		}

		txType := deriveNature(row)

		amount, parsed := firstAmount(row)
		if !parsed {
			logger.L.Debug("amount coerced to zero", "line", line, "valor", row.Amount, "amount", row.LegacyAmount)
		}
		if amount == 0 {
			continue
		}
		if txType == models.TypeExpense {
			amount = -math.Abs(amount)
		} else {
			amount = math.Abs(amount)
		}

		date, hadDate := validation.NormalizeDate(firstNonEmpty(row.Date, row.LegacyDate))
		if !hadDate {
			logger.L.Debug("row without date, using current date", "line", line)
		}

		category := firstNonEmpty(row.Category, row.LegacyCategory)
		if category == "" && accountID != "" {
			if account, ok := chart[accountID]; ok {
				category = account.Category
			}
		}
		if category == "" {
			category = "Outros"
		}

		accepted = append(accepted, models.Transaction{
			Date:        date,
			Description: firstNonEmpty(row.Item, row.LegacyDescription),
			Amount:      amount,
			Type:        txType,
			Category:    category,

			OriginAccountID:   row.AccountID,
			OriginNature:      row.Nature,
			OriginType:        row.Type,
			OriginCategory:    row.Category,
			OriginSubCategory: row.SubCategory,
			OriginOperation:   row.Operation,
			OriginDestination: row.OriginDest,
			OriginItem:        row.Item,
			OriginDate:        row.Date,
			OriginAmount:      row.Amount,
		})
	}

	return accepted, diagnostics
}

// deriveNature decides income vs expense from the first informative field:
// Natureza, then Operação, then the explicit type column. Default is expense.
func deriveNature(row models.RawTransactionRow) string {
	if row.Nature != "" {
		return natureFromVocabulary(row.Nature)
	}
	if row.Operation != "" {
		return natureFromVocabulary(row.Operation)
	}
	if row.LegacyType != "" {
		if row.LegacyType == models.TypeIncome {
			return models.TypeIncome
		}
		return models.TypeExpense
	}
	return models.TypeExpense
}

func natureFromVocabulary(s string) string {
	lowered := strings.ToLower(s)
	for _, word := range incomeVocabulary {
		if strings.Contains(lowered, word) {
			return models.TypeIncome
		}
	}
	return models.TypeExpense
}

// firstAmount prefers the Valor column over the legacy amount column.
func firstAmount(row models.RawTransactionRow) (float64, bool) {
	if strings.TrimSpace(row.Amount) != "" {
		return validation.ParseAmount(row.Amount)
	}
	return validation.ParseAmount(row.LegacyAmount)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
