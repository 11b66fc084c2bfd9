// backend/src/processors/account_processor.go
package processors

import (
	"strings"

	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/models"
)

// AccountProcessor converts raw account-plan rows into chart-of-accounts
// entries.
type AccountProcessor struct{}

func NewAccountProcessor() *AccountProcessor { return &AccountProcessor{} }

// Process drops rows without an identifier and keeps the remaining entries in
// file order. Later occurrences of a duplicated identifier win when the chart
// is keyed, matching a full-replacement import.
func (p *AccountProcessor) Process(rows []models.RawAccountRow) []models.Account {
	var accounts []models.Account
	for _, row := range rows {
		id := strings.TrimSpace(row.ID)
		if id == "" {
			logger.L.Debug("account row without identifier skipped", "raw", row.RawLine)
			continue
		}
		accounts = append(accounts, models.Account{
			ID:          id,
			Nature:      row.Nature,
			Type:        row.Type,
			Category:    row.Category,
			SubCategory: row.SubCategory,
			Name:        row.Name,
		})
	}
	return accounts
}
