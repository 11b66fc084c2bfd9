// backend/src/services/interfaces.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/username/fundify/backend/src/model"
	"github.com/username/fundify/backend/src/models"
)

// Define common service errors
var (
	ErrParsingFailed = errors.New("csv parsing failed")
)

// ImportResult is the outcome of one committed submission. Diagnostics may be
// non-empty on success: rows that failed reconciliation are surfaced as
// warnings next to the committed subset.
type ImportResult struct {
	Message      string                    `json:"message"`
	Transactions []models.Transaction      `json:"transactions,omitempty"`
	Accounts     []models.Account          `json:"accounts,omitempty"`
	Count        int                       `json:"count"`
	Diagnostics  []models.ImportDiagnostic `json:"errors,omitempty"`
}

// ImportRejectedError carries the full diagnostic list of a submission where
// no row survived reconciliation, plus a bounded sample of the raw rows for
// debugging.
type ImportRejectedError struct {
	Diagnostics []models.ImportDiagnostic
	Received    int
	Sample      []string
}

func (e *ImportRejectedError) Error() string {
	reasons := make([]string, 0, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		reasons = append(reasons, d.Reason)
	}
	return fmt.Sprintf("Nenhuma transação válida: %s", strings.Join(reasons, "; "))
}

// ImportService drives a whole submission through parsing, reconciliation
// and commit.
type ImportService interface {
	ImportTransactions(fileData []byte, fileName string, validateAccountPlan bool) (*ImportResult, error)
	ImportAccountPlan(fileData []byte, fileName string) (*ImportResult, error)
	ImportHistory(limit int) ([]model.ImportRecord, error)
}

// DashboardService computes the derived views over the committed set.
type DashboardService interface {
	GetDashboard(filter *DateFilter) (*models.DashboardData, error)
	GetCashFlow(year int) (*models.CashFlowResult, error)
	InvalidateCache()
}

// DateFilter is an optional inclusive date window applied before aggregation.
type DateFilter struct {
	From time.Time
	To   time.Time
}

// Matches reports whether an ISO date string falls inside the window.
func (f *DateFilter) Matches(isoDate string) bool {
	if f == nil {
		return true
	}
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return false
	}
	if !f.From.IsZero() && t.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && t.After(f.To) {
		return false
	}
	return true
}
