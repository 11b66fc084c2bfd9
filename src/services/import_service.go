// backend/src/services/import_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/model"
	"github.com/username/fundify/backend/src/parsers"
	"github.com/username/fundify/backend/src/processors"
)

const (
	// Maximum raw rows echoed back when a whole submission is rejected.
	rejectedSampleSize = 3

	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type importServiceImpl struct {
	store                *model.Store
	transactionProcessor *processors.TransactionProcessor
	accountProcessor     *processors.AccountProcessor
	dashboardService     DashboardService
}

func NewImportService(
	store *model.Store,
	transactionProcessor *processors.TransactionProcessor,
	accountProcessor *processors.AccountProcessor,
	dashboardService DashboardService,
) ImportService {
	return &importServiceImpl{
		store:                store,
		transactionProcessor: transactionProcessor,
		accountProcessor:     accountProcessor,
		dashboardService:     dashboardService,
	}
}

// ImportTransactions parses a submission, reconciles every row against the
// current chart of accounts and applies the commit policy: the batch is
// rejected only when there are diagnostics and not a single accepted row.
// A partially failed batch commits the accepted subset and returns the
// diagnostics as warnings.
func (s *importServiceImpl) ImportTransactions(fileData []byte, fileName string, validateAccountPlan bool) (*ImportResult, error) {
	rows, err := parsers.ParseTransactions(fileData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	chart, err := s.store.AccountPlan()
	if err != nil {
		return nil, err
	}
	logger.L.Info("importing transactions",
		"file", fileName,
		"rows", len(rows),
		"validate", validateAccountPlan,
		"chartSize", len(chart))

	accepted, diagnostics := s.transactionProcessor.Process(rows, chart, validateAccountPlan)

	if len(diagnostics) > 0 && len(accepted) == 0 {
		sample := make([]string, 0, rejectedSampleSize)
		for _, d := range diagnostics {
			if len(sample) == rejectedSampleSize {
				break
			}
			sample = append(sample, fmt.Sprintf("Linha %d: %s", d.Line, d.RawRow))
		}
		logger.L.Warn("submission rejected, no valid rows",
			"file", fileName,
			"received", len(rows),
			"diagnostics", len(diagnostics),
			"sample", sample)
		return nil, &ImportRejectedError{
			Diagnostics: diagnostics,
			Received:    len(rows),
			Sample:      sample,
		}
	}

	committed, err := s.store.AppendTransactions(accepted)
	if err != nil {
		return nil, err
	}

	if err := s.store.RecordImport(model.ImportRecord{
		ID:              uuid.NewString(),
		Kind:            model.ImportKindTransactions,
		FileName:        fileName,
		AcceptedCount:   len(committed),
		DiagnosticCount: len(diagnostics),
		CreatedAt:       time.Now().UTC(),
	}); err != nil {
		logger.L.Error("failed to record import history", "file", fileName, "error", err)
	}

	s.dashboardService.InvalidateCache()

	message := fmt.Sprintf("%d transações importadas", len(committed))
	if len(diagnostics) > 0 {
		message = fmt.Sprintf("%s, %d erro(s) encontrado(s)", message, len(diagnostics))
	}
	logger.L.Info("import committed", "file", fileName, "committed", len(committed), "diagnostics", len(diagnostics))

	return &ImportResult{
		Message:      message,
		Transactions: committed,
		Count:        len(committed),
		Diagnostics:  diagnostics,
	}, nil
}

// ImportAccountPlan parses and fully replaces the chart of accounts.
func (s *importServiceImpl) ImportAccountPlan(fileData []byte, fileName string) (*ImportResult, error) {
	rows, err := parsers.ParseAccountPlan(fileData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	accounts := s.accountProcessor.Process(rows)
	if err := s.store.ReplaceAccountPlan(accounts); err != nil {
		return nil, err
	}

	if err := s.store.RecordImport(model.ImportRecord{
		ID:            uuid.NewString(),
		Kind:          model.ImportKindAccountPlan,
		FileName:      fileName,
		AcceptedCount: len(accounts),
		CreatedAt:     time.Now().UTC(),
	}); err != nil {
		logger.L.Error("failed to record import history", "file", fileName, "error", err)
	}

	logger.L.Info("account plan replaced", "file", fileName, "accounts", len(accounts))
	return &ImportResult{
		Message:  fmt.Sprintf("%d contas importadas no plano de contas", len(accounts)),
		Accounts: accounts,
		Count:    len(accounts),
	}, nil
}

func (s *importServiceImpl) ImportHistory(limit int) ([]model.ImportRecord, error) {
	return s.store.ListImportHistory(limit)
}

// NewReportCache builds the shared cache used for derived views.
func NewReportCache() *cache.Cache {
	return cache.New(DefaultCacheExpiration, CacheCleanupInterval)
}
