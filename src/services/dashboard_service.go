// backend/src/services/dashboard_service.go
package services

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/patrickmn/go-cache"
	"github.com/username/fundify/backend/src/logger"
	"github.com/username/fundify/backend/src/model"
	"github.com/username/fundify/backend/src/models"
)

const (
	ckDashboardData = "agg_dashboard_data"
	ckCashFlowYear  = "agg_cash_flow_year_%d"
)

// monthNames são os nomes curtos dos meses usados nos rótulos dos gráficos.
var monthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

type dashboardServiceImpl struct {
	store       *model.Store
	reportCache *cache.Cache
}

func NewDashboardService(store *model.Store, reportCache *cache.Cache) DashboardService {
	return &dashboardServiceImpl{store: store, reportCache: reportCache}
}

// GetDashboard recomputes the full aggregate view over the committed set.
// Unfiltered results are cached until the next import or mutation.
func (s *dashboardServiceImpl) GetDashboard(filter *DateFilter) (*models.DashboardData, error) {
	if filter == nil {
		if cached, found := s.reportCache.Get(ckDashboardData); found {
			return cached.(*models.DashboardData), nil
		}
	}

	txs, err := s.store.ListTransactions()
	if err != nil {
		return nil, err
	}
	data := ComputeAggregates(txs, filter)

	if filter == nil {
		s.reportCache.Set(ckDashboardData, data, cache.DefaultExpiration)
	}
	return data, nil
}

// GetCashFlow returns the twelve-month matrix for one year.
func (s *dashboardServiceImpl) GetCashFlow(year int) (*models.CashFlowResult, error) {
	cacheKey := fmt.Sprintf(ckCashFlowYear, year)
	if cached, found := s.reportCache.Get(cacheKey); found {
		return cached.(*models.CashFlowResult), nil
	}

	txs, err := s.store.ListTransactions()
	if err != nil {
		return nil, err
	}
	result := ComputeCashFlow(txs, year)
	s.reportCache.Set(cacheKey, result, cache.DefaultExpiration)
	return result, nil
}

// InvalidateCache drops every derived view after the committed set changes.
func (s *dashboardServiceImpl) InvalidateCache() {
	s.reportCache.Flush()
	logger.L.Debug("dashboard cache invalidated")
}

// ComputeAggregates derives balance, the monthly income/expense series and
// the expenses-by-category rollup from the given transactions. The optional
// filter is applied once up front; the function itself holds no state.
func ComputeAggregates(txs []models.Transaction, filter *DateFilter) *models.DashboardData {
	if filter != nil {
		filtered := make([]models.Transaction, 0, len(txs))
		for _, tx := range txs {
			if filter.Matches(tx.Date) {
				filtered = append(filtered, tx)
			}
		}
		txs = filtered
	}

	var balance models.Balance
	type monthlyBucket struct {
		income   float64
		expenses float64
	}
	monthlyMap := make(map[string]*monthlyBucket)
	categoryMap := make(map[string]float64)
	var categoryOrder []string

	for _, tx := range txs {
		abs := math.Abs(tx.Amount)
		if tx.Type == models.TypeIncome {
			balance.Income += abs
		} else {
			balance.Expenses += abs
		}

		// Chaves YYYY-MM ordenam lexicograficamente em ordem cronológica.
		// Datas fora do formato viram a sua própria chave: toda transação
		// do saldo aparece em algum balde mensal.
		key := tx.Date
		if len(key) >= 7 {
			key = key[:7]
		}
		bucket := monthlyMap[key]
		if bucket == nil {
			bucket = &monthlyBucket{}
			monthlyMap[key] = bucket
		}
		if tx.Type == models.TypeIncome {
			bucket.income += abs
		} else {
			bucket.expenses += abs
		}

		if tx.Type == models.TypeExpense {
			if _, seen := categoryMap[tx.Category]; !seen {
				categoryOrder = append(categoryOrder, tx.Category)
			}
			categoryMap[tx.Category] += abs
		}
	}

	balance.Total = balance.Income - balance.Expenses
	balance.Savings = balance.Total

	monthKeys := make([]string, 0, len(monthlyMap))
	for key := range monthlyMap {
		monthKeys = append(monthKeys, key)
	}
	sort.Strings(monthKeys)

	monthly := make([]models.MonthlyPoint, 0, len(monthKeys))
	for _, key := range monthKeys {
		bucket := monthlyMap[key]
		monthly = append(monthly, models.MonthlyPoint{
			Month:    monthLabel(key),
			Income:   bucket.income,
			Expenses: bucket.expenses,
		})
	}

	categories := make([]models.CategoryPoint, 0, len(categoryOrder))
	for _, category := range categoryOrder {
		categories = append(categories, models.CategoryPoint{Category: category, Amount: categoryMap[category]})
	}
	// Empates mantêm a ordem de chegada.
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Amount > categories[j].Amount
	})

	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})

	return &models.DashboardData{
		Balance:      balance,
		Transactions: sorted,
		Charts: models.Charts{
			Monthly:    monthly,
			Categories: categories,
		},
	}
}

// ComputeCashFlow derives the twelve-bucket matrix for one year. The opening
// balance of January is zero and every later opening balance equals the prior
// closing balance.
func ComputeCashFlow(txs []models.Transaction, year int) *models.CashFlowResult {
	var income, expenses [12]float64
	prefix := fmt.Sprintf("%04d-", year)

	for _, tx := range txs {
		if len(tx.Date) < 7 || tx.Date[:5] != prefix {
			continue
		}
		month, err := strconv.Atoi(tx.Date[5:7])
		if err != nil || month < 1 || month > 12 {
			continue
		}
		if tx.Type == models.TypeIncome {
			income[month-1] += math.Abs(tx.Amount)
		} else {
			expenses[month-1] += math.Abs(tx.Amount)
		}
	}

	months := make([]models.CashFlowMonth, 12)
	var opening float64
	for i := 0; i < 12; i++ {
		operational := income[i] - expenses[i]
		months[i] = models.CashFlowMonth{
			Month:              monthNames[i],
			OpeningBalance:     opening,
			Income:             income[i],
			Expenses:           expenses[i],
			OperationalBalance: operational,
			ClosingBalance:     opening + operational,
		}
		opening = months[i].ClosingBalance
	}

	return &models.CashFlowResult{Year: year, Months: months}
}

// monthLabel renders a YYYY-MM key with the month's short localized name.
// Keys that are not year-month pairs label themselves.
func monthLabel(key string) string {
	if len(key) < 7 {
		return key
	}
	month, err := strconv.Atoi(key[5:7])
	if err != nil || month < 1 || month > 12 {
		return key
	}
	return monthNames[month-1]
}
