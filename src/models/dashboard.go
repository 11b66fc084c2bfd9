// backend/src/models/dashboard.go
package models

// Balance sums the committed set. Income and Expenses are absolute values,
// Total = Income - Expenses. Savings equals Total (convenção do domínio).
type Balance struct {
	Total    float64 `json:"total"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
}

// MonthlyPoint is one year-month bucket of the monthly chart.
// Month is the short pt-BR month name ("Jan".."Dez").
type MonthlyPoint struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// CategoryPoint is one bucket of the expenses-by-category chart.
type CategoryPoint struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Charts groups the derived chart series.
type Charts struct {
	Monthly    []MonthlyPoint  `json:"monthly"`
	Categories []CategoryPoint `json:"categories"`
}

// DashboardData is the full aggregate view, recomputed on every request.
type DashboardData struct {
	Balance      Balance       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
	Charts       Charts        `json:"charts"`
}

// CashFlowMonth is one bucket of the twelve-month cash-flow matrix.
// OpeningBalance of month n+1 equals ClosingBalance of month n.
type CashFlowMonth struct {
	Month              string  `json:"month"` // short pt-BR name
	OpeningBalance     float64 `json:"openingBalance"`
	Income             float64 `json:"income"`
	Expenses           float64 `json:"expenses"`
	OperationalBalance float64 `json:"operationalBalance"`
	ClosingBalance     float64 `json:"closingBalance"`
}

// CashFlowResult is the cash-flow matrix for one selected year.
type CashFlowResult struct {
	Year   int             `json:"year"`
	Months []CashFlowMonth `json:"months"`
}
