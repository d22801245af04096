package model

import (
	"github.com/shopspring/decimal"
)

// Summary is the metric snapshot returned by /api/statistics/summary for a
// date range. Optional metrics are nil when the backend does not report them.
type Summary struct {
	TotalAmount      decimal.Decimal  `json:"total_amount"`
	TransactionCount int              `json:"transaction_count"`
	TotalBalance     *decimal.Decimal `json:"total_balance,omitempty"`
	IncomeTotal      *decimal.Decimal `json:"income_total,omitempty"`
	ExpenseTotal     *decimal.Decimal `json:"expense_total,omitempty"`
}

// AverageAmount returns TotalAmount / TransactionCount, or zero when there
// are no transactions.
func (s Summary) AverageAmount() decimal.Decimal {
	if s.TransactionCount == 0 {
		return decimal.Zero
	}
	return s.TotalAmount.Div(decimal.NewFromInt(int64(s.TransactionCount)))
}

// CategoryTotal is one row of /api/statistics/by-category.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// TrendPoint is one bucket of /api/statistics/trend.
type TrendPoint struct {
	Period string          `json:"period"`
	Amount decimal.Decimal `json:"amount"`
}
