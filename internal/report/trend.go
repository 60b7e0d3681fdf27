package report

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/model"
)

// DefaultTrendMonths is the window used when a caller asks for zero months.
const DefaultTrendMonths = 6

// Series is an income/expense line chart, oldest month first.
type Series struct {
	Labels   []string          `json:"labels"`
	Income   []decimal.Decimal `json:"income"`
	Expenses []decimal.Decimal `json:"expenses"`
}

// TrailingMonthlySeries returns months entries ending at the month that
// contains ref. Months are stepped from the first of the month, so a
// reference date of the 31st never skips a shorter month.
func TrailingMonthlySeries(txns []model.Transaction, ref time.Time, months int) Series {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)

	s := Series{
		Labels:   make([]string, months),
		Income:   make([]decimal.Decimal, months),
		Expenses: make([]decimal.Decimal, months),
	}
	for i := 0; i < months; i++ {
		m := first.AddDate(0, i-months+1, 0)
		income, expenses := MonthIncomeExpense(txns, m.Year(), int(m.Month()))
		s.Labels[i] = format.MonthLabel(m)
		s.Income[i] = income
		s.Expenses[i] = expenses
	}
	return s
}
