package session

import (
	"time"

	"github.com/cleared-dev/myfinances/internal/model"
	"github.com/cleared-dev/myfinances/internal/report"
)

// Dashboard is everything the overview screen shows for one month.
type Dashboard struct {
	AsOf              time.Time
	Currency          model.Currency
	Totals            report.Totals
	ExpenseByCategory []report.CategoryTotal
	Recent            []model.Transaction
}

// Dashboard computes the overview for the month containing ref.
func (s *Session) Dashboard(ref time.Time) Dashboard {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := s.txns.List()
	return Dashboard{
		AsOf:              ref,
		Currency:          s.cfg.Currency,
		Totals:            report.MonthlyTotals(txns, ref.Year(), int(ref.Month())),
		ExpenseByCategory: report.ExpenseByCategory(txns),
		Recent:            report.Recent(txns, s.cfg.Dashboard.RecentCount),
	}
}

// BudgetView is the budgets screen for one month.
type BudgetView struct {
	AsOf        time.Time
	Currency    model.Currency
	Utilization []report.Utilization
	Comparison  report.Comparison
}

// Budgets computes budget utilization for the month containing ref.
func (s *Session) Budgets(ref time.Time) BudgetView {
	s.mu.Lock()
	defer s.mu.Unlock()

	txns := s.txns.List()
	bs := s.budgets.List()
	year, month := ref.Year(), int(ref.Month())
	return BudgetView{
		AsOf:        ref,
		Currency:    s.cfg.Currency,
		Utilization: report.BudgetUtilization(txns, bs, year, month),
		Comparison:  report.BudgetComparison(txns, bs, year, month),
	}
}

// Trend returns the income/expense series for the months ending at ref.
// months <= 0 uses the configured trend window.
func (s *Session) Trend(ref time.Time, months int) report.Series {
	s.mu.Lock()
	defer s.mu.Unlock()

	if months <= 0 {
		months = s.cfg.Dashboard.TrendMonths
	}
	return report.TrailingMonthlySeries(s.txns.List(), ref, months)
}

// Transactions returns the transactions matching f, newest first.
func (s *Session) Transactions(f report.Filter) []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.FilterTransactions(s.txns.List(), f)
}

// Categories lists the categories used by stored transactions, for filtering.
func (s *Session) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return report.Categories(s.txns.List())
}
