// Package report derives dashboard figures, budget utilization and chart
// series from the transaction and budget stores. Every function is pure:
// inputs are never mutated and the reference month is always passed in.
package report

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/model"
)

// Totals are the dashboard headline figures.
//
// Income, Expenses and Savings cover one calendar month. Balance is the
// all-time net across every transaction, so it will differ from Savings as
// soon as any transaction falls outside that month.
type Totals struct {
	Year     int             `json:"year"`
	Month    int             `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Savings  decimal.Decimal `json:"savings"`
	Balance  decimal.Decimal `json:"balance"`
}

// MonthlyTotals sums income and expenses for the given month and the
// all-time balance.
func MonthlyTotals(txns []model.Transaction, year, month int) Totals {
	income, expenses := MonthIncomeExpense(txns, year, month)
	return Totals{
		Year:     year,
		Month:    month,
		Income:   income,
		Expenses: expenses,
		Savings:  income.Sub(expenses),
		Balance:  Balance(txns),
	}
}

// MonthIncomeExpense returns total income and total expenses for one month.
func MonthIncomeExpense(txns []model.Transaction, year, month int) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, t := range txns {
		if !t.InMonth(year, month) {
			continue
		}
		switch t.Kind {
		case model.KindIncome:
			income = income.Add(t.Amount)
		case model.KindExpense:
			expenses = expenses.Add(t.Amount)
		}
	}
	return income, expenses
}

// Balance is the all-time sum of income minus the sum of expenses.
func Balance(txns []model.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Signed())
	}
	return total
}

// CategoryTotal is an amount aggregated under one category label.
type CategoryTotal struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// ExpenseByCategory sums expenses per category over all time, in the order
// each category is first encountered.
func ExpenseByCategory(txns []model.Transaction) []CategoryTotal {
	var out []CategoryTotal
	index := make(map[string]int)
	for _, t := range txns {
		if !t.IsExpense() {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category, Amount: decimal.Zero})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
	}
	return out
}

// Categories returns the distinct transaction categories in first-seen order.
func Categories(txns []model.Transaction) []string {
	var out []string
	seen := make(map[string]bool)
	for _, t := range txns {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}

// Recent returns up to n transactions, newest first. Transactions sharing a
// date keep their store order.
func Recent(txns []model.Transaction, n int) []model.Transaction {
	if n <= 0 {
		return nil
	}
	sorted := byDateDesc(txns)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func byDateDesc(txns []model.Transaction) []model.Transaction {
	out := slices.Clone(txns)
	slices.SortStableFunc(out, func(a, b model.Transaction) int {
		return b.Date.Compare(a.Date)
	})
	return out
}
