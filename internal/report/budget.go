package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/model"
)

// Status is the tier a budget falls into for the month.
type Status string

const (
	StatusGood    Status = "good"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// Utilization is one budget's spend for a month.
type Utilization struct {
	Category string          `json:"category"`
	Icon     string          `json:"icon"`
	Spent    decimal.Decimal `json:"spent"`
	Limit    decimal.Decimal `json:"limit"`
	// Percentage is capped at 100 for progress bars.
	Percentage decimal.Decimal `json:"percentage"`
	// Ratio is spent/limit×100 without the cap, so overspend stays visible.
	Ratio  decimal.Decimal `json:"ratio"`
	Status Status          `json:"status"`
}

// Over reports whether spend has reached the limit.
func (u Utilization) Over() bool { return u.Status == StatusDanger }

// BudgetUtilization returns one entry per budget, in budget order, with the
// expenses of that category in the given month. Expenses in categories with
// no budget are ignored.
func BudgetUtilization(txns []model.Transaction, budgets []model.Budget, year, month int) []Utilization {
	spent := monthSpend(txns, year, month)

	out := make([]Utilization, len(budgets))
	for i, b := range budgets {
		s, ok := spent[b.Category]
		if !ok {
			s = decimal.Zero
		}
		ratio := percentOf(s, b.Limit)
		pct := decimal.Min(ratio, hundred)
		out[i] = Utilization{
			Category:   b.Category,
			Icon:       b.Icon,
			Spent:      s,
			Limit:      b.Limit,
			Percentage: pct,
			Ratio:      ratio,
			Status:     statusFor(pct),
		}
	}
	return out
}

// Comparison is the budget-versus-actual series for a bar chart.
type Comparison struct {
	Labels []string          `json:"labels"`
	Limits []decimal.Decimal `json:"limits"`
	Actual []decimal.Decimal `json:"actual"`
}

// BudgetComparison lays out each budget's limit next to its spend for the month.
func BudgetComparison(txns []model.Transaction, budgets []model.Budget, year, month int) Comparison {
	spent := monthSpend(txns, year, month)
	c := Comparison{
		Labels: make([]string, len(budgets)),
		Limits: make([]decimal.Decimal, len(budgets)),
		Actual: make([]decimal.Decimal, len(budgets)),
	}
	for i, b := range budgets {
		c.Labels[i] = b.Category
		c.Limits[i] = b.Limit
		c.Actual[i] = decimal.Zero
		if s, ok := spent[b.Category]; ok {
			c.Actual[i] = s
		}
	}
	return c
}

func monthSpend(txns []model.Transaction, year, month int) map[string]decimal.Decimal {
	spent := make(map[string]decimal.Decimal)
	for _, t := range txns {
		if !t.IsExpense() || !t.InMonth(year, month) {
			continue
		}
		cur, ok := spent[t.Category]
		if !ok {
			cur = decimal.Zero
		}
		spent[t.Category] = cur.Add(t.Amount)
	}
	return spent
}

// percentOf returns part/whole×100. A non-positive whole counts as fully
// used once anything is spent.
func percentOf(part, whole decimal.Decimal) decimal.Decimal {
	if !whole.IsPositive() {
		if part.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}
	return part.Mul(hundred).Div(whole)
}

func statusFor(pct decimal.Decimal) Status {
	switch {
	case pct.GreaterThanOrEqual(hundred):
		return StatusDanger
	case pct.GreaterThanOrEqual(warningThreshold):
		return StatusWarning
	default:
		return StatusGood
	}
}
