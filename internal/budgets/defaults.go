package budgets

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/model"
)

// DefaultBudgets returns the seeded expense categories and their monthly limits.
func DefaultBudgets() []model.Budget {
	return []model.Budget{
		{Category: "Food", Limit: decimal.NewFromInt(8000), Icon: "🍽️"},
		{Category: "Transport", Limit: decimal.NewFromInt(3000), Icon: "🚗"},
		{Category: "Entertainment", Limit: decimal.NewFromInt(5000), Icon: "🎬"},
		{Category: "Bills", Limit: decimal.NewFromInt(30000), Icon: "📄"},
		{Category: "Shopping", Limit: decimal.NewFromInt(10000), Icon: "🛍️"},
		{Category: "Healthcare", Limit: decimal.NewFromInt(5000), Icon: "🏥"},
		{Category: "Other", Limit: decimal.NewFromInt(3000), Icon: "📦"},
	}
}
