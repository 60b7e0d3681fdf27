package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementLine is one parsed row of a bank statement export.
type StatementLine struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // negative = expense, positive = income
	Category    string          // empty when the export carries none
	Reference   string
}

// Kind derives the transaction kind from the sign of the amount.
func (l StatementLine) Kind() Kind {
	if l.Amount.IsNegative() {
		return KindExpense
	}
	return KindIncome
}
