package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind classifies a transaction as money coming in or going out.
type Kind string

const (
	KindIncome  Kind = "income"
	KindExpense Kind = "expense"
)

// DefaultSource is stored when a transaction is entered without a source.
const DefaultSource = "N/A"

// Valid reports whether k is one of the two known kinds.
func (k Kind) Valid() bool {
	return k == KindIncome || k == KindExpense
}

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", ErrInvalidKind
	}
	return k, nil
}

// Transaction is a single recorded income or expense.
type Transaction struct {
	ID          int
	Date        time.Time       // calendar date, UTC midnight
	Amount      decimal.Decimal // magnitude, never negative
	Kind        Kind
	Category    string
	Description string
	Source      string
}

// IsIncome reports whether the transaction adds to the balance.
func (t Transaction) IsIncome() bool { return t.Kind == KindIncome }

// IsExpense reports whether the transaction subtracts from the balance.
func (t Transaction) IsExpense() bool { return t.Kind == KindExpense }

// InMonth reports whether the transaction date falls in the given calendar month.
func (t Transaction) InMonth(year, month int) bool {
	return t.Date.Year() == year && int(t.Date.Month()) == month
}

// Signed returns the amount with the sign it contributes to the balance.
func (t Transaction) Signed() decimal.Decimal {
	if t.IsExpense() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Date truncates y/m/d to a UTC calendar date.
func Date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
