package session

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/model"
)

// SampleNextID is the ID the first transaction added to a sample session gets.
const SampleNextID = 8

// SampleTransactions returns the demo data set: one month of activity in
// August 2025.
func SampleTransactions() []model.Transaction {
	return []model.Transaction{
		sampleTxn(1, 1, model.KindIncome, 75000, "Salary", "Monthly salary", "Company"),
		sampleTxn(2, 2, model.KindExpense, 3500, "Food", "Monthly groceries", "Big Bazaar"),
		sampleTxn(3, 3, model.KindExpense, 1200, "Transport", "Metro card recharge", "Delhi Metro"),
		sampleTxn(4, 4, model.KindExpense, 25000, "Bills", "Monthly rent", "Landlord"),
		sampleTxn(5, 5, model.KindExpense, 2000, "Entertainment", "Movie and dinner", "PVR Cinemas"),
		sampleTxn(6, 6, model.KindExpense, 850, "Food", "Lunch at office", "Office Canteen"),
		sampleTxn(7, 7, model.KindIncome, 15000, "Freelance", "Website development project", "Freelance Client"),
	}
}

func sampleTxn(id, day int, kind model.Kind, amount int64, category, desc, source string) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        model.Date(2025, 8, day),
		Amount:      decimal.NewFromInt(amount),
		Kind:        kind,
		Category:    category,
		Description: desc,
		Source:      source,
	}
}
