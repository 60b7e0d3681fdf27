package report

import (
	"strings"

	"github.com/cleared-dev/myfinances/internal/model"
)

// Filter narrows a transaction list. Zero fields match everything.
type Filter struct {
	Kind     model.Kind
	Category string
	// Search is matched case-insensitively against description, category
	// and source; any one field matching is enough.
	Search string
}

// FilterTransactions returns the matching transactions, newest first.
// Transactions sharing a date keep their store order.
func FilterTransactions(txns []model.Transaction, f Filter) []model.Transaction {
	needle := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if f.Kind != "" && t.Kind != f.Kind {
			continue
		}
		if f.Category != "" && t.Category != f.Category {
			continue
		}
		if needle != "" && !matches(t, needle) {
			continue
		}
		out = append(out, t)
	}
	return byDateDesc(out)
}

func matches(t model.Transaction, needle string) bool {
	for _, field := range []string{t.Description, t.Category, t.Source} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
