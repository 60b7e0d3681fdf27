package session

import (
	"errors"
	"fmt"
	"slices"

	"github.com/cleared-dev/myfinances/internal/activitylog"
	"github.com/cleared-dev/myfinances/internal/model"
	"github.com/cleared-dev/myfinances/internal/transactions"
)

// Fallback categories for statement lines whose category is missing or not
// allowed for their kind.
const (
	FallbackExpenseCategory = "Other"
	FallbackIncomeCategory  = "Other Income"
)

// ImportResult summarizes one statement import.
type ImportResult struct {
	Added   []model.Transaction
	Skipped int // lines whose reference was already imported
}

// Import adds statement lines as transactions. Negative amounts become
// expenses and positive amounts income, storing the magnitude. The line's
// reference is kept as the transaction source, and lines whose reference is
// already present are skipped so re-importing a statement, or one that
// overlaps an earlier import, is harmless.
func (s *Session) Import(lines []model.StatementLine, origin string) (ImportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, t := range s.txns.List() {
		seen[t.Source] = true
	}

	var res ImportResult
	for i, line := range lines {
		if line.Reference != "" && seen[line.Reference] {
			res.Skipped++
			continue
		}

		kind := line.Kind()
		txn, err := s.txns.Add(transactions.NewTransaction{
			Date:        line.Date,
			Amount:      line.Amount.Abs(),
			Kind:        kind,
			Category:    s.importCategoryLocked(kind, line.Category),
			Description: line.Description,
			Source:      line.Reference,
		})
		if err != nil {
			// Earlier lines stay added; persist them before reporting.
			saveErr := s.recordImportLocked(origin, res)
			return res, errors.Join(s.reject("import_statement", fmt.Errorf("line %d: %w", i+1, err)), saveErr)
		}
		res.Added = append(res.Added, txn)
		seen[txn.Source] = true
	}

	s.log.Debugw("statement imported", "origin", origin, "added", len(res.Added), "skipped", res.Skipped)
	return res, s.recordImportLocked(origin, res)
}

func (s *Session) recordImportLocked(origin string, res ImportResult) error {
	if len(res.Added) == 0 {
		return nil
	}
	details := fmt.Sprintf("imported %d transactions from %s", len(res.Added), origin)
	return s.record(activitylog.LevelSuccess, "import_statement", details, 0)
}

func (s *Session) importCategoryLocked(kind model.Kind, category string) string {
	if category != "" && s.checkCategoryLocked(kind, category) == nil {
		return category
	}
	fallback := FallbackExpenseCategory
	if kind == model.KindIncome {
		fallback = FallbackIncomeCategory
	}
	allowed := s.categoriesForLocked(kind)
	if slices.Contains(allowed, fallback) || len(allowed) == 0 {
		return fallback
	}
	return allowed[len(allowed)-1]
}
