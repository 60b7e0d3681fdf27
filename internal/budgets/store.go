package budgets

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/model"
)

// FileName is the budgets file inside a data directory.
const FileName = "budgets.csv"

// Store holds the monthly budgets in declaration order.
// It is not safe for concurrent use; the session serializes access.
type Store struct {
	budgets    []model.Budget
	byCategory map[string]int
}

// NewStore creates a Store from a slice of budgets. Later duplicates of a
// category are dropped.
func NewStore(budgets []model.Budget) *Store {
	s := &Store{byCategory: make(map[string]int, len(budgets))}
	for _, b := range budgets {
		if _, dup := s.byCategory[b.Category]; dup {
			continue
		}
		s.byCategory[b.Category] = len(s.budgets)
		s.budgets = append(s.budgets, b)
	}
	return s
}

// List returns a copy of all budgets in declaration order.
func (s *Store) List() []model.Budget {
	return slices.Clone(s.budgets)
}

// Get returns the budget for a category.
func (s *Store) Get(category string) (model.Budget, bool) {
	i, ok := s.byCategory[category]
	if !ok {
		return model.Budget{}, false
	}
	return s.budgets[i], true
}

// Exists reports whether a budget exists for category.
func (s *Store) Exists(category string) bool {
	_, ok := s.byCategory[category]
	return ok
}

// Categories returns the budget categories in declaration order.
func (s *Store) Categories() []string {
	out := make([]string, len(s.budgets))
	for i, b := range s.budgets {
		out[i] = b.Category
	}
	return out
}

// SetLimit replaces the limit of an existing budget. The limit must be
// positive; on error the previous limit is kept.
func (s *Store) SetLimit(category string, limit decimal.Decimal) error {
	i, ok := s.byCategory[category]
	if !ok {
		return fmt.Errorf("%w: %q", model.ErrUnknownCategory, category)
	}
	if !limit.IsPositive() {
		return fmt.Errorf("%w: %s must be greater than zero", model.ErrInvalidLimit, limit)
	}
	s.budgets[i].Limit = limit
	return nil
}

// Load reads <dir>/budgets.csv. A missing file yields the default budgets.
func Load(dir string) (*Store, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(DefaultBudgets()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening budgets: %w", err)
	}
	defer f.Close()

	budgets, err := ReadBudgets(f)
	if err != nil {
		return nil, fmt.Errorf("reading budgets: %w", err)
	}
	return NewStore(budgets), nil
}

// Save writes the budgets to <dir>/budgets.csv via a temporary file, so a
// failed save leaves the previous file intact.
func (s *Store) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteBudgets(&buf, s.budgets); err != nil {
		return fmt.Errorf("encoding budgets: %w", err)
	}

	path := filepath.Join(dir, FileName)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing budgets: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing budgets file: %w", err)
	}
	return nil
}
