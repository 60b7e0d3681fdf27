package transactions

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/id"
	"github.com/cleared-dev/myfinances/internal/model"
)

// FileName is the transactions file inside a data directory.
const FileName = "transactions.csv"

const nextIDPrefix = "# next_id="

// Store is the ordered, in-memory collection of transactions for a session.
// It is not safe for concurrent use; the session serializes access.
type Store struct {
	items []model.Transaction
	seq   *id.Sequence
}

// NewStore creates a Store holding txns in the given order. The ID counter is
// seeded above the highest ID present, or at next if that is higher.
func NewStore(txns []model.Transaction, next int) *Store {
	ids := make([]int, len(txns))
	for i, t := range txns {
		ids[i] = t.ID
	}
	seq := id.After(ids)
	seq.Observe(next - 1)
	return &Store{items: slices.Clone(txns), seq: seq}
}

// NewTransaction holds the caller-supplied fields of a transaction; the store
// assigns the ID.
type NewTransaction struct {
	Date        time.Time       `validate:"required"`
	Amount      decimal.Decimal `validate:"-"`
	Kind        model.Kind      `validate:"required,oneof=income expense"`
	Category    string          `validate:"required,max=50"`
	Description string          `validate:"max=200"`
	Source      string          `validate:"max=100"`
}

// Add validates params, assigns the next ID and appends the transaction.
// A negative amount is rejected with model.ErrInvalidAmount.
func (s *Store) Add(params NewTransaction) (model.Transaction, error) {
	if err := Validate(params); err != nil {
		return model.Transaction{}, err
	}

	source := strings.TrimSpace(params.Source)
	if source == "" {
		source = model.DefaultSource
	}

	txn := model.Transaction{
		ID:          s.seq.Next(),
		Date:        calendarDate(params.Date),
		Amount:      params.Amount,
		Kind:        params.Kind,
		Category:    strings.TrimSpace(params.Category),
		Description: strings.TrimSpace(params.Description),
		Source:      source,
	}
	s.items = append(s.items, txn)
	return txn, nil
}

// Remove deletes the transaction with the given ID. It reports whether a
// transaction was removed; an unknown ID leaves the store untouched.
func (s *Store) Remove(txnID int) bool {
	i := slices.IndexFunc(s.items, func(t model.Transaction) bool { return t.ID == txnID })
	if i < 0 {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	return true
}

// List returns a copy of all transactions in insertion order.
func (s *Store) List() []model.Transaction {
	return slices.Clone(s.items)
}

// Get returns the transaction with the given ID.
func (s *Store) Get(txnID int) (model.Transaction, bool) {
	for _, t := range s.items {
		if t.ID == txnID {
			return t, true
		}
	}
	return model.Transaction{}, false
}

// Len returns the number of stored transactions.
func (s *Store) Len() int {
	return len(s.items)
}

// NextID returns the ID the next Add will assign.
func (s *Store) NextID() int {
	return s.seq.Peek()
}

// Load reads <dir>/transactions.csv. A missing file yields an empty store.
// The "# next_id=N" line written by Save keeps IDs of deleted transactions
// from being handed out again.
func Load(dir string) (*Store, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewStore(nil, 1), nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening transactions %s: %w", path, err)
	}

	next := 1
	body := string(data)
	if first, rest, ok := strings.Cut(body, "\n"); ok && strings.HasPrefix(first, nextIDPrefix) {
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(first, nextIDPrefix)))
		if err != nil {
			return nil, fmt.Errorf("reading transactions %s: bad next_id line %q", path, first)
		}
		next = n
		body = rest
	}

	txns, err := ReadTransactions(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("reading transactions %s: %w", path, err)
	}
	return NewStore(txns, next), nil
}

// Save writes all transactions to <dir>/transactions.csv. The file is
// written under a temporary name and renamed into place, so a failed save
// leaves the previous file intact.
func (s *Store) Save(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s%d\n", nextIDPrefix, s.seq.Peek())
	if err := WriteTransactions(&buf, s.items); err != nil {
		return fmt.Errorf("encoding transactions: %w", err)
	}

	path := filepath.Join(dir, FileName)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing transactions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replacing transactions file: %w", err)
	}
	return nil
}

func calendarDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
