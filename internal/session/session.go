// Package session owns the stores for one user session and is the only
// place they are mutated. Views are recomputed from scratch on every call.
package session

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cleared-dev/myfinances/internal/activitylog"
	"github.com/cleared-dev/myfinances/internal/budgets"
	"github.com/cleared-dev/myfinances/internal/config"
	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/gitops"
	"github.com/cleared-dev/myfinances/internal/logger"
	"github.com/cleared-dev/myfinances/internal/model"
	"github.com/cleared-dev/myfinances/internal/transactions"
)

// Session is safe for concurrent use.
type Session struct {
	mu      sync.Mutex
	txns    *transactions.Store
	budgets *budgets.Store
	cfg     *config.Config
	clock   func() time.Time
	log     *zap.SugaredLogger
	dir     string // empty for an in-memory session
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock used for "now".
func WithClock(clock func() time.Time) Option {
	return func(s *Session) { s.clock = clock }
}

// WithConfig replaces the default configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) { s.cfg = cfg }
}

// WithLogger replaces the global logger.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Session) { s.log = l }
}

func newSession(txns *transactions.Store, bs *budgets.Store, opts []Option) *Session {
	s := &Session{
		txns:    txns,
		budgets: bs,
		cfg:     config.Default(),
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Get()
	}
	return s
}

// New creates an empty in-memory session with the default budgets.
func New(opts ...Option) *Session {
	return newSession(transactions.NewStore(nil, 1), budgets.NewStore(budgets.DefaultBudgets()), opts)
}

// NewSample creates an in-memory session seeded with the sample transactions
// and the default budgets.
func NewSample(opts ...Option) *Session {
	return newSession(
		transactions.NewStore(SampleTransactions(), SampleNextID),
		budgets.NewStore(budgets.DefaultBudgets()),
		opts,
	)
}

// Open loads a session from a data directory. Missing files fall back to
// defaults, so an empty directory opens as an empty session. Every later
// mutation is written back to dir.
func Open(dir string, opts ...Option) (*Session, error) {
	cfg, err := config.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	txns, err := transactions.Load(dir)
	if err != nil {
		return nil, err
	}
	bs, err := budgets.Load(dir)
	if err != nil {
		return nil, err
	}

	s := newSession(txns, bs, append([]Option{WithConfig(cfg)}, opts...))
	s.dir = dir
	s.log.Debugw("session opened", "dir", dir, "transactions", txns.Len(), "next_id", txns.NextID())
	return s, nil
}

// Dir returns the backing data directory, or "" for an in-memory session.
func (s *Session) Dir() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// Now returns the session clock's current time.
func (s *Session) Now() time.Time { return s.clock() }

// Config returns the session configuration. Callers must not modify it.
func (s *Session) Config() *config.Config { return s.cfg }

// Currency returns the currency descriptor used for display.
func (s *Session) Currency() model.Currency { return s.cfg.Currency }

// Save writes the stores to the backing directory. It is a no-op for an
// in-memory session.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked("save data")
}

// SaveTo writes the stores and the configuration to dir and makes it the
// backing directory.
func (s *Session) SaveTo(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir = dir
	if err := config.Save(config.Path(dir), s.cfg); err != nil {
		return err
	}
	return s.saveLocked("initialize data directory")
}

func (s *Session) saveLocked(message string) error {
	if s.dir == "" {
		return nil
	}
	if err := s.txns.Save(s.dir); err != nil {
		return err
	}
	if err := s.budgets.Save(s.dir); err != nil {
		return err
	}
	return s.commitLocked(message)
}

func (s *Session) commitLocked(message string) error {
	git := s.cfg.Git
	if !git.AutoCommit || !gitops.IsRepo(s.dir) {
		return nil
	}
	changed, err := gitops.HasChanges(s.dir)
	if err != nil || !changed {
		return err
	}
	hash, err := gitops.CommitAll(s.dir, message, git.AuthorName, git.AuthorEmail)
	if err != nil {
		return err
	}
	s.log.Debugw("committed", "hash", hash, "message", message)
	return nil
}

// record appends an activity entry and persists the stores when the session
// is backed by a directory.
func (s *Session) record(level activitylog.Level, action, details string, txnID int) error {
	if s.dir == "" {
		return nil
	}
	entry := activitylog.Entry{
		Timestamp:     s.clock().UTC().Truncate(time.Second),
		Level:         level,
		Action:        action,
		Details:       details,
		TransactionID: txnID,
	}
	if err := activitylog.Append(s.dir, []activitylog.Entry{entry}); err != nil {
		return err
	}
	if level == activitylog.LevelError {
		return nil
	}
	if err := s.saveLocked(details); err != nil {
		return fmt.Errorf("saving: %w", err)
	}
	return nil
}

// reject logs a refused operation. Logging problems never mask the original error.
func (s *Session) reject(action string, cause error) error {
	if err := s.record(activitylog.LevelError, action, cause.Error(), 0); err != nil {
		s.log.Warnw("writing activity log", "error", err)
	}
	s.log.Debugw("rejected", "action", action, "error", cause)
	return cause
}

// CategoriesFor lists the categories a new transaction of kind may use:
// the configured income categories for income and the budget categories
// for expenses.
func (s *Session) CategoriesFor(kind model.Kind) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categoriesForLocked(kind)
}

func (s *Session) categoriesForLocked(kind model.Kind) []string {
	if kind == model.KindIncome {
		return slices.Clone(s.cfg.IncomeCategories)
	}
	return s.budgets.Categories()
}

func (s *Session) checkCategoryLocked(kind model.Kind, category string) error {
	category = strings.TrimSpace(category)
	if kind == model.KindIncome {
		if slices.Contains(s.cfg.IncomeCategories, category) {
			return nil
		}
	} else if s.budgets.Exists(category) {
		return nil
	}
	return fmt.Errorf("%w: %q is not a %s category", model.ErrInvalidCategory, category, kind)
}

// AddTransaction validates the category for the transaction kind and stores
// the transaction.
func (s *Session) AddTransaction(params transactions.NewTransaction) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if params.Kind.Valid() {
		if err := s.checkCategoryLocked(params.Kind, params.Category); err != nil {
			return model.Transaction{}, s.reject("add_transaction", err)
		}
	}
	txn, err := s.txns.Add(params)
	if err != nil {
		return model.Transaction{}, s.reject("add_transaction", err)
	}

	s.log.Debugw("transaction added", "id", txn.ID, "kind", txn.Kind, "amount", txn.Amount.String())
	details := fmt.Sprintf("added %s %s (%s)", txn.Kind, format.Currency(txn.Amount, s.cfg.Currency.Symbol), txn.Category)
	return txn, s.record(activitylog.LevelSuccess, "add_transaction", details, txn.ID)
}

// DeleteTransaction removes a transaction. It reports false, with no error,
// when the ID is not present.
func (s *Session) DeleteTransaction(txnID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.txns.Get(txnID)
	if !ok || !s.txns.Remove(txnID) {
		s.log.Debugw("delete of unknown transaction", "id", txnID)
		return false, nil
	}

	details := fmt.Sprintf("deleted transaction #%d (%s)", txn.ID, txn.Description)
	return true, s.record(activitylog.LevelSuccess, "delete_transaction", details, txn.ID)
}

// SetBudgetLimit changes the monthly limit of an existing budget.
func (s *Session) SetBudgetLimit(category string, limit decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.budgets.SetLimit(category, limit); err != nil {
		return s.reject("set_budget", err)
	}
	details := fmt.Sprintf("set %s budget to %s", category, format.Currency(limit, s.cfg.Currency.Symbol))
	return s.record(activitylog.LevelSuccess, "set_budget", details, 0)
}

// Transaction returns one transaction by ID.
func (s *Session) Transaction(txnID int) (model.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.txns.Get(txnID)
	if !ok {
		return model.Transaction{}, fmt.Errorf("%w: #%d", model.ErrNotFound, txnID)
	}
	return txn, nil
}

// BudgetList returns the budgets in declaration order.
func (s *Session) BudgetList() []model.Budget {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.budgets.List()
}

// Activity returns the last n activity entries, or none for an in-memory session.
func (s *Session) Activity(n int) ([]activitylog.Entry, error) {
	s.mu.Lock()
	dir := s.dir
	s.mu.Unlock()
	if dir == "" {
		return nil, nil
	}
	return activitylog.Tail(dir, n)
}

// IsUserError reports whether err is a rejected input rather than an I/O failure.
func IsUserError(err error) bool {
	for _, target := range []error{
		model.ErrInvalidAmount,
		model.ErrInvalidKind,
		model.ErrInvalidCategory,
		model.ErrInvalidTransaction,
		model.ErrUnknownCategory,
		model.ErrInvalidLimit,
		model.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
