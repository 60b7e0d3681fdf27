// Package server exposes a session as a JSON feed for chart renderers and
// other front ends. Amounts are sent both as raw decimals and as display
// strings.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/activitylog"
	"github.com/cleared-dev/myfinances/internal/config"
	"github.com/cleared-dev/myfinances/internal/model"
	"github.com/cleared-dev/myfinances/internal/report"
	"github.com/cleared-dev/myfinances/internal/session"
	"github.com/cleared-dev/myfinances/internal/transactions"
)

// Finances is the part of a session the feed needs.
type Finances interface {
	Now() time.Time
	Currency() model.Currency
	Dashboard(ref time.Time) session.Dashboard
	Budgets(ref time.Time) session.BudgetView
	Trend(ref time.Time, months int) report.Series
	Transactions(f report.Filter) []model.Transaction
	Transaction(id int) (model.Transaction, error)
	Categories() []string
	CategoriesFor(kind model.Kind) []string
	BudgetList() []model.Budget
	AddTransaction(params transactions.NewTransaction) (model.Transaction, error)
	DeleteTransaction(id int) (bool, error)
	SetBudgetLimit(category string, limit decimal.Decimal) error
	Activity(n int) ([]activitylog.Entry, error)
}

// NewRouter builds the gin engine serving the /api routes.
func NewRouter(fin Finances, cfg config.ServerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogging())
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowHeaders:  []string{"Origin", "Content-Type"},
			ExposeHeaders: []string{"X-Request-ID"},
			MaxAge:        12 * time.Hour,
		}))
	}

	h := &handler{fin: fin}
	api := r.Group("/api")
	api.GET("/health", h.health)
	api.GET("/dashboard", h.dashboard)
	api.GET("/transactions", h.listTransactions)
	api.GET("/transactions/:id", h.getTransaction)
	api.POST("/transactions", h.createTransaction)
	api.DELETE("/transactions/:id", h.deleteTransaction)
	api.GET("/categories", h.categories)
	api.GET("/budgets", h.listBudgets)
	api.PUT("/budgets/:category", h.setBudget)
	api.GET("/reports/trend", h.trend)
	api.GET("/reports/budgets", h.budgetReport)
	api.GET("/activity", h.activity)
	return r
}

// Server runs the feed over HTTP.
type Server struct {
	http *http.Server
}

// New creates a Server listening on addr.
func New(addr string, handler http.Handler) *Server {
	return &Server{http: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

// Addr returns the listen address.
func (s *Server) Addr() string { return s.http.Addr }

// ListenAndServe blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) ListenAndServe() error {
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serving on %s: %w", s.http.Addr, err)
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
