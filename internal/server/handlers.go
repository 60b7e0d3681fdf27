package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/myfinances/internal/buildinfo"
	"github.com/cleared-dev/myfinances/internal/format"
	"github.com/cleared-dev/myfinances/internal/model"
	"github.com/cleared-dev/myfinances/internal/report"
	"github.com/cleared-dev/myfinances/internal/transactions"
)

type handler struct {
	fin Finances
}

type transactionJSON struct {
	ID            int             `json:"id"`
	Date          string          `json:"date"`
	DateDisplay   string          `json:"date_display"`
	Kind          model.Kind      `json:"kind"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amount_display"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Source        string          `json:"source"`
}

type amountJSON struct {
	Value   decimal.Decimal `json:"value"`
	Display string          `json:"display"`
}

func (h *handler) amount(d decimal.Decimal) amountJSON {
	return amountJSON{Value: d, Display: format.Currency(d, h.fin.Currency().Symbol)}
}

func (h *handler) transaction(t model.Transaction) transactionJSON {
	return transactionJSON{
		ID:            t.ID,
		Date:          t.Date.Format(format.ISODate),
		DateDisplay:   format.Date(t.Date),
		Kind:          t.Kind,
		Amount:        t.Amount,
		AmountDisplay: format.Signed(t.Amount, t.Kind, h.fin.Currency().Symbol),
		Category:      t.Category,
		Description:   t.Description,
		Source:        t.Source,
	}
}

func (h *handler) transactionList(txns []model.Transaction) []transactionJSON {
	out := make([]transactionJSON, len(txns))
	for i, t := range txns {
		out[i] = h.transaction(t)
	}
	return out
}

// asOf reads the optional as_of query parameter, defaulting to now.
func (h *handler) asOf(c *gin.Context) (time.Time, error) {
	raw := c.Query("as_of")
	if raw == "" {
		return h.fin.Now(), nil
	}
	t, err := format.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: as_of must be YYYY-MM-DD", errInvalidInput)
	}
	return t, nil
}

func parseID(c *gin.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid id %q", errInvalidInput, c.Param("id"))
	}
	return id, nil
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": buildinfo.Version})
}

func (h *handler) dashboard(c *gin.Context) {
	ref, err := h.asOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	d := h.fin.Dashboard(ref)

	byCategory := make([]gin.H, len(d.ExpenseByCategory))
	for i, ct := range d.ExpenseByCategory {
		byCategory[i] = gin.H{"category": ct.Category, "amount": h.amount(ct.Amount)}
	}

	c.JSON(http.StatusOK, gin.H{
		"as_of":    ref.Format(format.ISODate),
		"month":    format.MonthLabel(ref),
		"currency": d.Currency,
		"totals": gin.H{
			"income":   h.amount(d.Totals.Income),
			"expenses": h.amount(d.Totals.Expenses),
			"savings":  h.amount(d.Totals.Savings),
			"balance":  h.amount(d.Totals.Balance),
		},
		"income_vs_expenses": gin.H{
			"labels": []string{"Income", "Expenses"},
			"values": []decimal.Decimal{d.Totals.Income, d.Totals.Expenses},
		},
		"expense_by_category": byCategory,
		"recent":              h.transactionList(d.Recent),
	})
}

func (h *handler) listTransactions(c *gin.Context) {
	f := report.Filter{
		Kind:     model.Kind(c.Query("kind")),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	if f.Kind != "" && !f.Kind.Valid() {
		respondWithError(c, fmt.Errorf("%w: %q", model.ErrInvalidKind, f.Kind))
		return
	}
	txns := h.fin.Transactions(f)
	c.JSON(http.StatusOK, gin.H{
		"transactions": h.transactionList(txns),
		"count":        len(txns),
	})
}

func (h *handler) getTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	txn, err := h.fin.Transaction(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"transaction": h.transaction(txn)})
}

type createTransactionRequest struct {
	Date        string           `json:"date"`
	Kind        model.Kind       `json:"kind" binding:"required"`
	Amount      *decimal.Decimal `json:"amount" binding:"required"`
	Category    string           `json:"category" binding:"required"`
	Description string           `json:"description"`
	Source      string           `json:"source"`
}

func (h *handler) createTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, fmt.Errorf("%w: %v", errInvalidInput, err))
		return
	}

	date := h.fin.Now()
	if strings.TrimSpace(req.Date) != "" {
		d, err := format.ParseDate(req.Date)
		if err != nil {
			respondWithError(c, fmt.Errorf("%w: date must be YYYY-MM-DD", errInvalidInput))
			return
		}
		date = d
	}

	txn, err := h.fin.AddTransaction(transactions.NewTransaction{
		Date:        date,
		Amount:      *req.Amount,
		Kind:        req.Kind,
		Category:    req.Category,
		Description: req.Description,
		Source:      req.Source,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"transaction": h.transaction(txn)})
}

func (h *handler) deleteTransaction(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	removed, err := h.fin.DeleteTransaction(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	if !removed {
		respondWithError(c, fmt.Errorf("%w: #%d", model.ErrNotFound, id))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) categories(c *gin.Context) {
	kind := model.Kind(c.Query("kind"))
	switch {
	case kind == "":
		c.JSON(http.StatusOK, gin.H{"categories": h.fin.Categories()})
	case kind.Valid():
		c.JSON(http.StatusOK, gin.H{"categories": h.fin.CategoriesFor(kind)})
	default:
		respondWithError(c, fmt.Errorf("%w: %q", model.ErrInvalidKind, kind))
	}
}

func (h *handler) listBudgets(c *gin.Context) {
	bs := h.fin.BudgetList()
	out := make([]gin.H, len(bs))
	for i, b := range bs {
		out[i] = gin.H{"category": b.Category, "icon": b.Icon, "limit": h.amount(b.Limit)}
	}
	c.JSON(http.StatusOK, gin.H{"budgets": out})
}

type setBudgetRequest struct {
	Limit *decimal.Decimal `json:"limit" binding:"required"`
}

func (h *handler) setBudget(c *gin.Context) {
	var req setBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, fmt.Errorf("%w: %v", model.ErrInvalidLimit, err))
		return
	}
	category := c.Param("category")
	if err := h.fin.SetBudgetLimit(category, *req.Limit); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": category, "limit": h.amount(*req.Limit)})
}

func (h *handler) trend(c *gin.Context) {
	ref, err := h.asOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	months := 0
	if raw := c.Query("months"); raw != "" {
		months, err = strconv.Atoi(raw)
		if err != nil || months < 1 || months > 120 {
			respondWithError(c, fmt.Errorf("%w: months must be between 1 and 120", errInvalidInput))
			return
		}
	}
	c.JSON(http.StatusOK, h.fin.Trend(ref, months))
}

func (h *handler) budgetReport(c *gin.Context) {
	ref, err := h.asOf(c)
	if err != nil {
		respondWithError(c, err)
		return
	}
	v := h.fin.Budgets(ref)

	items := make([]gin.H, len(v.Utilization))
	for i, u := range v.Utilization {
		items[i] = gin.H{
			"category":   u.Category,
			"icon":       u.Icon,
			"spent":      h.amount(u.Spent),
			"limit":      h.amount(u.Limit),
			"percentage": u.Percentage.Round(1),
			"ratio":      u.Ratio.Round(1),
			"status":     u.Status,
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"as_of":      ref.Format(format.ISODate),
		"budgets":    items,
		"comparison": v.Comparison,
	})
}

func (h *handler) activity(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondWithError(c, fmt.Errorf("%w: limit must be a positive integer", errInvalidInput))
			return
		}
		limit = n
	}
	entries, err := h.fin.Activity(limit)
	if err != nil {
		respondWithError(c, err)
		return
	}
	out := make([]gin.H, len(entries))
	for i, e := range entries {
		out[i] = gin.H{
			"timestamp":      e.Timestamp,
			"level":          e.Level,
			"action":         e.Action,
			"details":        e.Details,
			"transaction_id": e.TransactionID,
		}
	}
	c.JSON(http.StatusOK, gin.H{"activity": out})
}
