package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fintracker/internal/auth"
	"github.com/mrlokans/fintracker/internal/database/transactions"
	"github.com/mrlokans/fintracker/internal/entities"
)

// TransactionStore is what the stats API reads and writes.
// transactions.Repository satisfies it.
type TransactionStore interface {
	Add(ctx context.Context, tx *entities.Transaction) error
	MonthlyTotals(ctx context.Context, accountID uint, kind entities.TransactionKind, year int) ([12]float64, error)
	CategoryTotals(ctx context.Context, accountID uint, kind entities.TransactionKind, month time.Time) ([]transactions.CategoryTotal, error)
}

// YearlyTotalsResponse holds one total per month, January first.
type YearlyTotalsResponse struct {
	Year   int       `json:"year"`
	Totals []float64 `json:"totals"`
}

type CategoryTotalsResponse struct {
	Labels []string  `json:"labels"`
	Totals []float64 `json:"totals"`
}

type CreateTransactionRequest struct {
	Kind       entities.TransactionKind `json:"kind" binding:"required,oneof=expense income"`
	Category   string                   `json:"category" binding:"required,max=100"`
	Amount     float64                  `json:"amount" binding:"required,gt=0"`
	Note       string                   `json:"note" binding:"max=500"`
	OccurredAt *time.Time               `json:"occurred_at"`
}

// StatsController serves the aggregates behind the summary charts.
// Every figure is scoped to the signed-in account.
type StatsController struct {
	store TransactionStore
	now   func() time.Time
}

func NewStatsController(store TransactionStore) *StatsController {
	return &StatsController{store: store, now: time.Now}
}

// ExpensesYearly handles GET /api/stats/expenses/yearly?year=YYYY
func (sc *StatsController) ExpensesYearly(c *gin.Context) {
	sc.yearly(c, entities.TransactionExpense)
}

// IncomeYearly handles GET /api/stats/income/yearly?year=YYYY
func (sc *StatsController) IncomeYearly(c *gin.Context) {
	sc.yearly(c, entities.TransactionIncome)
}

func (sc *StatsController) yearly(c *gin.Context, kind entities.TransactionKind) {
	year, ok := parseYearQuery(c, sc.now())
	if !ok {
		return
	}

	totals, err := sc.store.MonthlyTotals(c.Request.Context(), auth.GetUserID(c), kind, year)
	if err != nil {
		respondInternalError(c, err, "monthly "+string(kind)+" totals")
		return
	}

	c.JSON(http.StatusOK, YearlyTotalsResponse{Year: year, Totals: totals[:]})
}

// ExpensesByCategory handles GET /api/stats/expenses/category?month=YYYY-MM
func (sc *StatsController) ExpensesByCategory(c *gin.Context) {
	month, ok := parseMonthQuery(c, sc.now())
	if !ok {
		return
	}

	rows, err := sc.store.CategoryTotals(c.Request.Context(), auth.GetUserID(c), entities.TransactionExpense, month)
	if err != nil {
		respondInternalError(c, err, "category totals")
		return
	}

	resp := CategoryTotalsResponse{
		Labels: make([]string, 0, len(rows)),
		Totals: make([]float64, 0, len(rows)),
	}
	for _, row := range rows {
		resp.Labels = append(resp.Labels, row.Category)
		resp.Totals = append(resp.Totals, row.Total)
	}
	c.JSON(http.StatusOK, resp)
}

// CreateTransaction handles POST /api/transactions
func (sc *StatsController) CreateTransaction(c *gin.Context) {
	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid transaction: "+err.Error())
		return
	}

	occurredAt := sc.now()
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	tx := &entities.Transaction{
		AccountID:  auth.GetUserID(c),
		Kind:       req.Kind,
		Category:   req.Category,
		Amount:     req.Amount,
		Note:       req.Note,
		OccurredAt: occurredAt.UTC(),
	}
	if err := sc.store.Add(c.Request.Context(), tx); err != nil {
		respondInternalError(c, err, "add transaction")
		return
	}

	c.JSON(http.StatusCreated, tx)
}
