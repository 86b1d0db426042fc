// Package transactions aggregates income and expense records for the
// statistics API.
package transactions

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/fintracker/internal/entities"
)

// CategoryTotal is the summed amount of one category within a period.
type CategoryTotal struct {
	Category string
	Total    float64
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add records a single transaction.
func (r *Repository) Add(ctx context.Context, tx *entities.Transaction) error {
	if err := r.db.WithContext(ctx).Create(tx).Error; err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}
	return nil
}

// MonthlyTotals sums the account's transactions of the given kind for each
// month of the year. Index 0 is January.
func (r *Repository) MonthlyTotals(ctx context.Context, accountID uint, kind entities.TransactionKind, year int) ([12]float64, error) {
	var totals [12]float64

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	// Bucketed in Go: month extraction differs between sqlite and postgres
	var rows []entities.Transaction
	err := r.db.WithContext(ctx).
		Select("amount", "occurred_at").
		Where("account_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?", accountID, kind, start, end).
		Find(&rows).Error
	if err != nil {
		return totals, fmt.Errorf("failed to load %s totals for %d: %w", kind, year, err)
	}

	for _, row := range rows {
		totals[row.OccurredAt.UTC().Month()-1] += row.Amount
	}
	return totals, nil
}

// CategoryTotals sums the account's transactions of the given kind per
// category for the calendar month containing month, largest first.
func (r *Repository) CategoryTotals(ctx context.Context, accountID uint, kind entities.TransactionKind, month time.Time) ([]CategoryTotal, error) {
	start := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var totals []CategoryTotal
	err := r.db.WithContext(ctx).
		Model(&entities.Transaction{}).
		Select("category, SUM(amount) AS total").
		Where("account_id = ? AND kind = ? AND occurred_at >= ? AND occurred_at < ?", accountID, kind, start, end).
		Group("category").
		Order("total DESC, category ASC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load category totals for %s: %w", start.Format("2006-01"), err)
	}
	return totals, nil
}
