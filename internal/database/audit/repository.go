package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/fintracker/internal/entities"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// GetEvents retrieves audit events for an account, most recent first.
// accountID 0 returns events for every account.
func (r *Repository) GetEvents(accountID uint, limit int) ([]entities.AuditEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	query := r.db.Model(&entities.AuditEvent{})
	if accountID > 0 {
		query = query.Where("account_id = ?", accountID)
	}

	var events []entities.AuditEvent
	err := query.Order("created_at DESC").Limit(limit).Find(&events).Error
	return events, err
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
