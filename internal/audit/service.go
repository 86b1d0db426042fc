package audit

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/fintracker/internal/database/audit"
	"github.com/mrlokans/fintracker/internal/entities"
)

// Service provides high-level audit logging for authentication events.
// Writes never fail the request that triggered them.
type Service struct {
	repo  *audit.Repository
	async bool
}

// NewService creates an audit service that writes events in the background.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo, async: true}
}

// NewSyncService creates an audit service that writes events inline.
func NewSyncService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	return s.repo.LogEvent(event)
}

// LogAsync records an audit event in the background (non-blocking).
func (s *Service) LogAsync(event *entities.AuditEvent) {
	go func() {
		if err := s.Log(event); err != nil {
			log.Printf("Failed to log audit event: %v", err)
		}
	}()
}

// LogAuth records a login, logout or registration attempt.
func (s *Service) LogAuth(action entities.AuditAction, accountID uint, username, ipAddr, userAgent string, success bool, reason string) {
	event := &entities.AuditEvent{
		AccountID: accountID,
		Username:  truncate(username, 100),
		Action:    action,
		Status:    entities.AuditStatusSuccess,
		Reason:    truncate(reason, 255),
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
	}

	if !success {
		event.Status = entities.AuditStatusFailed
	}

	if s.async {
		s.LogAsync(event)
		return
	}
	if err := s.Log(event); err != nil {
		log.Printf("Failed to log audit event: %v", err)
	}
}

// GetEvents retrieves the most recent audit events.
func (s *Service) GetEvents(accountID uint, limit int) ([]entities.AuditEvent, error) {
	return s.repo.GetEvents(accountID, limit)
}

// DeleteOldEvents removes events older than the retention period.
func (s *Service) DeleteOldEvents(retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	return s.repo.DeleteOldEvents(cutoff)
}

// truncate shortens a string to max length.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
