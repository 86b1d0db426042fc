package entities

import "time"

type AuditAction string

const (
	AuditActionLogin    AuditAction = "login"
	AuditActionLogout   AuditAction = "logout"
	AuditActionRegister AuditAction = "register"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one authentication transition.
type AuditEvent struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	EventID   string      `gorm:"uniqueIndex;size:36" json:"event_id"`
	AccountID uint        `gorm:"index" json:"account_id"` // 0 when no account matched
	Username  string      `gorm:"size:100" json:"username"`
	Action    AuditAction `gorm:"index;size:50" json:"action"`
	Status    AuditStatus `gorm:"size:20" json:"status"`
	Reason    string      `gorm:"size:255" json:"reason,omitempty"`
	IPAddress string      `gorm:"size:45" json:"ip_address,omitempty"`
	UserAgent string      `gorm:"size:500" json:"user_agent,omitempty"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
