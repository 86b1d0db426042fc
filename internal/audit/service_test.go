package audit

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	auditRepo "github.com/mrlokans/fintracker/internal/database/audit"
	"github.com/mrlokans/fintracker/internal/entities"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "audit.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.AuditEvent{})
	require.NoError(t, err)

	return db
}

func TestService_Log(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSyncService(auditRepo.NewRepository(db))

	event := &entities.AuditEvent{
		AccountID: 1,
		Action:    entities.AuditActionLogin,
		Status:    entities.AuditStatusSuccess,
	}

	err := svc.Log(event)
	require.NoError(t, err)
	assert.Len(t, event.EventID, 36)

	var saved entities.AuditEvent
	err = db.First(&saved, event.ID).Error
	require.NoError(t, err)
	assert.Equal(t, entities.AuditActionLogin, saved.Action)
}

func TestService_LogAuth(t *testing.T) {
	t.Run("failed login", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewSyncService(auditRepo.NewRepository(db))

		svc.LogAuth(entities.AuditActionLogin, 0, "alice", "10.0.0.1", "curl/8.0", false, "invalid credentials")

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ?", entities.AuditActionLogin).First(&event).Error)
		assert.Equal(t, entities.AuditStatusFailed, event.Status)
		assert.Equal(t, "alice", event.Username)
		assert.Equal(t, "10.0.0.1", event.IPAddress)
		assert.Equal(t, "invalid credentials", event.Reason)
		assert.Zero(t, event.AccountID)
	})

	t.Run("long user agent is truncated", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewSyncService(auditRepo.NewRepository(db))

		svc.LogAuth(entities.AuditActionRegister, 7, "bob", "", strings.Repeat("a", 600), true, "")

		var event entities.AuditEvent
		require.NoError(t, db.First(&event).Error)
		assert.Len(t, event.UserAgent, 500)
		assert.True(t, strings.HasSuffix(event.UserAgent, "..."))
		assert.Equal(t, entities.AuditStatusSuccess, event.Status)
	})

	t.Run("async write lands eventually", func(t *testing.T) {
		db := setupTestDB(t)
		svc := NewService(auditRepo.NewRepository(db))

		svc.LogAuth(entities.AuditActionLogout, 3, "carol", "", "", true, "")

		assert.Eventually(t, func() bool {
			var count int64
			db.Model(&entities.AuditEvent{}).Where("action = ?", entities.AuditActionLogout).Count(&count)
			return count == 1
		}, 2*time.Second, 20*time.Millisecond)
	})
}

func TestService_DeleteOldEvents(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSyncService(auditRepo.NewRepository(db))

	require.NoError(t, svc.Log(&entities.AuditEvent{Action: entities.AuditActionLogin, CreatedAt: time.Now().AddDate(0, 0, -45)}))
	require.NoError(t, svc.Log(&entities.AuditEvent{Action: entities.AuditActionLogin, CreatedAt: time.Now()}))

	deleted, err := svc.DeleteOldEvents(30 * 24 * time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, err := svc.GetEvents(0, 10)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
