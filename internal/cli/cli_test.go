package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fintracker/internal/auth"
	"github.com/mrlokans/fintracker/internal/config"
	"github.com/mrlokans/fintracker/internal/database"
	"github.com/mrlokans/fintracker/internal/database/accounts"
	auditRepo "github.com/mrlokans/fintracker/internal/database/audit"
	"github.com/mrlokans/fintracker/internal/entities"
)

func testDatabaseConfig(t *testing.T) config.Database {
	t.Helper()
	return config.Database{
		Driver: config.DatabaseDriverSQLite,
		Path:   filepath.Join(t.TempDir(), "cli.db"),
	}
}

func openTestDatabase(t *testing.T, cfg config.Database) *database.Database {
	t.Helper()
	db, err := database.NewQuietDatabase(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCreateAccountCommand_ParseFlags(t *testing.T) {
	cmd := NewCreateAccountCommand(testDatabaseConfig(t))
	err := cmd.ParseFlags([]string{"-username", "alice", "-email", "alice@example.com", "-password", "secretX"})
	require.NoError(t, err)

	assert.Equal(t, "alice", cmd.Username)
	assert.Equal(t, "alice", cmd.Name, "name falls back to the username")
	assert.Equal(t, "secretX", cmd.Password)
}

func TestCreateAccountCommand_ParseFlagsRequiresCredentials(t *testing.T) {
	cmd := NewCreateAccountCommand(testDatabaseConfig(t))
	err := cmd.ParseFlags([]string{"-username", "alice"})
	assert.Error(t, err)
}

func TestCreateAccountCommand_Run(t *testing.T) {
	dbCfg := testDatabaseConfig(t)

	var out bytes.Buffer
	cmd := NewCreateAccountCommand(dbCfg)
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{
		"-username", "alice", "-name", "Alice", "-email", "alice@example.com", "-password", "secretX",
	}))
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), auth.MsgRegistered)

	db := openTestDatabase(t, dbCfg)
	account, err := accounts.NewRepository(db.DB).FindByCredentials(context.Background(), "alice", "secretX")
	require.NoError(t, err)
	assert.Equal(t, "Alice", account.Name)
}

func TestCreateAccountCommand_RunDuplicate(t *testing.T) {
	dbCfg := testDatabaseConfig(t)

	first := NewCreateAccountCommand(dbCfg)
	first.Out = &bytes.Buffer{}
	require.NoError(t, first.ParseFlags([]string{"-username", "bob", "-email", "b@x.com", "-password", "pw"}))
	require.NoError(t, first.Run())

	second := NewCreateAccountCommand(dbCfg)
	second.Out = &bytes.Buffer{}
	require.NoError(t, second.ParseFlags([]string{"-username", "robert", "-email", "b@x.com", "-password", "pw"}))
	err := second.Run()
	assert.ErrorIs(t, err, auth.ErrAlreadyRegistered)

	db := openTestDatabase(t, dbCfg)
	count, err := accounts.NewRepository(db.DB).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCleanupAuditCommand_ParseFlags(t *testing.T) {
	cmd := NewCleanupAuditCommand(testDatabaseConfig(t), 30)
	require.NoError(t, cmd.ParseFlags(nil))
	assert.Equal(t, 30, cmd.Days)

	require.NoError(t, cmd.ParseFlags([]string{"-days", "7"}))
	assert.Equal(t, 7, cmd.Days)

	assert.Error(t, cmd.ParseFlags([]string{"-days", "0"}))
}

func TestCleanupAuditCommand_Run(t *testing.T) {
	dbCfg := testDatabaseConfig(t)

	db := openTestDatabase(t, dbCfg)
	repo := auditRepo.NewRepository(db.DB)
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventID:   "old",
		Action:    entities.AuditActionLogin,
		Status:    entities.AuditStatusSuccess,
		CreatedAt: time.Now().Add(-10 * 24 * time.Hour),
	}))
	require.NoError(t, repo.LogEvent(&entities.AuditEvent{
		EventID: "recent",
		Action:  entities.AuditActionLogout,
		Status:  entities.AuditStatusSuccess,
	}))

	var out bytes.Buffer
	cmd := NewCleanupAuditCommand(dbCfg, 7)
	cmd.Out = &out
	require.NoError(t, cmd.Run())
	assert.Contains(t, out.String(), "Deleted 1 audit events older than 7 days")

	events, err := repo.GetEvents(0, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "recent", events[0].EventID)
}
