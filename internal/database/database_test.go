package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fintracker/internal/config"
	"github.com/mrlokans/fintracker/internal/entities"
)

// setupTestDB creates a fresh sqlite database in a temp dir
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewQuietDatabase(config.Database{
		Driver: config.DatabaseDriverSQLite,
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_MigratesTables(t *testing.T) {
	db := setupTestDB(t)

	migrator := db.DB.Migrator()
	assert.True(t, migrator.HasTable(&entities.Account{}))
	assert.True(t, migrator.HasTable(&entities.Transaction{}))
	assert.True(t, migrator.HasTable(&entities.AuditEvent{}))
	assert.Equal(t, config.DatabaseDriverSQLite, db.Driver)
}

func TestDatabase_Ping(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.Ping())

	require.NoError(t, db.Close())
	assert.Error(t, db.Ping())
}

func TestDatabase_SQL(t *testing.T) {
	db := setupTestDB(t)

	sqlDB, err := db.SQL()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestNewDatabase_ConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Database
	}{
		{"unknown driver", config.Database{Driver: "mysql", Path: "x.db"}},
		{"empty sqlite path", config.Database{Driver: config.DatabaseDriverSQLite}},
		{"empty postgres dsn", config.Database{Driver: config.DatabaseDriverPostgres}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewQuietDatabase(tt.cfg)
			assert.Error(t, err)
		})
	}

	_, err := NewQuietDatabase(config.Database{Driver: "mysql"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
