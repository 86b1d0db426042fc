package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/fintracker/internal/config"
	"github.com/mrlokans/fintracker/internal/database"
)

func setupHealthTestDB(t *testing.T) *database.Database {
	t.Helper()

	db, err := database.NewQuietDatabase(config.Database{
		Driver: config.DatabaseDriverSQLite,
		Path:   filepath.Join(t.TempDir(), "health.db"),
	})
	require.NoError(t, err)
	return db
}

func getHealth(t *testing.T, controller *HealthController) (*httptest.ResponseRecorder, HealthResponse) {
	t.Helper()
	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return w, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when database is connected", func(t *testing.T) {
		db := setupHealthTestDB(t)
		defer db.Close()

		w, response := getHealth(t, NewHealthController(db, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Contains(t, response.Time, "T")
	})

	t.Run("reports missing database", func(t *testing.T) {
		w, response := getHealth(t, NewHealthController(nil, "1.0.0"))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db := setupHealthTestDB(t)
		require.NoError(t, db.Close())

		w, response := getHealth(t, NewHealthController(db, "1.0.0"))

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
	})

	t.Run("omits empty version", func(t *testing.T) {
		router := gin.New()
		router.GET("/health", NewHealthController(nil, "").Status)

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.NotContains(t, w.Body.String(), "version")
	})
}

type fixedSchedule struct {
	next *time.Time
}

func (f fixedSchedule) NextRunTime() *time.Time {
	return f.next
}

func TestHealthController_RetentionSchedule(t *testing.T) {
	t.Run("reports the next cleanup", func(t *testing.T) {
		next := time.Date(2025, 3, 15, 3, 0, 0, 0, time.UTC)
		controller := NewHealthController(nil, "1.0.0").WithRetentionSchedule(fixedSchedule{next: &next})

		_, response := getHealth(t, controller)
		assert.Equal(t, "2025-03-15T03:00:00Z", response.NextAuditCleanup)
	})

	t.Run("stopped scheduler is omitted", func(t *testing.T) {
		controller := NewHealthController(nil, "1.0.0").WithRetentionSchedule(fixedSchedule{})

		w, response := getHealth(t, controller)
		assert.Empty(t, response.NextAuditCleanup)
		assert.NotContains(t, w.Body.String(), "next_audit_cleanup")
	})
}
