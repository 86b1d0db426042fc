package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database is reachable. database.Database satisfies it.
type Pinger interface {
	Ping() error
}

// RetentionSchedule reports when audit cleanup runs next.
// scheduler.AuditRetentionScheduler satisfies it.
type RetentionSchedule interface {
	NextRunTime() *time.Time
}

type HealthResponse struct {
	Status           string            `json:"status"`
	Time             string            `json:"time"`
	Version          string            `json:"version,omitempty"`
	Checks           map[string]string `json:"checks"`
	NextAuditCleanup string            `json:"next_audit_cleanup,omitempty"`
}

type HealthController struct {
	db        Pinger
	version   string
	retention RetentionSchedule
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// WithRetentionSchedule adds the next audit cleanup time to the report.
func (h *HealthController) WithRetentionSchedule(schedule RetentionSchedule) *HealthController {
	h.retention = schedule
	return h
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	if h.db != nil {
		if err := h.db.Ping(); err != nil {
			checks["database"] = "error: " + err.Error()
			status = "unhealthy"
		} else {
			checks["database"] = "ok"
		}
	} else {
		checks["database"] = "not configured"
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}
	if h.retention != nil {
		if next := h.retention.NextRunTime(); next != nil {
			health.NextAuditCleanup = next.Format(time.RFC3339)
		}
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}
