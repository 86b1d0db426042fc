package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fintracker/internal/auth"
	"github.com/mrlokans/fintracker/internal/entities"
)

// AuditReader lists recent audit events. audit.Service satisfies it.
type AuditReader interface {
	GetEvents(accountID uint, limit int) ([]entities.AuditEvent, error)
}

type AuditController struct {
	audit AuditReader
}

func NewAuditController(audit AuditReader) *AuditController {
	return &AuditController{audit: audit}
}

// GetAuditEvents returns the signed-in account's recent authentication events.
// GET /api/audit/events?limit=N
func (ac *AuditController) GetAuditEvents(c *gin.Context) {
	limit := parseLimitQuery(c, 25, 100)

	events, err := ac.audit.GetEvents(auth.GetUserID(c), limit)
	if err != nil {
		respondInternalError(c, err, "audit events")
		return
	}
	if events == nil {
		events = []entities.AuditEvent{}
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"limit":  limit,
	})
}
