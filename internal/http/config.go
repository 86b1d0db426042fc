package http

import (
	"github.com/mrlokans/fintracker/internal/auth"
	"github.com/mrlokans/fintracker/internal/pages"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Session store and the page composer that reads it
	Sessions *auth.SessionManager
	Pages    *pages.Composer

	// Credential store behind login and registration
	Credentials auth.CredentialStore

	// Optional: auth events are recorded when set
	AuditLogger auth.AuditLogger
	AuditReader AuditReader

	Transactions TransactionStore
	Database     Pinger

	// Optional: shown on /health when audit cleanup is scheduled
	RetentionSchedule RetentionSchedule

	StaticPath string

	// Adds HSTS when cookies are HTTPS-only
	SecureCookies bool

	// Application info
	Version string
}
