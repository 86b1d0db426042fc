package auth

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/postgresstore"
	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"

	"github.com/mrlokans/fintracker/internal/config"
	"github.com/mrlokans/fintracker/internal/entities"
	"github.com/mrlokans/fintracker/internal/pages"
)

// Session data keys
const (
	SessionKeyUserID   = "user_id"
	SessionKeyUsername = "username"
)

const DefaultCookieName = "session"

var ErrNoSessionTable = errors.New("failed to create sessions table")

// Session is the identity stored against a session token.
type Session struct {
	Token    string
	UserID   uint
	Username string
}

// SessionStore creates, looks up and destroys the session bound to a request.
// Handlers and guards depend on this rather than on scs directly.
type SessionStore interface {
	CreateSession(r *http.Request, account *entities.Account) error
	CurrentSession(r *http.Request) *Session
	DestroySession(r *http.Request) error
}

// SessionManager wraps scs.SessionManager with application-specific methods.
type SessionManager struct {
	*scs.SessionManager
}

var sessionTableDDL = map[config.DatabaseDriver][]string{
	config.DatabaseDriverSQLite: {
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry)`,
	},
	config.DatabaseDriverPostgres: {
		`CREATE TABLE IF NOT EXISTS sessions (
			token TEXT PRIMARY KEY,
			data BYTEA NOT NULL,
			expiry TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS sessions_expiry_idx ON sessions(expiry)`,
	},
}

// NewSessionManager creates a configured session manager backed by the
// sessions table of the main database.
// The sqlDB parameter should be the underlying *sql.DB from GORM.
func NewSessionManager(sqlDB *sql.DB, driver config.DatabaseDriver, cfg config.Auth) (*SessionManager, error) {
	statements, ok := sessionTableDDL[driver]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrNoSessionTable, driver)
	}
	for _, stmt := range statements {
		if _, err := sqlDB.Exec(stmt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrNoSessionTable, err)
		}
	}

	sm := scs.New()

	switch driver {
	case config.DatabaseDriverPostgres:
		sm.Store = postgresstore.New(sqlDB)
	default:
		sm.Store = sqlite3store.New(sqlDB)
	}

	// Fixed lifetime from login; IdleTimeout stays zero so activity never extends it
	sm.Lifetime = cfg.SessionLifetime

	sm.Cookie.Name = cfg.CookieName
	if sm.Cookie.Name == "" {
		sm.Cookie.Name = DefaultCookieName
	}
	sm.Cookie.HttpOnly = true
	sm.Cookie.Secure = cfg.SecureCookies
	// Lax so the session survives the redirect after the login form post
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Path = "/"
	sm.Cookie.Persist = true

	return &SessionManager{SessionManager: sm}, nil
}

// CreateSession binds the account to the request's session after a
// successful credential match.
func (sm *SessionManager) CreateSession(r *http.Request, account *entities.Account) error {
	// Renew token to prevent session fixation
	if err := sm.RenewToken(r.Context()); err != nil {
		return err
	}

	// Store as int to match GetInt() retrieval
	sm.Put(r.Context(), SessionKeyUserID, int(account.ID))
	sm.Put(r.Context(), SessionKeyUsername, account.Username)

	// Persist now so a store failure reaches the caller before it answers.
	// The response writer commits the same row again later.
	if _, _, err := sm.Commit(r.Context()); err != nil {
		sm.Remove(r.Context(), SessionKeyUserID)
		sm.Remove(r.Context(), SessionKeyUsername)
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// CurrentSession returns nil when the request carries no authenticated session.
func (sm *SessionManager) CurrentSession(r *http.Request) *Session {
	userID := sm.GetInt(r.Context(), SessionKeyUserID)
	if userID <= 0 {
		return nil
	}
	return &Session{
		Token:    sm.Token(r.Context()),
		UserID:   uint(userID),
		Username: sm.GetString(r.Context(), SessionKeyUsername),
	}
}

// DestroySession removes all session data and invalidates the token.
// Destroying a request without a session is not an error.
func (sm *SessionManager) DestroySession(r *http.Request) error {
	return sm.Destroy(r.Context())
}

// AuthState feeds the layout's authentication display.
func (sm *SessionManager) AuthState(r *http.Request) pages.AuthState {
	return authStateOf(sm.CurrentSession(r))
}

func authStateOf(s *Session) pages.AuthState {
	if s == nil {
		return pages.AuthState{}
	}
	return pages.AuthState{IsAuthenticated: true, Username: s.Username}
}
