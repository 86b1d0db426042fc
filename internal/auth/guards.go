package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	LoginPath   = "/login"
	LandingPath = "/summary"
	RootPath    = "/"
)

// Context keys for session identity
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
)

// Decision is the outcome of a guard: let the request through, or redirect.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Guard decides on a request given its session (nil when anonymous).
// Guards must not have side effects.
type Guard func(session *Session) Decision

// RequireAuthenticated lets through requests that carry a session and sends
// everyone else to the login page.
func RequireAuthenticated(session *Session) Decision {
	if session == nil {
		return Decision{RedirectTo: LoginPath}
	}
	return Decision{Allow: true}
}

// RequireAnonymous is the inverse: signed-in visitors go to the landing page.
func RequireAnonymous(session *Session) Decision {
	if session != nil {
		return Decision{RedirectTo: LandingPath}
	}
	return Decision{Allow: true}
}

// Enforce evaluates guard before the route handler runs. A denied request
// gets a bare 302 and the chain stops there.
func Enforce(store SessionStore, guard Guard) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := store.CurrentSession(c.Request)
		decision := guard(session)
		if !decision.Allow {
			c.Redirect(http.StatusFound, decision.RedirectTo)
			c.Abort()
			return
		}
		setSessionContext(c, session)
		c.Next()
	}
}

// RequireAPISession is RequireAuthenticated for JSON endpoints: API clients
// get a 401 instead of a redirect.
func RequireAPISession(store SessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := store.CurrentSession(c.Request)
		if !RequireAuthenticated(session).Allow {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		setSessionContext(c, session)
		c.Next()
	}
}

func setSessionContext(c *gin.Context, session *Session) {
	if session == nil {
		return
	}
	c.Set(ContextKeyUserID, session.UserID)
	c.Set(ContextKeyUsername, session.Username)
}

// GetUserID retrieves the session's user ID from the context.
// Returns 0 if no guard stored one.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetUsername retrieves the session's username from the context.
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}
