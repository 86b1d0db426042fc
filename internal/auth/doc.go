// Package auth provides session-based login, registration and logout.
//
// Sessions live server-side in the sessions table of the main database
// (scs with the sqlite3 or postgres store). The cookie only carries the
// opaque token. A session has a fixed lifetime from login and is never
// extended by activity.
//
// # Configuration
//
//	AUTH_SESSION_LIFETIME=720h  # Fixed session window (30 days)
//	AUTH_SECURE_COOKIES=true    # HTTPS-only cookies
//	AUTH_COOKIE_NAME=session
//
// # Usage
//
// Routes are gated by guards evaluated before the handler runs:
//
//	router.Use(sessionManager.SessionLoadSave())
//	router.GET("/summary", auth.Enforce(sessionManager, auth.RequireAuthenticated), handler)
//
// Extract the session identity in guarded handlers:
//
//	userID := auth.GetUserID(c)
package auth
