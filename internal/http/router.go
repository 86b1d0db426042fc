package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fintracker/internal/auth"
)

const hstsMaxAge = 31536000

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware(hstsMaxAge))
	}

	// Load the session before any guard reads it
	router.Use(cfg.Sessions.SessionLoadSave())

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	if cfg.RetentionSchedule != nil {
		health.WithRetentionSchedule(cfg.RetentionSchedule)
	}
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Login, registration and logout
	authController := auth.NewAuthController(auth.NewService(cfg.Credentials), cfg.Sessions, cfg.Pages, cfg.AuditLogger)
	authController.RegisterRoutes(router)

	// UI routes
	pagesController := NewPagesController(cfg.Pages, cfg.Sessions)
	router.GET("/", pagesController.Home)
	router.GET("/summary", auth.Enforce(cfg.Sessions, auth.RequireAuthenticated), pagesController.Summary)

	// JSON API: never redirected, 401 without a session
	api := router.Group("/api", auth.RequireAPISession(cfg.Sessions))

	if cfg.Transactions != nil {
		stats := NewStatsController(cfg.Transactions)
		api.GET("/stats/expenses/yearly", stats.ExpensesYearly)
		api.GET("/stats/income/yearly", stats.IncomeYearly)
		api.GET("/stats/expenses/category", stats.ExpensesByCategory)
		api.POST("/transactions", stats.CreateTransaction)
	}

	if cfg.AuditReader != nil {
		auditController := NewAuditController(cfg.AuditReader)
		api.GET("/audit/events", auditController.GetAuditEvents)
	}

	return router
}
