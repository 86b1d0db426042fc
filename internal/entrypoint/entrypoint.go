package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/fintracker/internal/audit"
	"github.com/mrlokans/fintracker/internal/auth"
	"github.com/mrlokans/fintracker/internal/config"
	"github.com/mrlokans/fintracker/internal/database"
	"github.com/mrlokans/fintracker/internal/database/accounts"
	auditRepo "github.com/mrlokans/fintracker/internal/database/audit"
	"github.com/mrlokans/fintracker/internal/database/transactions"
	http_controllers "github.com/mrlokans/fintracker/internal/http"
	"github.com/mrlokans/fintracker/internal/pages"
	"github.com/mrlokans/fintracker/internal/scheduler"
	"github.com/mrlokans/fintracker/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// kill (no param) sends SIGTERM, kill -2 is SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Stop background work before the listener goes away
	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Fintracker v%s", version)

	db, err := database.NewDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	// Sessions share the application's connection pool
	sqlDB, err := db.SQL()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Database.Driver, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	composer, err := pages.NewComposer(cfg.UI.TemplatesPath, sessionManager)
	if err != nil {
		log.Fatalf("Failed to load templates from %s: %v", cfg.UI.TemplatesPath, err)
	}

	routerCfg := http_controllers.RouterConfig{
		Sessions:      sessionManager,
		Pages:         composer,
		Credentials:   accounts.NewRepository(db.DB),
		Transactions:  transactions.NewRepository(db.DB),
		Database:      db,
		StaticPath:    cfg.UI.StaticPath,
		SecureCookies: cfg.Auth.SecureCookies,
		Version:       version,
	}

	var auditService *audit.Service
	if cfg.Audit.Enabled {
		auditService = audit.NewService(auditRepo.NewRepository(db.DB))
		routerCfg.AuditLogger = auditService
		routerCfg.AuditReader = auditService
		log.Printf("Audit logging enabled (retention: %d days)", cfg.Audit.RetentionDays)
	} else {
		log.Printf("Audit logging disabled")
	}

	// Background work stops with this context
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	var taskClient *tasks.Client
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks.DatabasePath, tasks.Config{
			Workers:         cfg.Tasks.Workers,
			ReleaseAfter:    cfg.Tasks.ReleaseAfter,
			CleanupInterval: cfg.Tasks.CleanupInterval,
		})
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		if auditService != nil {
			taskClient.Register(tasks.NewCleanupAuditEventsQueue(auditService))
		}
		go taskClient.Start(bgCtx)
	}

	if taskClient != nil && auditService != nil {
		retention := scheduler.NewAuditRetentionScheduler(taskClient, cfg.Audit.CleanupSchedule, cfg.Audit.RetentionDays)
		if err := retention.Start(bgCtx); err != nil {
			log.Printf("WARNING: audit retention scheduler not started: %v", err)
		} else {
			routerCfg.RetentionSchedule = retention
		}
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if taskClient != nil {
			taskClient.Stop(ctx)
		}
		bgCancel()
	}

	Serve(router, cfg, onShutdown)
}
