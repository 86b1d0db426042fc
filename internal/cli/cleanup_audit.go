package cli

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/mrlokans/fintracker/internal/audit"
	"github.com/mrlokans/fintracker/internal/config"
	"github.com/mrlokans/fintracker/internal/database"
	auditRepo "github.com/mrlokans/fintracker/internal/database/audit"
)

// CleanupAuditCommand deletes old audit events right away, bypassing the
// task queue.
type CleanupAuditCommand struct {
	Days     int
	Database config.Database
	Out      io.Writer
}

func NewCleanupAuditCommand(dbCfg config.Database, retentionDays int) *CleanupAuditCommand {
	return &CleanupAuditCommand{Days: retentionDays, Database: dbCfg, Out: os.Stdout}
}

func (cmd *CleanupAuditCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("cleanup-audit", flag.ExitOnError)

	fs.IntVar(&cmd.Days, "days", cmd.Days, "Delete events older than this many days")
	fs.StringVar(&cmd.Database.Path, "db", cmd.Database.Path, "Path to the SQLite database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s cleanup-audit [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Delete authentication audit events past the retention window.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Days <= 0 {
		fs.Usage()
		return fmt.Errorf("days must be positive, got %d", cmd.Days)
	}

	return nil
}

func (cmd *CleanupAuditCommand) Run() error {
	db, err := database.NewQuietDatabase(cmd.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	service := audit.NewSyncService(auditRepo.NewRepository(db.DB))
	deleted, err := service.DeleteOldEvents(time.Duration(cmd.Days) * 24 * time.Hour)
	if err != nil {
		return fmt.Errorf("failed to delete audit events: %w", err)
	}

	fmt.Fprintf(cmd.Out, "Deleted %d audit events older than %d days\n", deleted, cmd.Days)
	return nil
}
