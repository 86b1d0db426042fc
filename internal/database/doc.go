// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup (sqlite or postgres), migrations
//	├── accounts/        # Credential store: lookup by credentials, registration
//	├── transactions/    # Income/expense aggregation for the stats API
//	└── audit/           # Authentication audit trail and retention
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	accountsRepo := accounts.NewRepository(db.DB)
//	account, err := accountsRepo.FindByCredentials(ctx, "alice", "secret")
//
// Unique constraint violations are translated by gorm (TranslateError) so
// repositories can report them as typed errors regardless of the driver.
package database
