package config

// Default paths for databases
const (
	// DefaultDatabasePath is the default path for the main application database
	DefaultDatabasePath = "./fintracker.db"

	// DefaultTasksDatabasePath is where the background task queue keeps its state
	DefaultTasksDatabasePath = "./fintracker-tasks.db"
)
