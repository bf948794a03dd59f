// Command migrate applies the database schema. Production deploys run this
// explicitly instead of relying on startup auto-migration.
package main

import (
	"os"

	"devconnect/internal/config"
	"devconnect/internal/database"
	"devconnect/internal/middleware"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		middleware.Logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		middleware.Logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		middleware.Logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	middleware.Logger.Info("migration completed")
}
