package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/feedbackboard/backend/config"
	"github.com/feedbackboard/backend/internal/database"
	"github.com/feedbackboard/backend/internal/logging"
)

func main() {
	// Parse command line flags
	down := flag.Bool("down", false, "Roll back migrations instead of applying them")
	steps := flag.Int("steps", 1, "Number of migrations to roll back with -down; 0 rolls back everything")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg)

	if cfg.DBDriver != config.DriverPostgres {
		log.Fatalf("migrations are only versioned for postgres; %s schemas are created on startup", cfg.DBDriver)
	}

	if *down {
		if err := database.MigrateDown(cfg.PostgresURL(), *steps, log); err != nil {
			log.Fatalf("Rollback failed: %v", err)
		}
		log.WithField("steps", *steps).Info("Rollback complete")
		return
	}

	if err := database.MigrateUp(cfg.PostgresURL(), log); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
}
