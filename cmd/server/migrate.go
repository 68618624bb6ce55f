package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/orgsite-blog/internal/config"
	"github.com/orgsite-blog/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|goto N]",
	Short: "Apply or roll back PostgreSQL schema migrations",
	Long: `Runs the embedded schema migrations against DATABASE_URL.

  up       apply all pending migrations
  down     roll back the last migration
  goto N   migrate up or down to version N

MongoDB needs no migrations; its indexes are created when the server starts.`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: []string{"up", "down", "goto"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	driver, err := cfg.Database.Driver()
	if err != nil {
		return err
	}
	if driver != config.DriverPostgres {
		return fmt.Errorf("migrations only apply to PostgreSQL, DATABASE_URL uses %s", driver)
	}

	log := newLogger(cfg, os.Stderr)
	db, err := database.New(cmd.Context(), &cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	switch args[0] {
	case "up":
		return db.RunMigrations()
	case "down":
		return db.MigrateDown()
	case "goto":
		if len(args) != 2 {
			return fmt.Errorf("goto requires a target version")
		}
		version, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		return db.MigrateToVersion(uint(version))
	default:
		return fmt.Errorf("unknown migrate action %q", args[0])
	}
}
