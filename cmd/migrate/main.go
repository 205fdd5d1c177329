package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"budgettracker/internal/database"
	"budgettracker/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

const usage = "usage: migrate <up [N]|down [N]|version|force V>"

// migrator is the part of *migrate.Migrate the commands drive.
type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
}

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(os.Args[1:]); err != nil {
		logger.Get().Fatalf("Migration error: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}

	cfg, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}
	if cfg.Driver != database.DriverPostgres {
		return fmt.Errorf("SQL migrations target postgres; %s schemas are migrated by the api on startup", cfg.Driver)
	}

	m, err := migrate.New(cfg.MigrationsSource(), cfg.MigrateURL())
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	return execute(m, args)
}

// execute runs one command against m. up without a count applies every
// pending migration; down without a count rolls back one.
func execute(m migrator, args []string) error {
	log := logger.Get()

	switch args[0] {
	case "up":
		if len(args) > 1 {
			n, err := stepCount(args[1])
			if err != nil {
				return err
			}
			if err := ignoreNoChange(m.Steps(n)); err != nil {
				return fmt.Errorf("migration up failed: %w", err)
			}
			log.Infow("Migrations applied", "steps", n)
			return nil
		}
		if err := ignoreNoChange(m.Up()); err != nil {
			return fmt.Errorf("migration up failed: %w", err)
		}
		log.Info("Schema is up to date")

	case "down":
		n := 1
		if len(args) > 1 {
			var err error
			if n, err = stepCount(args[1]); err != nil {
				return err
			}
		}
		if err := ignoreNoChange(m.Steps(-n)); err != nil {
			return fmt.Errorf("migration down failed: %w", err)
		}
		log.Infow("Migrations rolled back", "steps", n)

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			log.Info("No migration applied yet")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get version: %w", err)
		}
		log.Infow("Schema version", "version", version, "dirty", dirty)

	case "force":
		if len(args) < 2 {
			return errors.New(usage)
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", args[1], err)
		}
		if err := m.Force(version); err != nil {
			return fmt.Errorf("force failed: %w", err)
		}
		log.Infow("Schema version forced", "version", version)

	default:
		return fmt.Errorf("unknown command %q; %s", args[0], usage)
	}

	return nil
}

func stepCount(raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid step count %q", raw)
	}
	return n, nil
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}
