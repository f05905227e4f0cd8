package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// Driver names a supported store backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// goose keeps its dialect and base FS in package globals.
var gooseMu sync.Mutex

// MigrationDir returns the embedded migration directory and goose dialect for driver.
func MigrationDir(driver Driver) (dir, dialect string, err error) {
	switch driver {
	case DriverSQLite:
		return "migrations/sqlite", "sqlite3", nil
	case DriverPostgres:
		return "migrations/postgres", "postgres", nil
	default:
		return "", "", fmt.Errorf("unsupported driver: %s", driver)
	}
}

// Migrate applies the embedded schema migrations. It is idempotent.
func Migrate(ctx context.Context, sqlDB *sql.DB, driver Driver, logger zerolog.Logger) error {
	return RunMigrations(ctx, sqlDB, driver, "up", logger)
}

// RunMigrations executes a goose command (up, down, status) against sqlDB.
func RunMigrations(ctx context.Context, sqlDB *sql.DB, driver Driver, command string, logger zerolog.Logger) error {
	dir, dialect, err := MigrationDir(driver)
	if err != nil {
		return err
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "migrations").Logger()})
	goose.SetTableName("goose_db_version")
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case "up":
		err = goose.UpContext(ctx, sqlDB, dir)
	case "down":
		err = goose.DownContext(ctx, sqlDB, dir)
	case "status":
		err = goose.StatusContext(ctx, sqlDB, dir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
	if err != nil {
		return fmt.Errorf("migrate %s: %w", command, err)
	}
	return nil
}

type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(strings.TrimSpace(format), v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}
