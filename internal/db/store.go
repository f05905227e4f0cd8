package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-bank/internal/question"
)

// Store is the flat question table shared by the build pass and quiz rounds.
type Store interface {
	UpsertQuestions(ctx context.Context, records []question.Record) error
	CountQuestions(ctx context.Context) (int, error)
	ListQnums(ctx context.Context) ([]int, error)
	GetQuestionsByQnums(ctx context.Context, qnums []int) ([]question.Record, error)
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// Options selects and locates a store backend.
type Options struct {
	Driver      Driver
	SQLitePath  string
	PostgresDSN string
}

// Open connects to the configured backend and ensures the schema exists.
func Open(ctx context.Context, opts Options, logger zerolog.Logger) (Store, error) {
	switch opts.Driver {
	case DriverSQLite, "":
		return OpenSQLite(ctx, opts.SQLitePath, logger)
	case DriverPostgres:
		return OpenPostgres(ctx, opts.PostgresDSN, logger)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", opts.Driver)
	}
}

// OpenSQL opens a plain database/sql handle for tooling such as the migrator.
// No migrations are applied.
func OpenSQL(ctx context.Context, opts Options) (*sql.DB, error) {
	var (
		sqlDB *sql.DB
		err   error
	)
	switch opts.Driver {
	case DriverSQLite, "":
		sqlDB, err = sql.Open("sqlite", opts.SQLitePath)
	case DriverPostgres:
		sqlDB, err = sql.Open("pgx", opts.PostgresDSN)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", opts.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", opts.Driver, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", opts.Driver, err)
	}
	return sqlDB, nil
}
