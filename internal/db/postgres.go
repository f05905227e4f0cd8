package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-bank/internal/question"
)

const upsertPostgres = `
INSERT INTO questions (qnum, question_text, answer_text, answer_value, answer_option)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (qnum) DO UPDATE SET
    question_text = EXCLUDED.question_text,
    answer_text = EXCLUDED.answer_text,
    answer_value = EXCLUDED.answer_value,
    answer_option = EXCLUDED.answer_option`

// PostgresStore persists question records in Postgres through a pgx pool.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to Postgres and brings the schema up to date.
func OpenPostgres(ctx context.Context, connString string, logger zerolog.Logger) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()
	if err := Migrate(ctx, sqlDB, DriverPostgres, logger); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

// Ping checks the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// UpsertQuestions inserts records or overwrites them by qnum in one batch.
func (s *PostgresStore) UpsertQuestions(ctx context.Context, records []question.Record) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, r := range records {
			batch.Queue(upsertPostgres, r.Qnum, r.QuestionText, r.AnswerText, r.AnswerValue, r.AnswerOption)
		}
		br := tx.SendBatch(ctx, batch)
		for _, r := range records {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("upsert qnum %d: %w", r.Qnum, err)
			}
		}
		return br.Close()
	})
}

// CountQuestions returns the number of stored records.
func (s *PostgresStore) CountQuestions(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// ListQnums returns every stored qnum in ascending order.
func (s *PostgresStore) ListQnums(ctx context.Context) ([]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT qnum FROM questions ORDER BY qnum`)
	if err != nil {
		return nil, fmt.Errorf("list qnums: %w", err)
	}
	return pgx.CollectRows(rows, pgx.RowTo[int])
}

// GetQuestionsByQnums fetches the records for qnums in no particular order.
func (s *PostgresStore) GetQuestionsByQnums(ctx context.Context, qnums []int) ([]question.Record, error) {
	if len(qnums) == 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx, `SELECT qnum, question_text, answer_text, answer_value, answer_option
		FROM questions WHERE qnum = ANY($1)`, qnums)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (question.Record, error) {
		var r question.Record
		err := row.Scan(&r.Qnum, &r.QuestionText, &r.AnswerText, &r.AnswerValue, &r.AnswerOption)
		return r, err
	})
}
