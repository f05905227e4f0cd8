package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // driver: sqlite

	"github.com/gokatarajesh/quiz-bank/internal/question"
)

const upsertSQLite = `
INSERT INTO questions (qnum, question_text, answer_text, answer_value, answer_option)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT(qnum) DO UPDATE SET
    question_text=excluded.question_text,
    answer_text=excluded.answer_text,
    answer_value=excluded.answer_value,
    answer_option=excluded.answer_option`

// SQLiteStore persists question records in a single-file SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path, applies pragmas
// and brings the schema up to date.
func OpenSQLite(ctx context.Context, path string, logger zerolog.Logger) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite: store path is required")
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// Single writer; keep the pool tiny to avoid busy errors.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA busy_timeout = 5000;",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.ExecContext(ctx, p); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("sqlite: pragma %q: %w", p, err)
		}
	}

	if err := Migrate(ctx, sqlDB, DriverSQLite, logger); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return &SQLiteStore{db: sqlDB}, nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Ping checks the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// UpsertQuestions inserts records or overwrites them by qnum in one transaction.
func (s *SQLiteStore) UpsertQuestions(ctx context.Context, records []question.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertSQLite)
	if err != nil {
		return fmt.Errorf("sqlite: prepare upsert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.ExecContext(ctx, r.Qnum, r.QuestionText, r.AnswerText, nullString(r.AnswerValue), nullString(r.AnswerOption)); err != nil {
			return fmt.Errorf("sqlite: upsert qnum %d: %w", r.Qnum, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: commit: %w", err)
	}
	return nil
}

// CountQuestions returns the number of stored records.
func (s *SQLiteStore) CountQuestions(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count: %w", err)
	}
	return n, nil
}

// ListQnums returns every stored qnum in ascending order.
func (s *SQLiteStore) ListQnums(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT qnum FROM questions ORDER BY qnum`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list qnums: %w", err)
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// GetQuestionsByQnums fetches the records for qnums in no particular order.
func (s *SQLiteStore) GetQuestionsByQnums(ctx context.Context, qnums []int) ([]question.Record, error) {
	if len(qnums) == 0 {
		return nil, nil
	}
	args := make([]interface{}, len(qnums))
	for i, n := range qnums {
		args[i] = n
	}
	query := fmt.Sprintf(`SELECT qnum, question_text, answer_text, answer_value, answer_option
		FROM questions WHERE qnum IN (%s)`, strings.TrimSuffix(strings.Repeat("?,", len(qnums)), ","))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: fetch questions: %w", err)
	}
	defer rows.Close()

	var out []question.Record
	for rows.Next() {
		var (
			r             question.Record
			value, option sql.NullString
		)
		if err := rows.Scan(&r.Qnum, &r.QuestionText, &r.AnswerText, &value, &option); err != nil {
			return nil, err
		}
		r.AnswerValue = fromNull(value)
		r.AnswerOption = fromNull(option)
		out = append(out, r)
	}
	return out, rows.Err()
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func fromNull(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
