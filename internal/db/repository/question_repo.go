package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/gokatarajesh/quiz-bank/internal/question"
)

// ErrQuestionNotFound is returned when a requested qnum is not stored.
var ErrQuestionNotFound = errors.New("question not found")

type questionStore interface {
	UpsertQuestions(ctx context.Context, records []question.Record) error
	CountQuestions(ctx context.Context) (int, error)
	ListQnums(ctx context.Context) ([]int, error)
	GetQuestionsByQnums(ctx context.Context, qnums []int) ([]question.Record, error)
}

// QuestionRepository wraps the question table for the build pass and quiz rounds.
type QuestionRepository struct {
	store questionStore
}

func NewQuestionRepository(store questionStore) *QuestionRepository {
	return &QuestionRepository{store: store}
}

// Upsert inserts records or overwrites them by qnum.
func (r *QuestionRepository) Upsert(ctx context.Context, records []question.Record) error {
	if len(records) == 0 {
		return nil
	}
	return r.store.UpsertQuestions(ctx, records)
}

// Count returns the number of stored questions.
func (r *QuestionRepository) Count(ctx context.Context) (int, error) {
	return r.store.CountQuestions(ctx)
}

// Qnums lists stored question numbers in ascending order.
func (r *QuestionRepository) Qnums(ctx context.Context) ([]int, error) {
	return r.store.ListQnums(ctx)
}

// FetchByQnums returns records in the order of qnums. A qnum missing from the
// store yields ErrQuestionNotFound.
func (r *QuestionRepository) FetchByQnums(ctx context.Context, qnums []int) ([]question.Record, error) {
	rows, err := r.store.GetQuestionsByQnums(ctx, qnums)
	if err != nil {
		return nil, err
	}
	byQnum := make(map[int]question.Record, len(rows))
	for _, row := range rows {
		byQnum[row.Qnum] = row
	}
	out := make([]question.Record, 0, len(qnums))
	for _, n := range qnums {
		rec, ok := byQnum[n]
		if !ok {
			return nil, fmt.Errorf("qnum %d: %w", n, ErrQuestionNotFound)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Get returns a single record by qnum.
func (r *QuestionRepository) Get(ctx context.Context, qnum int) (question.Record, error) {
	recs, err := r.FetchByQnums(ctx, []int{qnum})
	if err != nil {
		return question.Record{}, err
	}
	return recs[0], nil
}
