package round

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-bank/internal/db/repository"
	"github.com/gokatarajesh/quiz-bank/internal/grading"
	"github.com/gokatarajesh/quiz-bank/internal/metrics"
	"github.com/gokatarajesh/quiz-bank/internal/question"
)

// Service samples rounds from the question store and tracks their answers.
type Service struct {
	repo          *repository.QuestionRepository
	sessions      SessionStore
	caseSensitive bool
	logger        zerolog.Logger
	now           func() time.Time
}

type ServiceOptions struct {
	// CaseSensitive is the grading policy used when a round does not pick one.
	CaseSensitive bool
}

func NewService(repo *repository.QuestionRepository, sessions SessionStore, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		repo:          repo,
		sessions:      sessions,
		caseSensitive: opts.CaseSensitive,
		logger:        logger.With().Str("component", "round").Logger(),
		now:           time.Now,
	}
}

// SampleRound draws count records reproducibly from seed; a nil seed draws
// from clock entropy.
func (s *Service) SampleRound(ctx context.Context, count int, seed *int64) ([]question.Record, error) {
	return s.SampleRoundWith(ctx, NewRand(seed), count)
}

// SampleRoundWith draws count distinct records using rng and returns them in draw order.
func (s *Service) SampleRoundWith(ctx context.Context, rng *rand.Rand, count int) ([]question.Record, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count questions: %w", err)
	}
	if total == 0 {
		return nil, ErrEmptyStore
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, count)
	}
	if count > total {
		return nil, &OversizedRequestError{Requested: count, Available: total}
	}

	qnums, err := s.repo.Qnums(ctx)
	if err != nil {
		return nil, fmt.Errorf("list qnums: %w", err)
	}
	if count > len(qnums) {
		return nil, &OversizedRequestError{Requested: count, Available: len(qnums)}
	}

	chosen, err := Sample(rng, qnums, count)
	if err != nil {
		return nil, err
	}
	return s.repo.FetchByQnums(ctx, chosen)
}

// Start samples a round and persists its session so answers can be graded later.
func (s *Service) Start(ctx context.Context, req StartRequest) (Started, error) {
	records, err := s.SampleRound(ctx, req.Count, req.Seed)
	if err != nil {
		return Started{}, err
	}

	caseSensitive := s.caseSensitive
	if req.CaseSensitive != nil {
		caseSensitive = *req.CaseSensitive
	}

	sess := Session{
		ID:            uuid.NewString(),
		Seed:          req.Seed,
		CaseSensitive: caseSensitive,
		Qnums:         make([]int, len(records)),
		Results:       map[int]grading.Result{},
		StartedAt:     s.now().UTC(),
	}
	for i, r := range records {
		sess.Qnums[i] = r.Qnum
	}

	if err := s.sessions.Save(ctx, sess); err != nil {
		return Started{}, fmt.Errorf("save round: %w", err)
	}

	metrics.RoundsStarted.WithLabelValues(metrics.Seeded(req.Seed)).Inc()
	s.logger.Info().Str("round_id", sess.ID).Int("count", len(records)).Bool("seeded", req.Seed != nil).Msg("round started")

	return Started{Session: sess, Records: records}, nil
}

// Answer grades answer for the 1-based position of a round and records the
// result. Answering a position again replaces the earlier result.
func (s *Service) Answer(ctx context.Context, roundID string, position int, answer string) (Verdict, error) {
	sess, err := s.sessions.Load(ctx, roundID)
	if err != nil {
		return Verdict{}, err
	}
	if position < 1 || position > len(sess.Qnums) {
		return Verdict{}, fmt.Errorf("%w: %d not in 1..%d", ErrPositionOutOfRange, position, len(sess.Qnums))
	}

	qnum := sess.Qnums[position-1]
	rec, err := s.repo.Get(ctx, qnum)
	if err != nil {
		return Verdict{}, err
	}

	correct := grading.Grade(answer, rec, sess.CaseSensitive)
	metrics.AnswersGraded.WithLabelValues(metrics.Verdict(correct)).Inc()

	result := grading.Result{
		Position: position,
		Qnum:     qnum,
		Answer:   answer,
		Correct:  correct,
	}
	if err := s.sessions.RecordResult(ctx, roundID, result); err != nil {
		return Verdict{}, fmt.Errorf("record answer: %w", err)
	}

	return Verdict{
		Position:   position,
		Qnum:       qnum,
		Correct:    correct,
		AnswerText: rec.AnswerText,
	}, nil
}

// Summary aggregates the answered positions of a round in position order.
func (s *Service) Summary(ctx context.Context, roundID string) (grading.Summary, error) {
	sess, err := s.sessions.Load(ctx, roundID)
	if err != nil {
		return grading.Summary{}, err
	}
	results := make([]grading.Result, 0, len(sess.Results))
	for _, r := range sess.Results {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool { return results[i].Position < results[j].Position })
	return grading.Summarize(results), nil
}

// Grade grades answer against the stored record for qnum without a round.
func (s *Service) Grade(ctx context.Context, qnum int, answer string, caseSensitive *bool) (Verdict, error) {
	rec, err := s.repo.Get(ctx, qnum)
	if err != nil {
		return Verdict{}, err
	}
	cs := s.caseSensitive
	if caseSensitive != nil {
		cs = *caseSensitive
	}
	correct := grading.Grade(answer, rec, cs)
	metrics.AnswersGraded.WithLabelValues(metrics.Verdict(correct)).Inc()
	return Verdict{Qnum: qnum, Correct: correct, AnswerText: rec.AnswerText}, nil
}
