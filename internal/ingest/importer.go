package ingest

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/quiz-bank/internal/db/repository"
	"github.com/gokatarajesh/quiz-bank/internal/document"
	"github.com/gokatarajesh/quiz-bank/internal/metrics"
	"github.com/gokatarajesh/quiz-bank/internal/question"
)

// Report summarizes one import.
type Report struct {
	Imported int
	Skipped  []document.SkippedBlock
	Records  []question.Record
}

// Importer runs the build pass: read a document, extract records, upsert them.
type Importer struct {
	repo   *repository.QuestionRepository
	logger zerolog.Logger
}

func NewImporter(repo *repository.QuestionRepository, logger zerolog.Logger) *Importer {
	return &Importer{
		repo:   repo,
		logger: logger.With().Str("component", "ingest").Logger(),
	}
}

// ImportFile parses the document at path and upserts its records. A document
// with no usable question block fails with document.ErrMalformedDocument and
// leaves the store untouched.
func (i *Importer) ImportFile(ctx context.Context, path string) (Report, error) {
	lines, err := document.ReadLines(path)
	if err != nil {
		return Report{}, err
	}
	return i.ImportLines(ctx, lines)
}

// ImportLines is ImportFile over already-read paragraph lines.
func (i *Importer) ImportLines(ctx context.Context, lines []string) (Report, error) {
	res := document.Scan(lines)
	for _, sk := range res.Skipped {
		metrics.BlocksSkipped.WithLabelValues(sk.Reason).Inc()
		i.logger.Debug().Int("line", sk.Line).Int("qnum", sk.Qnum).Str("reason", sk.Reason).Msg("question block skipped")
	}
	if len(res.Records) == 0 {
		return Report{Skipped: res.Skipped}, fmt.Errorf("%w: %d question blocks found, none usable", document.ErrMalformedDocument, len(res.Skipped))
	}

	if err := i.BuildStore(ctx, res.Records); err != nil {
		return Report{Skipped: res.Skipped}, err
	}

	i.logger.Info().Int("imported", len(res.Records)).Int("skipped", len(res.Skipped)).Msg("document imported")
	return Report{Imported: len(res.Records), Skipped: res.Skipped, Records: res.Records}, nil
}

// BuildStore upserts records by qnum. Running it again with the same records
// leaves the store unchanged.
func (i *Importer) BuildStore(ctx context.Context, records []question.Record) error {
	if err := i.repo.Upsert(ctx, records); err != nil {
		return fmt.Errorf("upsert questions: %w", err)
	}
	metrics.RecordsImported.Add(float64(len(records)))
	return nil
}
