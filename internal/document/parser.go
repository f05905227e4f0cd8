package document

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gokatarajesh/quiz-bank/internal/question"
)

// AnswerMarker separates a block's question segment from its answer segment.
const AnswerMarker = "[+] Answer>"

// ErrMalformedDocument is returned when a document yields no well-formed question blocks.
var ErrMalformedDocument = errors.New("no questions were parsed")

var questionMarkerPattern = regexp.MustCompile(`(?i)^Question\s+(\d+)\s+of\s+(\d+)\s*$`)

// Skip reasons reported in Result.Skipped.
const (
	ReasonMissingAnswerMarker = "missing answer marker"
	ReasonBadQuestionNumber   = "question number out of range"
)

// SkippedBlock describes a question block that produced no record.
type SkippedBlock struct {
	Line   int    // 1-based line of the question marker
	Qnum   int    // zero when the number could not be parsed
	Reason string
}

// Result is the outcome of scanning a document.
type Result struct {
	Records []question.Record
	Skipped []SkippedBlock
}

type state int

const (
	seekingQuestionMarker state = iota
	inQuestion
	inAnswer
)

type block struct {
	line          int
	qnum          int
	badNumber     bool
	questionLines []string
	answerLines   []string
	hasAnswer     bool
	terminated    bool
}

func (b *block) appendAnswer(line string) {
	if b.terminated {
		return
	}
	if isSectionTerminator(line) {
		b.terminated = true
		return
	}
	b.answerLines = append(b.answerLines, line)
}

func (b *block) record() question.Record {
	qLines := trimTrailingBlank(b.questionLines)
	aLines := trimTrailingBlank(b.answerLines)
	value, option := DeriveKeys(aLines)
	return question.Record{
		Qnum:         b.qnum,
		QuestionText: strings.Join(qLines, "\n"),
		AnswerText:   strings.Join(aLines, "\n"),
		AnswerValue:  value,
		AnswerOption: option,
	}
}

// Scan walks paragraph lines and splits them into question blocks. Every
// "Question N of M" line opens a block; lines before the first marker are
// ignored. Blocks without an answer marker are reported in Skipped.
func Scan(lines []string) Result {
	var (
		res Result
		st  = seekingQuestionMarker
		cur *block
	)

	flush := func() {
		if cur == nil {
			return
		}
		switch {
		case cur.badNumber:
			res.Skipped = append(res.Skipped, SkippedBlock{Line: cur.line, Reason: ReasonBadQuestionNumber})
		case !cur.hasAnswer:
			res.Skipped = append(res.Skipped, SkippedBlock{Line: cur.line, Qnum: cur.qnum, Reason: ReasonMissingAnswerMarker})
		default:
			res.Records = append(res.Records, cur.record())
		}
		cur = nil
	}

	for i, line := range lines {
		if m := questionMarkerPattern.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			flush()
			cur = &block{line: i + 1}
			if n, err := strconv.Atoi(m[1]); err == nil {
				cur.qnum = n
			} else {
				cur.badNumber = true
			}
			st = inQuestion
			continue
		}

		switch st {
		case seekingQuestionMarker:
			continue
		case inQuestion:
			idx := strings.Index(line, AnswerMarker)
			if idx < 0 {
				cur.questionLines = append(cur.questionLines, line)
				continue
			}
			cur.hasAnswer = true
			if rest := line[idx+len(AnswerMarker):]; rest != "" {
				cur.appendAnswer(rest)
			}
			st = inAnswer
		case inAnswer:
			cur.appendAnswer(line)
		}
	}
	flush()

	return res
}

// Parse extracts question records from document lines in document order. It
// fails with ErrMalformedDocument when no block is well formed.
func Parse(lines []string) ([]question.Record, error) {
	res := Scan(lines)
	if len(res.Records) == 0 {
		return nil, fmt.Errorf("%w: %d question blocks found, none usable", ErrMalformedDocument, len(res.Skipped))
	}
	return res.Records, nil
}

// isSectionTerminator reports whether line is a run of more than ten '='.
func isSectionTerminator(line string) bool {
	t := strings.TrimSpace(line)
	return len(t) > 10 && strings.Trim(t, "=") == ""
}

func trimTrailingBlank(lines []string) []string {
	end := len(lines)
	for end > 0 && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return lines[:end]
}
