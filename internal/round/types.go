package round

import (
	"time"

	"github.com/gokatarajesh/quiz-bank/internal/grading"
	"github.com/gokatarajesh/quiz-bank/internal/question"
)

// Session is the server-side state of a started round.
type Session struct {
	ID            string                 `json:"id"`
	Seed          *int64                 `json:"seed,omitempty"`
	CaseSensitive bool                   `json:"case_sensitive"`
	Qnums         []int                  `json:"qnums"`
	Results       map[int]grading.Result `json:"results"` // keyed by 1-based position
	StartedAt     time.Time              `json:"started_at"`
}

// StartRequest asks for a new round.
type StartRequest struct {
	Count         int
	Seed          *int64
	CaseSensitive *bool // nil falls back to the service default
}

// Started is a freshly sampled round with its records in draw order.
type Started struct {
	Session Session
	Records []question.Record
}

// Verdict is the outcome of answering one position of a round.
type Verdict struct {
	Position   int    `json:"position"`
	Qnum       int    `json:"qnum"`
	Correct    bool   `json:"correct"`
	AnswerText string `json:"answer_text"`
}
