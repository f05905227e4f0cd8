package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gokatarajesh/quiz-bank/internal/db/repository"
	"github.com/gokatarajesh/quiz-bank/internal/logging"
	"github.com/gokatarajesh/quiz-bank/internal/question"
	"github.com/gokatarajesh/quiz-bank/internal/round"
	httperrors "github.com/gokatarajesh/quiz-bank/pkg/http/errors"
)

type roundHandlers struct {
	svc          *round.Service
	defaultCount int
}

func newRoundHandlers(svc *round.Service, defaultCount int) *roundHandlers {
	return &roundHandlers{svc: svc, defaultCount: defaultCount}
}

type startRoundRequest struct {
	Count         *int            `json:"count"`
	Seed          json.RawMessage `json:"seed"` // integer or numeric string
	CaseSensitive *bool           `json:"case_sensitive"`
}

type roundQuestion struct {
	Position     int               `json:"position"`
	Qnum         int               `json:"qnum"`
	QuestionText string            `json:"question_text"`
	Options      []question.Option `json:"options"`
}

type startRoundResponse struct {
	RoundID       string          `json:"round_id"`
	Seed          *int64          `json:"seed,omitempty"`
	CaseSensitive bool            `json:"case_sensitive"`
	Questions     []roundQuestion `json:"questions"`
}

type answerRequest struct {
	Position int    `json:"position"`
	Answer   string `json:"answer"`
}

type gradeRequest struct {
	Qnum          int    `json:"qnum"`
	Answer        string `json:"answer"`
	CaseSensitive *bool  `json:"case_sensitive"`
}

// start handles POST /v1/rounds
func (h *roundHandlers) start(w http.ResponseWriter, r *http.Request) {
	var req startRoundRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	seed, err := seedFromJSON(req.Seed)
	if err != nil {
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidSeed, err.Error(), "seed")
		return
	}
	count := h.defaultCount
	if req.Count != nil {
		count = *req.Count
	}

	started, err := h.svc.Start(r.Context(), round.StartRequest{
		Count:         count,
		Seed:          seed,
		CaseSensitive: req.CaseSensitive,
	})
	if err != nil {
		respondRoundError(w, r, err)
		return
	}

	resp := startRoundResponse{
		RoundID:       started.Session.ID,
		Seed:          started.Session.Seed,
		CaseSensitive: started.Session.CaseSensitive,
		Questions:     make([]roundQuestion, len(started.Records)),
	}
	for i, rec := range started.Records {
		opts := question.ExtractOptions(rec.QuestionText)
		if opts == nil {
			opts = []question.Option{}
		}
		resp.Questions[i] = roundQuestion{
			Position:     i + 1,
			Qnum:         rec.Qnum,
			QuestionText: rec.QuestionText,
			Options:      opts,
		}
	}
	writeJSON(w, http.StatusCreated, resp)
}

// answer handles POST /v1/rounds/{roundID}/answers
func (h *roundHandlers) answer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	verdict, err := h.svc.Answer(r.Context(), chi.URLParam(r, "roundID"), req.Position, req.Answer)
	if err != nil {
		respondRoundError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, verdict)
}

// summary handles GET /v1/rounds/{roundID}/summary
func (h *roundHandlers) summary(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context(), chi.URLParam(r, "roundID"))
	if err != nil {
		respondRoundError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// grade handles POST /v1/grade
func (h *roundHandlers) grade(w http.ResponseWriter, r *http.Request) {
	var req gradeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	verdict, err := h.svc.Grade(r.Context(), req.Qnum, req.Answer, req.CaseSensitive)
	if err != nil {
		respondRoundError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"qnum":        verdict.Qnum,
		"correct":     verdict.Correct,
		"answer_text": verdict.AnswerText,
	})
}

// seedFromJSON accepts an absent seed, null, a JSON integer, or a string holding one.
func seedFromJSON(raw json.RawMessage) (*int64, error) {
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return nil, nil
	}
	if strings.HasPrefix(text, `"`) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, round.ErrInvalidSeed
		}
		return round.ParseSeed(s)
	}
	return round.ParseSeed(text)
}

func respondRoundError(w http.ResponseWriter, r *http.Request, err error) {
	var oversized *round.OversizedRequestError
	switch {
	case errors.As(err, &oversized):
		httperrors.RespondErrorWithDetails(w, http.StatusUnprocessableEntity, httperrors.ErrCodeOversizedRequest, err.Error(),
			map[string]interface{}{"requested": oversized.Requested, "available": oversized.Available})
	case errors.Is(err, round.ErrEmptyStore):
		httperrors.RespondConflict(w, httperrors.ErrCodeEmptyStore, "the question store is empty; run builddb first")
	case errors.Is(err, round.ErrInvalidCount):
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidCount, err.Error(), "count")
	case errors.Is(err, round.ErrInvalidSeed):
		httperrors.RespondValidationError(w, httperrors.ErrCodeInvalidSeed, err.Error(), "seed")
	case errors.Is(err, round.ErrRoundNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeRoundNotFound, "round not found or expired")
	case errors.Is(err, round.ErrPositionOutOfRange):
		httperrors.RespondValidationError(w, httperrors.ErrCodePositionOutOfRange, err.Error(), "position")
	case errors.Is(err, repository.ErrQuestionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeQuestionNotFound, err.Error())
	default:
		reqLogger := logging.FromContext(r.Context())
		reqLogger.Error().Err(err).Msg("round request failed")
		httperrors.RespondInternalError(w, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
