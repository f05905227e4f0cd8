package errors

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorWithDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithDetails(rec, http.StatusUnprocessableEntity, ErrCodeOversizedRequest, "too many",
		map[string]interface{}{"requested": 5, "available": 2})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeOversizedRequest, body.Error)
	assert.Equal(t, float64(5), body.Details["requested"])
}

func TestRespondValidationErrorIncludesField(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondValidationError(rec, ErrCodeInvalidSeed, "seed must be an integer", "seed")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid_seed","message":"seed must be an integer","field":"seed"}`, rec.Body.String())
}
