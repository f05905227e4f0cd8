package round

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyStore         = errors.New("store contains 0 questions")
	ErrInvalidSeed        = errors.New("invalid seed")
	ErrInvalidCount       = errors.New("invalid question count")
	ErrOversizedRequest   = errors.New("requested more questions than available")
	ErrRoundNotFound      = errors.New("round not found")
	ErrPositionOutOfRange = errors.New("position out of range")
)

// OversizedRequestError reports a round request larger than the store.
type OversizedRequestError struct {
	Requested int
	Available int
}

func (e *OversizedRequestError) Error() string {
	return fmt.Sprintf("requested %d questions, but store only has %d", e.Requested, e.Available)
}

func (e *OversizedRequestError) Unwrap() error {
	return ErrOversizedRequest
}
