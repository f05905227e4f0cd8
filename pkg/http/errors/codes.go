package errors

// Error codes for standardized error responses
const (
	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInvalidSeed    = "invalid_seed"
	ErrCodeInvalidCount   = "invalid_count"
	ErrCodeMissingField   = "missing_field"

	// Round errors
	ErrCodeEmptyStore         = "empty_store"
	ErrCodeOversizedRequest   = "oversized_request"
	ErrCodeRoundNotFound      = "round_not_found"
	ErrCodePositionOutOfRange = "position_out_of_range"

	// Resource errors
	ErrCodeNotFound         = "not_found"
	ErrCodeQuestionNotFound = "question_not_found"

	// Server errors
	ErrCodeInternalError      = "internal_error"
	ErrCodeServiceUnavailable = "service_unavailable"
)
