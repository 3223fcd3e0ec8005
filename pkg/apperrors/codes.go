package apperrors

type ErrorCode string

const (
	// System
	CodeInternalError      ErrorCode = "INTERNAL_ERROR"
	CodeDatabaseError      ErrorCode = "DATABASE_ERROR"
	CodeInvariantViolation ErrorCode = "INVARIANT_VIOLATION"

	// Business logic
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeAlreadyExists       ErrorCode = "ALREADY_EXISTS"
	CodeValidationFailed    ErrorCode = "VALIDATION_FAILED"
	CodeConflict            ErrorCode = "CONFLICT"
	CodeInvalidStatus       ErrorCode = "INVALID_STATUS"
	CodeInvalidOperation    ErrorCode = "INVALID_OPERATION"
	CodeInsufficientBalance ErrorCode = "INSUFFICIENT_BALANCE"

	// Auth
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
)
