package apperrors

import "net/http"

// Predefined errors for the ledger state machines and account lifecycle.

var ErrInsufficientBalance = New(
	CodeInsufficientBalance,
	"ledger",
	"Insufficient available balance",
	http.StatusUnprocessableEntity,
)

var ErrNoPaymentMethod = New(
	CodeValidationFailed,
	"withdrawal",
	"No payment method on file",
	http.StatusBadRequest,
)

var ErrInvalidReferralCode = New(
	CodeValidationFailed,
	"referral",
	"Referral code does not resolve to a user",
	http.StatusBadRequest,
)

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"account",
	"Email is already registered",
	http.StatusConflict,
)

var ErrUsernameAlreadyExists = New(
	CodeAlreadyExists,
	"account",
	"Username is already taken",
	http.StatusConflict,
)

var ErrAccountNotVerified = New(
	CodeInvalidOperation,
	"account",
	"Account email is not verified",
	http.StatusForbidden,
)

var ErrAccountSuspended = New(
	CodeForbidden,
	"account",
	"Account is suspended",
	http.StatusForbidden,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// ErrNotFound wraps a repository miss into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrInvalidStateTransition reports a state machine violation: the record
// exists but is not in a state the requested transition is defined for.
func ErrInvalidStateTransition(domain, message string) *AppError {
	return New(CodeInvalidStatus, domain, message, http.StatusConflict)
}

// ErrInvariantViolation indicates desynchronized balance bookkeeping. It is a
// fatal internal assertion, never a user input problem; callers must log it
// as critical before surfacing.
func ErrInvariantViolation(domain, message string) *AppError {
	return New(CodeInvariantViolation, domain, message, http.StatusInternalServerError)
}

// ErrTransientStore wraps an unreachable-persistence failure after retries
// are exhausted.
func ErrTransientStore(err error) *AppError {
	return Wrap(err, CodeDatabaseError, "storage", "Storage temporarily unavailable", http.StatusServiceUnavailable)
}
