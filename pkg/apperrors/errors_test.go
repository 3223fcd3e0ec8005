package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("row not found")
	err := Wrap(cause, CodeNotFound, "users", "User not found", 404)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "User not found")
}

func TestAsUnwrapsNestedAppError(t *testing.T) {
	inner := New(CodeInsufficientBalance, "ledger", "Insufficient balance", 422)

	var appErr *AppError
	require.True(t, As(inner, &appErr))
	assert.Equal(t, 422, appErr.HTTPCode)
}

func TestDomainErrorShapes(t *testing.T) {
	transition := ErrInvalidStateTransition("withdrawals", "already approved")
	assert.Equal(t, CodeInvalidStatus, transition.Code)
	assert.Equal(t, 409, transition.HTTPCode)

	invariant := ErrInvariantViolation("ledger", "pending below reservation")
	assert.Equal(t, CodeInvariantViolation, invariant.Code)
	assert.Equal(t, 500, invariant.HTTPCode)

	transient := ErrTransientStore(errors.New("connection refused"))
	assert.Equal(t, 503, transient.HTTPCode)

	assert.Equal(t, 422, ErrInsufficientBalance.HTTPCode)
	assert.Equal(t, 400, ErrInvalidReferralCode.HTTPCode)
	assert.Equal(t, 400, ErrNoPaymentMethod.HTTPCode)
}

func TestMarshalOmitsInternals(t *testing.T) {
	err := Wrap(errors.New("secret db detail"), CodeDatabaseError, "users", "Something went wrong", 500)

	raw, marshalErr := err.MarshalJSON()
	require.NoError(t, marshalErr)
	assert.NotContains(t, string(raw), "secret db detail")
	assert.Contains(t, string(raw), "Something went wrong")
}
