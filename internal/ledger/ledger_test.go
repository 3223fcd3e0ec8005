package ledger

import (
	"errors"
	"testing"

	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) Reserve(db *gorm.DB, userID string, amount float64) (bool, error) {
	args := m.Called(db, userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Release(db *gorm.DB, userID string, amount float64) (bool, error) {
	args := m.Called(db, userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Settle(db *gorm.DB, userID string, amount float64) (bool, error) {
	args := m.Called(db, userID, amount)
	return args.Bool(0), args.Error(1)
}

func (m *mockStore) Credit(db *gorm.DB, userID string, amount float64) (bool, error) {
	args := m.Called(db, userID, amount)
	return args.Bool(0), args.Error(1)
}

func TestReserveForWithdrawal_Success(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	store.On("Reserve", mock.Anything, "user-1", 400.0).Return(true, nil)

	err := engine.ReserveForWithdrawal(nil, "user-1", 400)
	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestReserveForWithdrawal_InsufficientBalance(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	store.On("Reserve", mock.Anything, "user-1", 1500.0).Return(false, nil)

	err := engine.ReserveForWithdrawal(nil, "user-1", 1500)
	assert.Error(t, err)

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInsufficientBalance, appErr.Code)
	assert.Equal(t, 422, appErr.HTTPCode)
}

func TestReserveForWithdrawal_NonPositiveAmount(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	assert.Error(t, engine.ReserveForWithdrawal(nil, "user-1", 0))
	assert.Error(t, engine.ReserveForWithdrawal(nil, "user-1", -50))
	store.AssertNotCalled(t, "Reserve")
}

func TestReserveForWithdrawal_StoreError(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	store.On("Reserve", mock.Anything, "user-1", 100.0).Return(false, errors.New("connection reset"))

	err := engine.ReserveForWithdrawal(nil, "user-1", 100)
	assert.Error(t, err)

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInternalError, appErr.Code)
}

func TestReleaseReservation_GuardFailureIsInvariantViolation(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	// Pending below the released amount means reserved funds went missing.
	store.On("Release", mock.Anything, "user-1", 400.0).Return(false, nil)

	err := engine.ReleaseReservation(nil, "user-1", 400)
	assert.Error(t, err)

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvariantViolation, appErr.Code)
	assert.Equal(t, 500, appErr.HTTPCode)
}

func TestReleaseReservation_Success(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	store.On("Release", mock.Anything, "user-1", 400.0).Return(true, nil)

	assert.NoError(t, engine.ReleaseReservation(nil, "user-1", 400))
}

func TestSettleReservation_GuardFailureIsInvariantViolation(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	store.On("Settle", mock.Anything, "user-1", 400.0).Return(false, nil)

	err := engine.SettleReservation(nil, "user-1", 400)
	assert.Error(t, err)

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvariantViolation, appErr.Code)
}

func TestSettleReservation_Success(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	store.On("Settle", mock.Anything, "user-1", 250.0).Return(true, nil)

	assert.NoError(t, engine.SettleReservation(nil, "user-1", 250))
}

func TestCredit_Success(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	store.On("Credit", mock.Anything, "user-1", 25.0).Return(true, nil)

	assert.NoError(t, engine.Credit(nil, "user-1", 25, "task reward"))
}

func TestCredit_UnknownUser(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	store.On("Credit", mock.Anything, "ghost", 25.0).Return(false, nil)

	err := engine.Credit(nil, "ghost", 25, "task reward")
	assert.Error(t, err)

	var appErr *apperrors.AppError
	assert.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestCredit_NonPositiveAmount(t *testing.T) {
	store := new(mockStore)
	engine := NewEngine(store)

	assert.Error(t, engine.Credit(nil, "user-1", 0, "deposit"))
	store.AssertNotCalled(t, "Credit")
}
