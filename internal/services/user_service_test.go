package services

import (
	"testing"

	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserBalance_ReportsAllComponents(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "bal-view", 1000)
	method := createTestPaymentMethod(t, db, user.ID)

	_, err := svc.withdrawals.Create(db, user.ID, &dto.CreateWithdrawalRequest{
		Amount:          250,
		PaymentMethodID: method.ID,
	})
	require.NoError(t, err)

	balance, err := svc.users.Balance(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 750.0, balance.Available)
	assert.Equal(t, 250.0, balance.Pending)
	assert.Equal(t, 0.0, balance.ReferralBonus)
	assert.Equal(t, 1, balance.Level)
}

func TestPaymentMethods_CRUD(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "pm-crud", 0)

	method, err := svc.users.AddPaymentMethod(db, user.ID, dto.CreatePaymentMethodRequest{
		Label:   "bank",
		Details: map[string]any{"bank": "GTBank", "account": "0123456789"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, method.ID)

	methods, err := svc.users.ListPaymentMethods(db, user.ID)
	require.NoError(t, err)
	require.Len(t, methods, 1)

	require.NoError(t, svc.users.RemovePaymentMethod(db, user.ID, method.ID))

	methods, err = svc.users.ListPaymentMethods(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, methods)
}

func TestRemovePaymentMethod_OnlyOwner(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	owner := createTestUser(t, db, "pm-owner", 0)
	stranger := createTestUser(t, db, "pm-stranger", 0)
	method := createTestPaymentMethod(t, db, owner.ID)

	err := svc.users.RemovePaymentMethod(db, stranger.ID, method.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)

	methods, err := svc.users.ListPaymentMethods(db, owner.ID)
	require.NoError(t, err)
	assert.Len(t, methods, 1)
}

func TestUserProfile_UnknownUser(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	_, err := svc.users.Profile(db, "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}
