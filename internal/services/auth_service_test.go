package services

import (
	"testing"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignup_CreatesPendingUser(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	profile, err := svc.auth.Signup(db, dto.SignupRequest{
		Username: "newcomer",
		Email:    "Newcomer@Example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserStatusPending, profile.Status)
	assert.False(t, profile.IsVerified)
	assert.Equal(t, 1, profile.Level)
	assert.NotEmpty(t, profile.ReferralCode)

	// Email is normalized to lower case.
	assert.Equal(t, "newcomer@example.com", profile.Email)

	stored := reloadUser(t, db, profile.ID)
	assert.NotEmpty(t, stored.VerificationToken)
}

func TestSignup_DuplicateEmailFails(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	createTestUser(t, db, "taken", 0)

	_, err := svc.auth.Signup(db, dto.SignupRequest{
		Username: "someone-else",
		Email:    "taken@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestSignup_WithReferralCode(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	referrer := createTestUser(t, db, "referrer", 0)

	profile, err := svc.auth.Signup(db, dto.SignupRequest{
		Username:     "referred",
		Email:        "referred@example.com",
		Password:     "password123",
		ReferralCode: referrer.ReferralCode,
	})
	require.NoError(t, err)

	// Referrer counters updated in the signup transaction.
	freshReferrer := reloadUser(t, db, referrer.ID)
	assert.Equal(t, 1, freshReferrer.Invites)
	assert.Equal(t, 1000.0, freshReferrer.ReferralBonus)
	// The bonus is display-only, never spendable balance.
	assert.Equal(t, 0.0, freshReferrer.BalanceAvailable)

	referrals, err := svc.referrals.ListForUser(db, referrer.ID)
	require.NoError(t, err)
	require.Len(t, referrals, 1)
	assert.Equal(t, profile.ID, referrals[0].ReferredUserID)

	stored := reloadUser(t, db, profile.ID)
	assert.Equal(t, referrer.ID, stored.ReferredBy)
}

func TestSignup_UnknownReferralCodeFails(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	_, err := svc.auth.Signup(db, dto.SignupRequest{
		Username:     "hopeful",
		Email:        "hopeful@example.com",
		Password:     "password123",
		ReferralCode: "no-such-code",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidReferralCode)

	// The signup is rejected outright, no user row.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "hopeful@example.com").Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestVerifyEmail_ActivatesAccount(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	profile, err := svc.auth.Signup(db, dto.SignupRequest{
		Username: "verifyme",
		Email:    "verifyme@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	stored := reloadUser(t, db, profile.ID)
	verified, err := svc.auth.VerifyEmail(db, stored.VerificationToken)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)
	assert.Equal(t, models.UserStatusVerified, verified.Status)

	// The registration deposit is credited on verification, recorded as a
	// completed deposit transaction.
	fresh := reloadUser(t, db, profile.ID)
	assert.Equal(t, 100.0, fresh.BalanceAvailable)
	assert.Empty(t, fresh.VerificationToken)

	transactions, err := svc.users.Transactions(db, profile.ID)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, models.TransactionTypeDeposit, transactions[0].Type)
	assert.Equal(t, 100.0, transactions[0].Amount)

	_, err = svc.auth.VerifyEmail(db, "bogus-token")
	require.Error(t, err)
}

func TestLogin_RequiresVerification(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	_, err := svc.auth.Signup(db, dto.SignupRequest{
		Username: "unverified",
		Email:    "unverified@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.auth.Login(db, dto.LoginRequest{
		Email:    "unverified@example.com",
		Password: "password123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotVerified)
}

func TestLogin_Success(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "login-ok", 0)

	resp, err := svc.auth.Login(db, dto.LoginRequest{
		Email:    user.Email,
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "login-bad", 0)

	_, err := svc.auth.Login(db, dto.LoginRequest{
		Email:    user.Email,
		Password: "not-the-password",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown accounts produce the same error as wrong passwords.
	_, err = svc.auth.Login(db, dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_SuspendedAccountRejected(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "login-suspended", 0)
	require.NoError(t, svc.admin.SuspendUser(db, user.ID))

	_, err := svc.auth.Login(db, dto.LoginRequest{
		Email:    user.Email,
		Password: "password123",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAccountSuspended)
}
