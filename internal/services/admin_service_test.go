package services

import (
	"testing"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDeleteUser_RefusedWithOpenWithdrawal(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "del-open-wd", 1000)
	method := createTestPaymentMethod(t, db, user.ID)

	_, err := svc.withdrawals.Create(db, user.ID, &dto.CreateWithdrawalRequest{
		Amount:          100,
		PaymentMethodID: method.ID,
	})
	require.NoError(t, err)

	err = svc.admin.DeleteUser(db, user.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 409, appErr.HTTPCode)

	// Still there.
	reloadUser(t, db, user.ID)
}

func TestAdminDeleteUser_RefusedWithPendingUpgrade(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "del-open-up", 0)
	_, err := svc.upgrades.Create(db, user.ID, &dto.CreateUpgradeRequest{Level: 2})
	require.NoError(t, err)

	err = svc.admin.DeleteUser(db, user.ID)
	require.Error(t, err)
}

func TestAdminDeleteUser_AllowedAfterResolution(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "del-resolved", 1000)
	method := createTestPaymentMethod(t, db, user.ID)

	withdrawal, err := svc.withdrawals.Create(db, user.ID, &dto.CreateWithdrawalRequest{
		Amount:          100,
		PaymentMethodID: method.ID,
	})
	require.NoError(t, err)
	require.NoError(t, svc.withdrawals.Decline(db, withdrawal.ID))

	require.NoError(t, svc.admin.DeleteUser(db, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestAdminSuspendAndActivate(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "susp-cycle", 0)

	require.NoError(t, svc.admin.SuspendUser(db, user.ID))
	assert.Equal(t, models.UserStatusSuspended, reloadUser(t, db, user.ID).Status)

	require.NoError(t, svc.admin.ActivateUser(db, user.ID))
	assert.Equal(t, models.UserStatusActive, reloadUser(t, db, user.ID).Status)

	assert.Contains(t, svc.broadcaster.userEvents[user.ID], EventStatusUpdate)
}

func TestAdminListUsers_FilterAndSearch(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	active := createTestUser(t, db, "list-active", 0)
	suspended := createTestUser(t, db, "list-suspended", 0)
	require.NoError(t, svc.admin.SuspendUser(db, suspended.ID))

	resp, err := svc.admin.ListUsers(db, dto.AdminUserFilter{Status: string(models.UserStatusSuspended)})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, suspended.ID, resp.Users[0].ID)

	resp, err = svc.admin.ListUsers(db, dto.AdminUserFilter{Search: "list-active"})
	require.NoError(t, err)
	require.Equal(t, int64(1), resp.Total)
	assert.Equal(t, active.ID, resp.Users[0].ID)
}

func TestAdminInvite_CreatesVerifiedAdmin(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	profile, err := svc.admin.InviteAdmin(db, dto.InviteAdminRequest{
		Username: "second-admin",
		Email:    "second-admin@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleAdmin, profile.Role)
	assert.True(t, profile.IsVerified)
	assert.Equal(t, models.UserStatusActive, profile.Status)
}

func TestAdminAnnounce_ReachesActiveUsers(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	first := createTestUser(t, db, "ann-one", 0)
	second := createTestUser(t, db, "ann-two", 0)

	count, err := svc.admin.Announce(db, dto.AnnouncementRequest{
		Title:   "Scheduled maintenance",
		Message: "The platform will be briefly unavailable tonight.",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, userID := range []string{first.ID, second.ID} {
		notifications, err := svc.notifications.ListForUser(db, userID, 10, 0)
		require.NoError(t, err)
		require.Len(t, notifications, 1)
		assert.Equal(t, NotificationAnnouncement, notifications[0].Type)
	}
}

func TestDashboardStats(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	rich := createTestUser(t, db, "stats-rich", 700)
	createTestUser(t, db, "stats-poor", 300)
	method := createTestPaymentMethod(t, db, rich.ID)

	_, err := svc.withdrawals.Create(db, rich.ID, &dto.CreateWithdrawalRequest{
		Amount:          200,
		PaymentMethodID: method.ID,
	})
	require.NoError(t, err)

	stats, err := svc.dashboard.Stats(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalUsers)
	assert.Equal(t, 800.0, stats.TotalEarnings) // 500 remaining + 300
	assert.Equal(t, int64(1), stats.PendingWithdrawals)
}
