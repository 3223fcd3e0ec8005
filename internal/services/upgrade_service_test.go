package services

import (
	"testing"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpgradeCreate_PricedFromConfig(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "up-create", 0)

	upgrade, err := svc.upgrades.Create(db, user.ID, &dto.CreateUpgradeRequest{Level: 2})
	require.NoError(t, err)
	assert.Equal(t, models.UpgradeStatusPending, upgrade.Status)
	assert.Equal(t, 2, upgrade.Level)
	assert.Equal(t, 5000.0, upgrade.Amount)
}

func TestUpgradeCreate_TargetMustExceedCurrentLevel(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "up-low", 0)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("level", 2).Error)

	_, err := svc.upgrades.Create(db, user.ID, &dto.CreateUpgradeRequest{Level: 2})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestUpgradeCreate_UnknownLevel(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "up-unknown", 0)

	_, err := svc.upgrades.Create(db, user.ID, &dto.CreateUpgradeRequest{Level: 9})
	require.Error(t, err)
}

func TestUpgradeApprove_SetsUserLevel(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "up-approve", 0)

	upgrade, err := svc.upgrades.Create(db, user.ID, &dto.CreateUpgradeRequest{Level: 2})
	require.NoError(t, err)

	require.NoError(t, svc.upgrades.Approve(db, upgrade.ID))

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 2, fresh.Level)
	assert.Equal(t, models.UserStatusActive, fresh.Status)

	stored, err := svc.upgradeRepo.FindByID(db, upgrade.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UpgradeStatusApproved, stored.Status)

	assert.Contains(t, svc.broadcaster.userEvents[user.ID], EventUpgradeUpdate)
	assert.Contains(t, svc.broadcaster.userEvents[user.ID], EventStatusUpdate)
}

func TestUpgradeApprove_TwiceFails(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "up-double", 0)

	upgrade, err := svc.upgrades.Create(db, user.ID, &dto.CreateUpgradeRequest{Level: 2})
	require.NoError(t, err)
	require.NoError(t, svc.upgrades.Approve(db, upgrade.ID))

	err = svc.upgrades.Approve(db, upgrade.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidStatus, appErr.Code)
}

func TestUpgradeReject_LeavesLevelUntouched(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "up-reject", 0)

	upgrade, err := svc.upgrades.Create(db, user.ID, &dto.CreateUpgradeRequest{Level: 2})
	require.NoError(t, err)

	require.NoError(t, svc.upgrades.Reject(db, upgrade.ID))

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 1, fresh.Level)

	stored, err := svc.upgradeRepo.FindByID(db, upgrade.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UpgradeStatusRejected, stored.Status)
}
