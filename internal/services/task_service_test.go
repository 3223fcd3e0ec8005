package services

import (
	"testing"
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestTask(t *testing.T, db *gorm.DB, title string, reward float64, minLevel int) *models.Task {
	t.Helper()

	task := &models.Task{
		Title:    title,
		Reward:   reward,
		MinLevel: minLevel,
	}
	require.NoError(t, db.Create(task).Error)
	return task
}

func TestTaskComplete_CreditsReward(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-credit", 100)
	task := createTestTask(t, db, "Watch the daily video", 25, 1)

	completion, err := svc.tasks.Complete(db, user.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, 25.0, completion.Reward)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 125.0, fresh.BalanceAvailable)
	assert.Equal(t, 1, fresh.TasksCompleted)
	assert.Equal(t, time.Now().Format("2006-01-02"), fresh.LastTaskDate)

	var stored models.Task
	require.NoError(t, db.First(&stored, "id = ?", task.ID).Error)
	assert.Equal(t, 1, stored.Completions)

	assert.Contains(t, svc.broadcaster.userEvents[user.ID], EventTaskUpdate)
	assert.Contains(t, svc.broadcaster.userEvents[user.ID], EventBalanceUpdate)
}

func TestTaskComplete_OncePerDay(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-daily", 0)
	first := createTestTask(t, db, "First task", 10, 1)
	second := createTestTask(t, db, "Second task", 10, 1)

	_, err := svc.tasks.Complete(db, user.ID, first.ID)
	require.NoError(t, err)

	_, err = svc.tasks.Complete(db, user.ID, second.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDailyTaskDone)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 10.0, fresh.BalanceAvailable)
	assert.Equal(t, 1, fresh.TasksCompleted)
}

func TestRecordTaskCompletion_GuardBlocksSameDay(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-guard", 0)
	today := time.Now().Format("2006-01-02")

	ok, err := svc.userRepo.RecordTaskCompletion(db, user.ID, today)
	require.NoError(t, err)
	assert.True(t, ok)

	// Second writer for the same day loses on the conditional update even
	// though it never saw the first one's write.
	ok, err = svc.userRepo.RecordTaskCompletion(db, user.ID, today)
	require.NoError(t, err)
	assert.False(t, ok)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 1, fresh.TasksCompleted)
	assert.Equal(t, today, fresh.LastTaskDate)
}

func TestTaskComplete_SuspendedUserRejected(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-suspended", 100)
	task := createTestTask(t, db, "Any task", 10, 1)
	require.NoError(t, svc.userRepo.UpdateStatus(db, user.ID, models.UserStatusSuspended))

	_, err := svc.tasks.Complete(db, user.ID, task.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAccountSuspended)

	fresh := reloadUser(t, db, user.ID)
	assert.Equal(t, 100.0, fresh.BalanceAvailable)
	assert.Equal(t, 0, fresh.TasksCompleted)
}

func TestTaskComplete_UnverifiedUserRejected(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-unverified", 0)
	task := createTestTask(t, db, "Any task", 10, 1)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"is_verified": false, "status": models.UserStatusPending}).Error)

	_, err := svc.tasks.Complete(db, user.ID, task.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrAccountNotVerified)
}

func TestTaskComplete_YesterdayDoesNotBlock(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-yesterday", 0)
	yesterday := time.Now().AddDate(0, 0, -1).Format("2006-01-02")
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).
		Update("last_task_date", yesterday).Error)

	task := createTestTask(t, db, "Fresh day task", 15, 1)

	_, err := svc.tasks.Complete(db, user.ID, task.ID)
	require.NoError(t, err)
}

func TestTaskComplete_LevelGate(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-level", 0)
	task := createTestTask(t, db, "High tier task", 100, 3)

	_, err := svc.tasks.Complete(db, user.ID, task.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 403, appErr.HTTPCode)
}

func TestTaskComplete_ArchivedTaskHidden(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-archived", 0)
	task := createTestTask(t, db, "Retired task", 10, 1)
	require.NoError(t, svc.tasks.SetArchived(db, task.ID, true))

	_, err := svc.tasks.Complete(db, user.ID, task.ID)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 404, appErr.HTTPCode)
}

func TestTaskListForUser_FiltersByLevelAndArchive(t *testing.T) {
	db := testDB(t)
	svc := newTestServices()

	user := createTestUser(t, db, "task-list", 0)
	createTestTask(t, db, "Level 1 task", 10, 1)
	createTestTask(t, db, "Level 3 task", 50, 3)
	archived := createTestTask(t, db, "Archived task", 10, 1)
	require.NoError(t, svc.tasks.SetArchived(db, archived.ID, true))

	tasks, err := svc.tasks.ListForUser(db, user.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Level 1 task", tasks[0].Title)
}
