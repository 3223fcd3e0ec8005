package services

import (
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/ledger"
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"gorm.io/gorm"
)

// ErrDailyTaskDone is returned when the user already completed a task today.
var ErrDailyTaskDone = apperrors.New(
	apperrors.CodeConflict, "tasks", "Daily task already completed, come back tomorrow", 409,
)

type TaskService interface {
	// ListForUser returns active tasks at or below the user's level.
	ListForUser(db *gorm.DB, userID string) ([]models.Task, error)
	// Complete credits the reward and records the completion. One task per
	// calendar day per user.
	Complete(db *gorm.DB, userID, taskID string) (*models.TaskCompletion, error)

	ListAll(db *gorm.DB) ([]models.Task, error)
	Create(db *gorm.DB, req dto.CreateTaskRequest) (*models.Task, error)
	SetArchived(db *gorm.DB, taskID string, archived bool) error
}

type taskService struct {
	taskRepo    repositories.TaskRepository
	userRepo    repositories.UserRepository
	engine      *ledger.Engine
	dashboard   DashboardService
	broadcaster Broadcaster
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	userRepo repositories.UserRepository,
	engine *ledger.Engine,
	dashboard DashboardService,
	broadcaster Broadcaster,
) TaskService {
	return &taskService{
		taskRepo:    taskRepo,
		userRepo:    userRepo,
		engine:      engine,
		dashboard:   dashboard,
		broadcaster: broadcaster,
	}
}

func (s *taskService) ListForUser(db *gorm.DB, userID string) ([]models.Task, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	tasks, err := s.taskRepo.FindActiveForLevel(db, user.Level)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tasks, nil
}

func (s *taskService) Complete(db *gorm.DB, userID, taskID string) (*models.TaskCompletion, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := requireActiveAccount(user); err != nil {
		return nil, err
	}

	today := time.Now().Format("2006-01-02")
	if user.LastTaskDate == today {
		return nil, ErrDailyTaskDone
	}

	task, err := s.taskRepo.FindByID(db, taskID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if task.Archived {
		return nil, apperrors.ErrNotFound(repositories.ErrTaskNotFound)
	}
	if task.MinLevel > user.Level {
		return nil, apperrors.NewForbiddenError("Task requires a higher level")
	}

	completion := &models.TaskCompletion{
		TaskID: task.ID,
		UserID: userID,
		Reward: task.Reward,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		// The guarded update is the gate of record. The LastTaskDate check
		// above is only a fast path; a concurrent completion that committed
		// after our read loses here, before any money moves.
		ok, err := s.userRepo.RecordTaskCompletion(tx, userID, today)
		if err != nil {
			return err
		}
		if !ok {
			return ErrDailyTaskDone
		}
		if err := s.engine.Credit(tx, userID, task.Reward, "task reward"); err != nil {
			return err
		}
		if err := s.taskRepo.IncrementCompletions(tx, task.ID); err != nil {
			return err
		}
		return s.taskRepo.CreateCompletion(tx, completion)
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	s.broadcaster.BroadcastToUser(userID, EventTaskUpdate, map[string]any{
		"task_id":         task.ID,
		"reward":          task.Reward,
		"tasks_completed": user.TasksCompleted + 1,
	})
	s.broadcaster.BroadcastToUser(userID, EventBalanceUpdate, dto.BalanceResponse{
		Available:     user.BalanceAvailable + task.Reward,
		Pending:       user.BalancePending,
		ReferralBonus: user.ReferralBonus,
		Level:         user.Level,
	})
	s.dashboard.Broadcast(db)

	return completion, nil
}

func (s *taskService) ListAll(db *gorm.DB) ([]models.Task, error) {
	tasks, err := s.taskRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return tasks, nil
}

func (s *taskService) Create(db *gorm.DB, req dto.CreateTaskRequest) (*models.Task, error) {
	task := &models.Task{
		Title:       req.Title,
		Description: req.Description,
		Reward:      req.Reward,
		MinLevel:    req.MinLevel,
	}
	if task.MinLevel < 1 {
		task.MinLevel = 1
	}
	if err := s.taskRepo.Create(db, task); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.broadcaster.BroadcastAll(EventNewTask, task)
	return task, nil
}

func (s *taskService) SetArchived(db *gorm.DB, taskID string, archived bool) error {
	if err := s.taskRepo.SetArchived(db, taskID, archived); err != nil {
		if apperrors.Is(err, repositories.ErrTaskNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
