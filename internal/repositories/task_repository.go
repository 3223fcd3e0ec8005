package repositories

import (
	"errors"
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/models"

	"gorm.io/gorm"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository interface {
	Create(db *gorm.DB, task *models.Task) error
	FindByID(db *gorm.DB, id string) (*models.Task, error)
	FindActiveForLevel(db *gorm.DB, level int) ([]models.Task, error)
	FindAll(db *gorm.DB) ([]models.Task, error)
	SetArchived(db *gorm.DB, id string, archived bool) error
	IncrementCompletions(db *gorm.DB, id string) error
	CreateCompletion(db *gorm.DB, completion *models.TaskCompletion) error
	SumCompletions(db *gorm.DB) (int64, error)
}

type taskRepository struct{}

func NewTaskRepository() TaskRepository {
	return &taskRepository{}
}

func (r *taskRepository) Create(db *gorm.DB, task *models.Task) error {
	return db.Create(task).Error
}

func (r *taskRepository) FindByID(db *gorm.DB, id string) (*models.Task, error) {
	var task models.Task
	err := db.First(&task, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) FindActiveForLevel(db *gorm.DB, level int) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Where("archived = false AND min_level <= ?", level).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) FindAll(db *gorm.DB) ([]models.Task, error) {
	var tasks []models.Task
	err := db.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *taskRepository) SetArchived(db *gorm.DB, id string, archived bool) error {
	result := db.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"archived":   archived,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) IncrementCompletions(db *gorm.DB, id string) error {
	result := db.Model(&models.Task{}).Where("id = ?", id).Updates(map[string]interface{}{
		"completions": gorm.Expr("completions + 1"),
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) CreateCompletion(db *gorm.DB, completion *models.TaskCompletion) error {
	return db.Create(completion).Error
}

func (r *taskRepository) SumCompletions(db *gorm.DB) (int64, error) {
	var sum int64
	err := db.Model(&models.Task{}).
		Select("COALESCE(SUM(completions), 0)").
		Scan(&sum).Error
	return sum, err
}
