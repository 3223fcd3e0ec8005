package repositories

import (
	"errors"
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/models"

	"gorm.io/gorm"
)

var ErrUpgradeNotFound = errors.New("upgrade not found")

type UpgradeRepository interface {
	Create(db *gorm.DB, upgrade *models.Upgrade) error
	FindByID(db *gorm.DB, id string) (*models.Upgrade, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.Upgrade, error)
	FindByStatus(db *gorm.DB, status models.UpgradeStatus, limit, offset int) ([]models.Upgrade, error)
	// TransitionStatus moves the record from `pending` to a terminal status.
	// Returns false without error when the record is no longer pending.
	TransitionStatus(db *gorm.DB, id string, from, to models.UpgradeStatus) (bool, error)
	CountOpenByUser(db *gorm.DB, userID string) (int64, error)
}

type upgradeRepository struct{}

func NewUpgradeRepository() UpgradeRepository {
	return &upgradeRepository{}
}

func (r *upgradeRepository) Create(db *gorm.DB, upgrade *models.Upgrade) error {
	return db.Create(upgrade).Error
}

func (r *upgradeRepository) FindByID(db *gorm.DB, id string) (*models.Upgrade, error) {
	var upgrade models.Upgrade
	err := db.First(&upgrade, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUpgradeNotFound
		}
		return nil, err
	}
	return &upgrade, nil
}

func (r *upgradeRepository) FindByUserID(db *gorm.DB, userID string) ([]models.Upgrade, error) {
	var upgrades []models.Upgrade
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&upgrades).Error
	return upgrades, err
}

func (r *upgradeRepository) FindByStatus(db *gorm.DB, status models.UpgradeStatus, limit, offset int) ([]models.Upgrade, error) {
	var upgrades []models.Upgrade
	err := db.Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&upgrades).Error
	return upgrades, err
}

func (r *upgradeRepository) TransitionStatus(db *gorm.DB, id string, from, to models.UpgradeStatus) (bool, error) {
	result := db.Model(&models.Upgrade{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *upgradeRepository) CountOpenByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Upgrade{}).
		Where("user_id = ? AND status = ?", userID, models.UpgradeStatusPending).
		Count(&count).Error
	return count, err
}
