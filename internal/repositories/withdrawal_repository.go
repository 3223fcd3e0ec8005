package repositories

import (
	"errors"
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/models"

	"gorm.io/gorm"
)

var ErrWithdrawalNotFound = errors.New("withdrawal not found")

type WithdrawalRepository interface {
	Create(db *gorm.DB, withdrawal *models.Withdrawal) error
	FindByID(db *gorm.DB, id string) (*models.Withdrawal, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.Withdrawal, error)
	FindByStatus(db *gorm.DB, status models.WithdrawalStatus, limit, offset int) ([]models.Withdrawal, error)
	// TransitionStatus moves the record from one exact status to another.
	// Returns false without error when the record is not currently in `from`,
	// which serializes concurrent transitions on the same row.
	TransitionStatus(db *gorm.DB, id string, from, to models.WithdrawalStatus) (bool, error)
	CountByStatus(db *gorm.DB, status models.WithdrawalStatus) (int64, error)
	CountOpenByUser(db *gorm.DB, userID string) (int64, error)
}

type withdrawalRepository struct{}

func NewWithdrawalRepository() WithdrawalRepository {
	return &withdrawalRepository{}
}

func (r *withdrawalRepository) Create(db *gorm.DB, withdrawal *models.Withdrawal) error {
	return db.Create(withdrawal).Error
}

func (r *withdrawalRepository) FindByID(db *gorm.DB, id string) (*models.Withdrawal, error) {
	var withdrawal models.Withdrawal
	err := db.Preload("PaymentMethod").First(&withdrawal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWithdrawalNotFound
		}
		return nil, err
	}
	return &withdrawal, nil
}

func (r *withdrawalRepository) FindByUserID(db *gorm.DB, userID string) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := db.Preload("PaymentMethod").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&withdrawals).Error
	return withdrawals, err
}

func (r *withdrawalRepository) FindByStatus(db *gorm.DB, status models.WithdrawalStatus, limit, offset int) ([]models.Withdrawal, error) {
	var withdrawals []models.Withdrawal
	err := db.Preload("PaymentMethod").
		Where("status = ?", status).
		Order("created_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&withdrawals).Error
	return withdrawals, err
}

func (r *withdrawalRepository) TransitionStatus(db *gorm.DB, id string, from, to models.WithdrawalStatus) (bool, error) {
	result := db.Model(&models.Withdrawal{}).
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

func (r *withdrawalRepository) CountByStatus(db *gorm.DB, status models.WithdrawalStatus) (int64, error) {
	var count int64
	err := db.Model(&models.Withdrawal{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *withdrawalRepository) CountOpenByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.Withdrawal{}).
		Where("user_id = ? AND status IN ?", userID, []models.WithdrawalStatus{
			models.WithdrawalStatusPending,
			models.WithdrawalStatusApproved,
		}).
		Count(&count).Error
	return count, err
}
