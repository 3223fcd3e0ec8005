package repositories

import (
	"errors"
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/models"

	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("transaction not found")

type TransactionRepository interface {
	Create(db *gorm.DB, transaction *models.Transaction) error
	FindByUserID(db *gorm.DB, userID string) ([]models.Transaction, error)
	// UpdateStatusByWithdrawalID syncs the mirror record with its withdrawal.
	UpdateStatusByWithdrawalID(db *gorm.DB, withdrawalID string, status models.TransactionStatus) error
}

type transactionRepository struct{}

func NewTransactionRepository() TransactionRepository {
	return &transactionRepository{}
}

func (r *transactionRepository) Create(db *gorm.DB, transaction *models.Transaction) error {
	return db.Create(transaction).Error
}

func (r *transactionRepository) FindByUserID(db *gorm.DB, userID string) ([]models.Transaction, error) {
	var transactions []models.Transaction
	err := db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&transactions).Error
	return transactions, err
}

func (r *transactionRepository) UpdateStatusByWithdrawalID(db *gorm.DB, withdrawalID string, status models.TransactionStatus) error {
	result := db.Model(&models.Transaction{}).
		Where("withdrawal_id = ?", withdrawalID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}
