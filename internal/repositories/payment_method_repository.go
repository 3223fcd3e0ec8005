package repositories

import (
	"errors"

	"github.com/michealohagwam/dta-backend-clean/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentMethodNotFound = errors.New("payment method not found")

type PaymentMethodRepository interface {
	Create(db *gorm.DB, method *models.PaymentMethod) error
	FindByID(db *gorm.DB, id string) (*models.PaymentMethod, error)
	FindByUserID(db *gorm.DB, userID string) ([]models.PaymentMethod, error)
	Delete(db *gorm.DB, id, userID string) error
}

type paymentMethodRepository struct{}

func NewPaymentMethodRepository() PaymentMethodRepository {
	return &paymentMethodRepository{}
}

func (r *paymentMethodRepository) Create(db *gorm.DB, method *models.PaymentMethod) error {
	return db.Create(method).Error
}

func (r *paymentMethodRepository) FindByID(db *gorm.DB, id string) (*models.PaymentMethod, error) {
	var method models.PaymentMethod
	err := db.First(&method, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentMethodNotFound
		}
		return nil, err
	}
	return &method, nil
}

func (r *paymentMethodRepository) FindByUserID(db *gorm.DB, userID string) ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&methods).Error
	return methods, err
}

func (r *paymentMethodRepository) Delete(db *gorm.DB, id, userID string) error {
	result := db.Where("id = ? AND user_id = ?", id, userID).Delete(&models.PaymentMethod{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentMethodNotFound
	}
	return nil
}
