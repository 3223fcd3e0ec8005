package ledger

import (
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/models"

	"gorm.io/gorm"
)

// GormStore applies balance deltas to the users table. Guards are expressed
// in the WHERE clause so a concurrent writer can never drive a balance
// negative; RowsAffected reports whether the guard held.
type GormStore struct{}

func NewGormStore() *GormStore {
	return &GormStore{}
}

func (s *GormStore) Reserve(db *gorm.DB, userID string, amount float64) (bool, error) {
	result := db.Model(&models.User{}).
		Where("id = ? AND balance_available >= ?", userID, amount).
		Updates(map[string]interface{}{
			"balance_available": gorm.Expr("balance_available - ?", amount),
			"balance_pending":   gorm.Expr("balance_pending + ?", amount),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *GormStore) Release(db *gorm.DB, userID string, amount float64) (bool, error) {
	result := db.Model(&models.User{}).
		Where("id = ? AND balance_pending >= ?", userID, amount).
		Updates(map[string]interface{}{
			"balance_available": gorm.Expr("balance_available + ?", amount),
			"balance_pending":   gorm.Expr("balance_pending - ?", amount),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *GormStore) Settle(db *gorm.DB, userID string, amount float64) (bool, error) {
	result := db.Model(&models.User{}).
		Where("id = ? AND balance_pending >= ?", userID, amount).
		Updates(map[string]interface{}{
			"balance_pending": gorm.Expr("balance_pending - ?", amount),
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (s *GormStore) Credit(db *gorm.DB, userID string, amount float64) (bool, error) {
	result := db.Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"balance_available": gorm.Expr("balance_available + ?", amount),
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
