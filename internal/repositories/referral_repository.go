package repositories

import (
	"errors"

	"github.com/michealohagwam/dta-backend-clean/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrReferralAlreadyExists = errors.New("referral already recorded for this pair")

type ReferralRepository interface {
	Create(db *gorm.DB, referral *models.Referral) error
	FindByReferrerID(db *gorm.DB, referrerID string) ([]models.Referral, error)
	ExistsForPair(db *gorm.DB, referrerID, referredUserID string) (bool, error)
}

type referralRepository struct{}

func NewReferralRepository() ReferralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(db *gorm.DB, referral *models.Referral) error {
	exists, err := r.ExistsForPair(db, referral.ReferrerID, referral.ReferredUserID)
	if err != nil {
		return err
	}
	if exists {
		return ErrReferralAlreadyExists
	}
	if err := db.Create(referral).Error; err != nil {
		// Concurrent insert for the same pair loses on the unique index.
		if isUniqueViolation(err) {
			return ErrReferralAlreadyExists
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *referralRepository) FindByReferrerID(db *gorm.DB, referrerID string) ([]models.Referral, error) {
	var referrals []models.Referral
	err := db.Preload("ReferredUser").
		Where("referrer_id = ?", referrerID).
		Order("joined_at DESC").
		Find(&referrals).Error
	return referrals, err
}

func (r *referralRepository) ExistsForPair(db *gorm.DB, referrerID, referredUserID string) (bool, error) {
	var count int64
	err := db.Model(&models.Referral{}).
		Where("referrer_id = ? AND referred_user_id = ?", referrerID, referredUserID).
		Count(&count).Error
	return count > 0, err
}
