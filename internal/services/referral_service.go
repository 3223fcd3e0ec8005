package services

import (
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"gorm.io/gorm"
)

// ReferralService records referral accrual. The bonus lands on the
// referrer's referralBonus counter, a separate display-only field; it is
// never transferred into the spendable available balance.
type ReferralService interface {
	// Resolve maps a referral code to its owner. A supplied code that does
	// not resolve fails the enclosing signup.
	Resolve(db *gorm.DB, code string) (*models.User, error)
	// Accrue creates the Referral record and bumps the referrer's counters.
	// Called exactly once, synchronously with a successful signup.
	Accrue(db *gorm.DB, referrerID, referredUserID string) error
	ListForUser(db *gorm.DB, userID string) ([]models.Referral, error)
}

type referralService struct {
	referralRepo        repositories.ReferralRepository
	userRepo            repositories.UserRepository
	bonus               float64
	suspiciousThreshold int
}

func NewReferralService(
	referralRepo repositories.ReferralRepository,
	userRepo repositories.UserRepository,
	bonus float64,
	suspiciousThreshold int,
) ReferralService {
	return &referralService{
		referralRepo:        referralRepo,
		userRepo:            userRepo,
		bonus:               bonus,
		suspiciousThreshold: suspiciousThreshold,
	}
}

func (s *referralService) Resolve(db *gorm.DB, code string) (*models.User, error) {
	referrer, err := s.userRepo.FindByReferralCode(db, code)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidReferralCode
		}
		return nil, apperrors.InternalError(err)
	}
	return referrer, nil
}

func (s *referralService) Accrue(db *gorm.DB, referrerID, referredUserID string) error {
	referrer, err := s.userRepo.FindByID(db, referrerID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrInvalidReferralCode
		}
		return apperrors.InternalError(err)
	}

	referral := &models.Referral{
		ReferrerID:     referrerID,
		ReferredUserID: referredUserID,
		Bonus:          s.bonus,
		// Flagged when this accrual pushes the referrer past the threshold.
		Suspicious: referrer.Invites+1 > s.suspiciousThreshold,
		JoinedAt:   time.Now(),
	}

	if err := s.referralRepo.Create(db, referral); err != nil {
		if apperrors.Is(err, repositories.ErrReferralAlreadyExists) {
			return apperrors.Wrap(err, apperrors.CodeConflict, "referral", "Referral already recorded", 409)
		}
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.AccrueReferral(db, referrerID, s.bonus); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *referralService) ListForUser(db *gorm.DB, userID string) ([]models.Referral, error) {
	referrals, err := s.referralRepo.FindByReferrerID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return referrals, nil
}
