package services

import (
	"context"
	"strings"

	"github.com/michealohagwam/dta-backend-clean/internal/auth"
	"github.com/michealohagwam/dta-backend-clean/internal/email"
	"github.com/michealohagwam/dta-backend-clean/internal/ledger"
	"github.com/michealohagwam/dta-backend-clean/internal/logger"
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"
	"github.com/michealohagwam/dta-backend-clean/pkg/retry"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthService interface {
	// Signup registers a new account in pending status and mails the
	// verification link. A supplied referral code must resolve; the referral
	// is recorded in the same transaction as the user row.
	Signup(db *gorm.DB, req dto.SignupRequest) (*dto.UserProfile, error)
	Login(db *gorm.DB, req dto.LoginRequest) (*dto.LoginResponse, error)
	VerifyEmail(db *gorm.DB, token string) (*dto.UserProfile, error)
}

type authService struct {
	userRepo            repositories.UserRepository
	transactionRepo     repositories.TransactionRepository
	referrals           ReferralService
	engine              *ledger.Engine
	emailProvider       email.Provider
	registrationDeposit float64
}

func NewAuthService(
	userRepo repositories.UserRepository,
	transactionRepo repositories.TransactionRepository,
	referrals ReferralService,
	engine *ledger.Engine,
	emailProvider email.Provider,
	registrationDeposit float64,
) AuthService {
	return &authService{
		userRepo:            userRepo,
		transactionRepo:     transactionRepo,
		referrals:           referrals,
		engine:              engine,
		emailProvider:       emailProvider,
		registrationDeposit: registrationDeposit,
	}
}

func (s *authService) Signup(db *gorm.DB, req dto.SignupRequest) (*dto.UserProfile, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	var referrer *models.User
	if req.ReferralCode != "" {
		var err error
		referrer, err = s.referrals.Resolve(db, req.ReferralCode)
		if err != nil {
			return nil, err
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:          strings.TrimSpace(req.Username),
		Email:             strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:      hash,
		Role:              models.UserRoleMember,
		Status:            models.UserStatusPending,
		Level:             1,
		VerificationToken: auth.GenerateRandomToken(),
		ReferralCode:      generateReferralCode(),
	}
	if referrer != nil {
		user.ReferredBy = referrer.ID
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		if referrer != nil {
			return s.referrals.Accrue(tx, referrer.ID, user.ID)
		}
		return nil
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	go s.sendVerificationEmail(user.Email, user.Username, user.VerificationToken)

	logger.Info("user registered", "user_id", user.ID, "referred", referrer != nil)
	return dto.NewUserProfile(user), nil
}

func (s *authService) Login(db *gorm.DB, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, apperrors.ErrAccountNotVerified
	}
	if user.Status == models.UserStatusSuspended {
		return nil, apperrors.ErrAccountSuspended
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		User:        dto.NewUserProfile(user),
	}, nil
}

func (s *authService) VerifyEmail(db *gorm.DB, token string) (*dto.UserProfile, error) {
	if token == "" {
		return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid or expired verification token", 400)
	}

	user, err := s.userRepo.FindByVerificationToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.New(apperrors.CodeInvalidToken, "auth", "Invalid or expired verification token", 400)
		}
		return nil, apperrors.InternalError(err)
	}

	if !user.IsVerified {
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := s.userRepo.VerifyUser(tx, user.ID); err != nil {
				return err
			}
			// The welcome deposit lands once, on first verification.
			if s.registrationDeposit > 0 {
				if err := s.engine.Credit(tx, user.ID, s.registrationDeposit, "registration deposit"); err != nil {
					return err
				}
				return s.transactionRepo.Create(tx, &models.Transaction{
					UserID: user.ID,
					Amount: s.registrationDeposit,
					Type:   models.TransactionTypeDeposit,
					Status: models.TransactionStatusCompleted,
				})
			}
			return nil
		})
		if err != nil {
			if appErr, ok := apperrors.AsAppError(err); ok {
				return nil, appErr
			}
			return nil, apperrors.InternalError(err)
		}
		user.IsVerified = true
		user.Status = models.UserStatusVerified
	}
	return dto.NewUserProfile(user), nil
}

func (s *authService) sendVerificationEmail(to, username, token string) {
	err := retry.Do(context.Background(), func() error {
		return s.emailProvider.SendVerification(to, username, token)
	})
	if err != nil {
		logger.WithError(err).Error("verification email failed after retries", "to", to)
	}
}

// generateReferralCode returns a short unique code handed to new users.
// Uniqueness is enforced by the column index; a collision at 8 hex chars is
// effectively unreachable at this platform's scale.
func generateReferralCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
