package services

import (
	"context"

	"github.com/michealohagwam/dta-backend-clean/internal/auth"
	"github.com/michealohagwam/dta-backend-clean/internal/email"
	"github.com/michealohagwam/dta-backend-clean/internal/logger"
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"
	"github.com/michealohagwam/dta-backend-clean/pkg/retry"

	"gorm.io/gorm"
)

type AdminService interface {
	ListUsers(db *gorm.DB, filter dto.AdminUserFilter) (*dto.UserListResponse, error)
	SuspendUser(db *gorm.DB, userID string) error
	ActivateUser(db *gorm.DB, userID string) error
	// DeleteUser removes the account. Refused while the user has open
	// withdrawals or pending upgrades; those must be resolved first.
	DeleteUser(db *gorm.DB, userID string) error

	// InviteAdmin creates a pre-verified admin account with a generated
	// password and mails the credentials.
	InviteAdmin(db *gorm.DB, req dto.InviteAdminRequest) (*dto.UserProfile, error)
	Announce(db *gorm.DB, req dto.AnnouncementRequest) (int, error)
}

type adminService struct {
	userRepo       repositories.UserRepository
	withdrawalRepo repositories.WithdrawalRepository
	upgradeRepo    repositories.UpgradeRepository
	notifications  NotificationService
	emailProvider  email.Provider
	broadcaster    Broadcaster
}

func NewAdminService(
	userRepo repositories.UserRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	upgradeRepo repositories.UpgradeRepository,
	notifications NotificationService,
	emailProvider email.Provider,
	broadcaster Broadcaster,
) AdminService {
	return &adminService{
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
		upgradeRepo:    upgradeRepo,
		notifications:  notifications,
		emailProvider:  emailProvider,
		broadcaster:    broadcaster,
	}
}

func (s *adminService) ListUsers(db *gorm.DB, filter dto.AdminUserFilter) (*dto.UserListResponse, error) {
	users, total, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Status:   models.UserStatus(filter.Status),
		Role:     models.UserRole(filter.Role),
		Search:   filter.Search,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserListResponse(users, total), nil
}

func (s *adminService) SuspendUser(db *gorm.DB, userID string) error {
	if err := s.setStatus(db, userID, models.UserStatusSuspended); err != nil {
		return err
	}
	s.broadcaster.BroadcastToUser(userID, EventStatusUpdate, map[string]any{
		"status": models.UserStatusSuspended,
	})
	return nil
}

func (s *adminService) ActivateUser(db *gorm.DB, userID string) error {
	if err := s.setStatus(db, userID, models.UserStatusActive); err != nil {
		return err
	}
	s.broadcaster.BroadcastToUser(userID, EventStatusUpdate, map[string]any{
		"status": models.UserStatusActive,
	})
	return nil
}

func (s *adminService) DeleteUser(db *gorm.DB, userID string) error {
	openWithdrawals, err := s.withdrawalRepo.CountOpenByUser(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	openUpgrades, err := s.upgradeRepo.CountOpenByUser(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if openWithdrawals > 0 || openUpgrades > 0 {
		return apperrors.New(apperrors.CodeConflict, "admin",
			"User has unresolved withdrawals or upgrades", 409)
	}

	if err := s.userRepo.Delete(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	logger.Info("user deleted", "user_id", userID)
	return nil
}

func (s *adminService) InviteAdmin(db *gorm.DB, req dto.InviteAdminRequest) (*dto.UserProfile, error) {
	password := auth.GenerateRandomToken()[:16]
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
		Level:        1,
		ReferralCode: generateReferralCode(),
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	go func() {
		err := retry.Do(context.Background(), func() error {
			return s.emailProvider.SendAdminInvite(user.Email, password)
		})
		if err != nil {
			logger.WithError(err).Error("admin invite email failed after retries", "to", user.Email)
		}
	}()

	logger.Info("admin invited", "user_id", user.ID)
	return dto.NewUserProfile(user), nil
}

func (s *adminService) Announce(db *gorm.DB, req dto.AnnouncementRequest) (int, error) {
	return s.notifications.Announce(db, req.Title, req.Message, req.Email)
}

func (s *adminService) setStatus(db *gorm.DB, userID string, status models.UserStatus) error {
	if err := s.userRepo.UpdateStatus(db, userID, status); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}
