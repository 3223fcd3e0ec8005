package services

import (
	"fmt"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"gorm.io/gorm"
)

// UpgradeService drives the upgrade state machine:
// pending -> {approved, rejected}.
type UpgradeService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateUpgradeRequest) (*models.Upgrade, error)
	ListForUser(db *gorm.DB, userID string) ([]models.Upgrade, error)
	ListPending(db *gorm.DB, limit, offset int) ([]models.Upgrade, error)
	Approve(db *gorm.DB, upgradeID string) error
	Reject(db *gorm.DB, upgradeID string) error
}

type upgradeService struct {
	upgradeRepo   repositories.UpgradeRepository
	userRepo      repositories.UserRepository
	notifications NotificationService
	dashboard     DashboardService
	broadcaster   Broadcaster
	levelPrices   map[int]float64
}

func NewUpgradeService(
	upgradeRepo repositories.UpgradeRepository,
	userRepo repositories.UserRepository,
	notifications NotificationService,
	dashboard DashboardService,
	broadcaster Broadcaster,
	levelPrices map[int]float64,
) UpgradeService {
	return &upgradeService{
		upgradeRepo:   upgradeRepo,
		userRepo:      userRepo,
		notifications: notifications,
		dashboard:     dashboard,
		broadcaster:   broadcaster,
		levelPrices:   levelPrices,
	}
}

// Create records a pending upgrade request. The target level must exceed the
// user's level at creation time and must have a configured price.
func (s *upgradeService) Create(db *gorm.DB, userID string, req *dto.CreateUpgradeRequest) (*models.Upgrade, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Level <= user.Level {
		return nil, apperrors.NewBadRequestError(
			fmt.Sprintf("target level %d must exceed current level %d", req.Level, user.Level))
	}

	price, ok := s.levelPrices[req.Level]
	if !ok {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("level %d is not available", req.Level))
	}

	upgrade := &models.Upgrade{
		UserID: userID,
		Level:  req.Level,
		Amount: price,
		Status: models.UpgradeStatusPending,
	}
	if err := s.upgradeRepo.Create(db, upgrade); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return upgrade, nil
}

// Approve sets the user's level to the upgrade's target and activates the
// account, in the same transaction as the status change.
func (s *upgradeService) Approve(db *gorm.DB, upgradeID string) error {
	upgrade, err := s.find(db, upgradeID)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.upgradeRepo.TransitionStatus(tx, upgradeID, models.UpgradeStatusPending, models.UpgradeStatusApproved)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStateTransition("upgrade", "upgrade is not pending")
		}
		if err := s.userRepo.SetLevel(tx, upgrade.UserID, upgrade.Level, models.UserStatusActive); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifications.NotifyUpgradeApproved(db, upgrade.UserID, upgrade.Level)
	s.broadcaster.BroadcastToUser(upgrade.UserID, EventUpgradeUpdate, upgrade)
	s.broadcaster.BroadcastToUser(upgrade.UserID, EventStatusUpdate, map[string]any{
		"status": models.UserStatusActive,
		"level":  upgrade.Level,
	})
	s.dashboard.Broadcast(db)
	return nil
}

// Reject marks the upgrade rejected. No balance or level change.
func (s *upgradeService) Reject(db *gorm.DB, upgradeID string) error {
	upgrade, err := s.find(db, upgradeID)
	if err != nil {
		return err
	}

	ok, err := s.upgradeRepo.TransitionStatus(db, upgradeID, models.UpgradeStatusPending, models.UpgradeStatusRejected)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if !ok {
		return apperrors.ErrInvalidStateTransition("upgrade", "upgrade is not pending")
	}

	s.notifications.NotifyUpgradeRejected(db, upgrade.UserID, upgrade.Level)
	s.broadcaster.BroadcastToUser(upgrade.UserID, EventUpgradeUpdate, map[string]any{
		"id":     upgrade.ID,
		"status": models.UpgradeStatusRejected,
	})
	s.dashboard.Broadcast(db)
	return nil
}

func (s *upgradeService) ListForUser(db *gorm.DB, userID string) ([]models.Upgrade, error) {
	upgrades, err := s.upgradeRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return upgrades, nil
}

func (s *upgradeService) ListPending(db *gorm.DB, limit, offset int) ([]models.Upgrade, error) {
	upgrades, err := s.upgradeRepo.FindByStatus(db, models.UpgradeStatusPending, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return upgrades, nil
}

func (s *upgradeService) find(db *gorm.DB, upgradeID string) (*models.Upgrade, error) {
	upgrade, err := s.upgradeRepo.FindByID(db, upgradeID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUpgradeNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return upgrade, nil
}
