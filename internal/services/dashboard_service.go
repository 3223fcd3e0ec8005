package services

import (
	"github.com/michealohagwam/dta-backend-clean/internal/logger"
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"gorm.io/gorm"
)

// DashboardService aggregates the platform-wide stats shown on the admin
// dashboard and pushes them to every connected client.
type DashboardService interface {
	Stats(db *gorm.DB) (*dto.DashboardStats, error)
	// Broadcast computes fresh stats and fans them out to all sockets. Errors
	// are logged; a failed snapshot never fails the triggering operation.
	Broadcast(db *gorm.DB)
}

type dashboardService struct {
	userRepo       repositories.UserRepository
	taskRepo       repositories.TaskRepository
	withdrawalRepo repositories.WithdrawalRepository
	broadcaster    Broadcaster
}

func NewDashboardService(
	userRepo repositories.UserRepository,
	taskRepo repositories.TaskRepository,
	withdrawalRepo repositories.WithdrawalRepository,
	broadcaster Broadcaster,
) DashboardService {
	return &dashboardService{
		userRepo:       userRepo,
		taskRepo:       taskRepo,
		withdrawalRepo: withdrawalRepo,
		broadcaster:    broadcaster,
	}
}

func (s *dashboardService) Stats(db *gorm.DB) (*dto.DashboardStats, error) {
	totalUsers, err := s.userRepo.CountAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	totalEarnings, err := s.userRepo.SumAvailableBalance(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	taskCompletions, err := s.taskRepo.SumCompletions(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	pendingWithdrawals, err := s.withdrawalRepo.CountByStatus(db, models.WithdrawalStatusPending)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.DashboardStats{
		TotalUsers:         totalUsers,
		TotalEarnings:      totalEarnings,
		TaskCompletions:    taskCompletions,
		PendingWithdrawals: pendingWithdrawals,
	}, nil
}

func (s *dashboardService) Broadcast(db *gorm.DB) {
	stats, err := s.Stats(db)
	if err != nil {
		logger.WithError(err).Error("dashboard stats computation failed")
		return
	}
	s.broadcaster.BroadcastAll(EventDashboardUpdate, stats)
}
