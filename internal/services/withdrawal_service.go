package services

import (
	"github.com/michealohagwam/dta-backend-clean/internal/ledger"
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"gorm.io/gorm"
)

// WithdrawalService drives the withdrawal state machine:
// pending -> {approved, declined}, approved -> paid.
type WithdrawalService interface {
	Create(db *gorm.DB, userID string, req *dto.CreateWithdrawalRequest) (*models.Withdrawal, error)
	ListForUser(db *gorm.DB, userID string) ([]models.Withdrawal, error)
	ListByStatus(db *gorm.DB, status models.WithdrawalStatus, limit, offset int) ([]models.Withdrawal, error)
	Approve(db *gorm.DB, withdrawalID string) error
	Decline(db *gorm.DB, withdrawalID string) error
	MarkPaid(db *gorm.DB, withdrawalID string) error
}

type withdrawalService struct {
	withdrawalRepo    repositories.WithdrawalRepository
	transactionRepo   repositories.TransactionRepository
	paymentMethodRepo repositories.PaymentMethodRepository
	userRepo          repositories.UserRepository
	engine            *ledger.Engine
	notifications     NotificationService
	dashboard         DashboardService
	broadcaster       Broadcaster
}

func NewWithdrawalService(
	withdrawalRepo repositories.WithdrawalRepository,
	transactionRepo repositories.TransactionRepository,
	paymentMethodRepo repositories.PaymentMethodRepository,
	userRepo repositories.UserRepository,
	engine *ledger.Engine,
	notifications NotificationService,
	dashboard DashboardService,
	broadcaster Broadcaster,
) WithdrawalService {
	return &withdrawalService{
		withdrawalRepo:    withdrawalRepo,
		transactionRepo:   transactionRepo,
		paymentMethodRepo: paymentMethodRepo,
		userRepo:          userRepo,
		engine:            engine,
		notifications:     notifications,
		dashboard:         dashboard,
		broadcaster:       broadcaster,
	}
}

// Create reserves the amount from available into pending and records the
// withdrawal plus its mirrored transaction in one database transaction. The
// amount is never re-validated against a live balance after this point.
func (s *withdrawalService) Create(db *gorm.DB, userID string, req *dto.CreateWithdrawalRequest) (*models.Withdrawal, error) {
	if req.Amount <= 0 {
		return nil, apperrors.NewBadRequestError("amount must be positive")
	}

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if err := requireActiveAccount(user); err != nil {
		return nil, err
	}

	method, err := s.paymentMethodRepo.FindByID(db, req.PaymentMethodID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentMethodNotFound) {
			return nil, apperrors.ErrNoPaymentMethod
		}
		return nil, apperrors.InternalError(err)
	}
	if method.UserID != userID {
		return nil, apperrors.ErrNoPaymentMethod
	}

	withdrawal := &models.Withdrawal{
		UserID:          userID,
		PaymentMethodID: method.ID,
		Amount:          req.Amount,
		Status:          models.WithdrawalStatusPending,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.engine.ReserveForWithdrawal(tx, userID, req.Amount); err != nil {
			return err
		}
		if err := s.withdrawalRepo.Create(tx, withdrawal); err != nil {
			return apperrors.InternalError(err)
		}
		mirror := &models.Transaction{
			UserID:       userID,
			WithdrawalID: &withdrawal.ID,
			Amount:       -req.Amount,
			Type:         models.TransactionTypeWithdrawal,
			Status:       models.TransactionStatusPending,
		}
		if err := s.transactionRepo.Create(tx, mirror); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.pushBalance(db, userID)
	s.dashboard.Broadcast(db)
	return withdrawal, nil
}

// Approve moves pending -> approved. No balance change: the funds were
// reserved at creation. A second approval of the same record is rejected.
func (s *withdrawalService) Approve(db *gorm.DB, withdrawalID string) error {
	withdrawal, err := s.find(db, withdrawalID)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.withdrawalRepo.TransitionStatus(tx, withdrawalID, models.WithdrawalStatusPending, models.WithdrawalStatusApproved)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStateTransition("withdrawal", "withdrawal is not pending")
		}
		if err := s.transactionRepo.UpdateStatusByWithdrawalID(tx, withdrawalID, models.TransactionStatusCompleted); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.pushBalance(db, withdrawal.UserID)
	s.dashboard.Broadcast(db)
	return nil
}

// Decline moves pending -> declined and returns the reservation to the
// user's available balance.
func (s *withdrawalService) Decline(db *gorm.DB, withdrawalID string) error {
	withdrawal, err := s.find(db, withdrawalID)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.withdrawalRepo.TransitionStatus(tx, withdrawalID, models.WithdrawalStatusPending, models.WithdrawalStatusDeclined)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStateTransition("withdrawal", "withdrawal is not pending")
		}
		if err := s.engine.ReleaseReservation(tx, withdrawal.UserID, withdrawal.Amount); err != nil {
			return err
		}
		if err := s.transactionRepo.UpdateStatusByWithdrawalID(tx, withdrawalID, models.TransactionStatusFailed); err != nil {
			return apperrors.InternalError(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifications.NotifyWithdrawalDeclined(db, withdrawal.UserID, withdrawal.Amount)
	s.pushBalance(db, withdrawal.UserID)
	s.dashboard.Broadcast(db)
	return nil
}

// MarkPaid moves approved -> paid and settles the reservation. Paying a
// record that was never approved is rejected.
func (s *withdrawalService) MarkPaid(db *gorm.DB, withdrawalID string) error {
	withdrawal, err := s.find(db, withdrawalID)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		ok, err := s.withdrawalRepo.TransitionStatus(tx, withdrawalID, models.WithdrawalStatusApproved, models.WithdrawalStatusPaid)
		if err != nil {
			return apperrors.InternalError(err)
		}
		if !ok {
			return apperrors.ErrInvalidStateTransition("withdrawal", "withdrawal is not approved")
		}
		if err := s.engine.SettleReservation(tx, withdrawal.UserID, withdrawal.Amount); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.notifications.NotifyWithdrawalPaid(db, withdrawal.UserID, withdrawal.Amount)
	s.pushBalance(db, withdrawal.UserID)
	s.dashboard.Broadcast(db)
	return nil
}

func (s *withdrawalService) ListForUser(db *gorm.DB, userID string) ([]models.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return withdrawals, nil
}

func (s *withdrawalService) ListByStatus(db *gorm.DB, status models.WithdrawalStatus, limit, offset int) ([]models.Withdrawal, error) {
	withdrawals, err := s.withdrawalRepo.FindByStatus(db, status, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return withdrawals, nil
}

func (s *withdrawalService) find(db *gorm.DB, withdrawalID string) (*models.Withdrawal, error) {
	withdrawal, err := s.withdrawalRepo.FindByID(db, withdrawalID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrWithdrawalNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return withdrawal, nil
}

// pushBalance sends the user their fresh balance after a committed
// transition. Best-effort: a read failure is logged by the caller chain, the
// transition itself stands.
func (s *withdrawalService) pushBalance(db *gorm.DB, userID string) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return
	}
	s.broadcaster.BroadcastToUser(userID, EventBalanceUpdate, dto.BalanceResponse{
		Available:     user.BalanceAvailable,
		Pending:       user.BalancePending,
		ReferralBonus: user.ReferralBonus,
		Level:         user.Level,
	})
}
