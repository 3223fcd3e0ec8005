package services

import (
	"encoding/json"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/internal/services/dto"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserService interface {
	Profile(db *gorm.DB, userID string) (*dto.UserProfile, error)
	Balance(db *gorm.DB, userID string) (*dto.BalanceResponse, error)
	Transactions(db *gorm.DB, userID string) ([]models.Transaction, error)

	AddPaymentMethod(db *gorm.DB, userID string, req dto.CreatePaymentMethodRequest) (*models.PaymentMethod, error)
	ListPaymentMethods(db *gorm.DB, userID string) ([]models.PaymentMethod, error)
	RemovePaymentMethod(db *gorm.DB, userID, methodID string) error
}

type userService struct {
	userRepo          repositories.UserRepository
	paymentMethodRepo repositories.PaymentMethodRepository
	transactionRepo   repositories.TransactionRepository
}

func NewUserService(
	userRepo repositories.UserRepository,
	paymentMethodRepo repositories.PaymentMethodRepository,
	transactionRepo repositories.TransactionRepository,
) UserService {
	return &userService{
		userRepo:          userRepo,
		paymentMethodRepo: paymentMethodRepo,
		transactionRepo:   transactionRepo,
	}
}

func (s *userService) Profile(db *gorm.DB, userID string) (*dto.UserProfile, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserProfile(user), nil
}

func (s *userService) Balance(db *gorm.DB, userID string) (*dto.BalanceResponse, error) {
	user, err := s.findUser(db, userID)
	if err != nil {
		return nil, err
	}
	return &dto.BalanceResponse{
		Available:     user.BalanceAvailable,
		Pending:       user.BalancePending,
		ReferralBonus: user.ReferralBonus,
		Level:         user.Level,
	}, nil
}

func (s *userService) Transactions(db *gorm.DB, userID string) ([]models.Transaction, error) {
	transactions, err := s.transactionRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return transactions, nil
}

func (s *userService) AddPaymentMethod(db *gorm.DB, userID string, req dto.CreatePaymentMethodRequest) (*models.PaymentMethod, error) {
	raw, err := json.Marshal(req.Details)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid payment details payload")
	}

	method := &models.PaymentMethod{
		UserID:  userID,
		Label:   req.Label,
		Details: datatypes.JSON(raw),
	}
	if err := s.paymentMethodRepo.Create(db, method); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return method, nil
}

func (s *userService) ListPaymentMethods(db *gorm.DB, userID string) ([]models.PaymentMethod, error) {
	methods, err := s.paymentMethodRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return methods, nil
}

func (s *userService) RemovePaymentMethod(db *gorm.DB, userID, methodID string) error {
	if err := s.paymentMethodRepo.Delete(db, methodID, userID); err != nil {
		if apperrors.Is(err, repositories.ErrPaymentMethodNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *userService) findUser(db *gorm.DB, userID string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	return user, nil
}
