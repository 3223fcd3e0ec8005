package services

import (
	"github.com/michealohagwam/dta-backend-clean/internal/config"
	"github.com/michealohagwam/dta-backend-clean/internal/email"
	"github.com/michealohagwam/dta-backend-clean/internal/ledger"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
)

// ServiceContainer holds every service the handlers depend on.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	TaskService         TaskService
	WithdrawalService   WithdrawalService
	UpgradeService      UpgradeService
	ReferralService     ReferralService
	NotificationService NotificationService
	DashboardService    DashboardService
	AdminService        AdminService
	EmailService        email.Provider
}

// NewServiceContainer wires the full service graph on top of the shared
// repository set.
func NewServiceContainer(cfg *config.Config, emailProvider email.Provider, broadcaster Broadcaster) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	taskRepo := repositories.NewTaskRepository()
	withdrawalRepo := repositories.NewWithdrawalRepository()
	transactionRepo := repositories.NewTransactionRepository()
	upgradeRepo := repositories.NewUpgradeRepository()
	referralRepo := repositories.NewReferralRepository()
	paymentMethodRepo := repositories.NewPaymentMethodRepository()
	notificationRepo := repositories.NewNotificationRepository()

	engine := ledger.NewEngine(ledger.NewGormStore())

	notifications := NewNotificationService(notificationRepo, userRepo, emailProvider, broadcaster)
	dashboard := NewDashboardService(userRepo, taskRepo, withdrawalRepo, broadcaster)
	referrals := NewReferralService(referralRepo, userRepo, cfg.Reward.ReferralBonus, cfg.Reward.SuspiciousInvites)

	return &ServiceContainer{
		AuthService:         NewAuthService(userRepo, transactionRepo, referrals, engine, emailProvider, cfg.Reward.RegistrationDeposit),
		UserService:         NewUserService(userRepo, paymentMethodRepo, transactionRepo),
		TaskService:         NewTaskService(taskRepo, userRepo, engine, dashboard, broadcaster),
		WithdrawalService:   NewWithdrawalService(withdrawalRepo, transactionRepo, paymentMethodRepo, userRepo, engine, notifications, dashboard, broadcaster),
		UpgradeService:      NewUpgradeService(upgradeRepo, userRepo, notifications, dashboard, broadcaster, cfg.Reward.LevelPrices),
		ReferralService:     referrals,
		NotificationService: notifications,
		DashboardService:    dashboard,
		AdminService:        NewAdminService(userRepo, withdrawalRepo, upgradeRepo, notifications, emailProvider, broadcaster),
		EmailService:        emailProvider,
	}
}
