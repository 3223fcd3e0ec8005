package services

import (
	"encoding/json"
	"os"
	"sync"
	"testing"

	"github.com/michealohagwam/dta-backend-clean/internal/auth"
	"github.com/michealohagwam/dta-backend-clean/internal/ledger"
	"github.com/michealohagwam/dta-backend-clean/internal/logger"
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var (
	sharedDB     *gorm.DB
	sharedDBOnce sync.Once
)

// testDB returns a transaction rolled back when the test finishes. Tests are
// skipped unless TEST_DATABASE_URL points at a reachable postgres.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	sharedDBOnce.Do(func() {
		logger.Init("test")
		auth.Init("test-secret-key-1234567890", 60)

		db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
		require.NoError(t, err)
		require.NoError(t, db.AutoMigrate(
			&models.User{},
			&models.PaymentMethod{},
			&models.Withdrawal{},
			&models.Transaction{},
			&models.Upgrade{},
			&models.Referral{},
			&models.Task{},
			&models.TaskCompletion{},
			&models.Notification{},
		))
		sharedDB = db
	})

	tx := sharedDB.Begin()
	require.NoError(t, tx.Error)
	t.Cleanup(func() { tx.Rollback() })
	return tx
}

// recordingBroadcaster captures pushed events for assertions.
type recordingBroadcaster struct {
	userEvents map[string][]string
	allEvents  []string
}

func newRecordingBroadcaster() *recordingBroadcaster {
	return &recordingBroadcaster{userEvents: make(map[string][]string)}
}

func (b *recordingBroadcaster) BroadcastToUser(userID, event string, _ any) {
	b.userEvents[userID] = append(b.userEvents[userID], event)
}

func (b *recordingBroadcaster) BroadcastAll(event string, _ any) {
	b.allEvents = append(b.allEvents, event)
}

type stubEmailProvider struct{}

func (stubEmailProvider) Send(_, _, _ string) error             { return nil }
func (stubEmailProvider) SendVerification(_, _, _ string) error { return nil }
func (stubEmailProvider) SendNotification(_, _, _ string) error { return nil }
func (stubEmailProvider) SendAdminInvite(_, _ string) error     { return nil }

// testServices is the fully wired service graph a single test works against.
type testServices struct {
	auth          AuthService
	users         UserService
	tasks         TaskService
	withdrawals   WithdrawalService
	upgrades      UpgradeService
	referrals     ReferralService
	notifications NotificationService
	dashboard     DashboardService
	admin         AdminService
	broadcaster   *recordingBroadcaster

	userRepo          repositories.UserRepository
	withdrawalRepo    repositories.WithdrawalRepository
	transactionRepo   repositories.TransactionRepository
	upgradeRepo       repositories.UpgradeRepository
	referralRepo      repositories.ReferralRepository
	taskRepo          repositories.TaskRepository
	paymentMethodRepo repositories.PaymentMethodRepository
}

func newTestServices() *testServices {
	userRepo := repositories.NewUserRepository()
	taskRepo := repositories.NewTaskRepository()
	withdrawalRepo := repositories.NewWithdrawalRepository()
	transactionRepo := repositories.NewTransactionRepository()
	upgradeRepo := repositories.NewUpgradeRepository()
	referralRepo := repositories.NewReferralRepository()
	paymentMethodRepo := repositories.NewPaymentMethodRepository()
	notificationRepo := repositories.NewNotificationRepository()

	engine := ledger.NewEngine(ledger.NewGormStore())
	broadcaster := newRecordingBroadcaster()
	emailProvider := stubEmailProvider{}

	notifications := NewNotificationService(notificationRepo, userRepo, emailProvider, broadcaster)
	dashboard := NewDashboardService(userRepo, taskRepo, withdrawalRepo, broadcaster)
	referrals := NewReferralService(referralRepo, userRepo, 1000, 50)

	return &testServices{
		auth:          NewAuthService(userRepo, transactionRepo, referrals, engine, emailProvider, 100),
		users:         NewUserService(userRepo, paymentMethodRepo, transactionRepo),
		tasks:         NewTaskService(taskRepo, userRepo, engine, dashboard, broadcaster),
		withdrawals:   NewWithdrawalService(withdrawalRepo, transactionRepo, paymentMethodRepo, userRepo, engine, notifications, dashboard, broadcaster),
		upgrades:      NewUpgradeService(upgradeRepo, userRepo, notifications, dashboard, broadcaster, map[int]float64{2: 5000, 3: 15000}),
		referrals:     referrals,
		notifications: notifications,
		dashboard:     dashboard,
		admin:         NewAdminService(userRepo, withdrawalRepo, upgradeRepo, notifications, emailProvider, broadcaster),
		broadcaster:   broadcaster,

		userRepo:          userRepo,
		withdrawalRepo:    withdrawalRepo,
		transactionRepo:   transactionRepo,
		upgradeRepo:       upgradeRepo,
		referralRepo:      referralRepo,
		taskRepo:          taskRepo,
		paymentMethodRepo: paymentMethodRepo,
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username string, balance float64) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("password123")
	require.NoError(t, err)

	user := &models.User{
		Username:         username,
		Email:            username + "@example.com",
		PasswordHash:     hash,
		Role:             models.UserRoleMember,
		Status:           models.UserStatusActive,
		IsVerified:       true,
		Level:            1,
		BalanceAvailable: balance,
		ReferralCode:     "ref-" + username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestPaymentMethod(t *testing.T, db *gorm.DB, userID string) *models.PaymentMethod {
	t.Helper()

	details, err := json.Marshal(map[string]string{"bank": "GTBank", "account": "0123456789"})
	require.NoError(t, err)

	method := &models.PaymentMethod{
		UserID:  userID,
		Label:   "bank",
		Details: datatypes.JSON(details),
	}
	require.NoError(t, db.Create(method).Error)
	return method
}

func reloadUser(t *testing.T, db *gorm.DB, userID string) *models.User {
	t.Helper()

	var user models.User
	require.NoError(t, db.First(&user, "id = ?", userID).Error)
	return &user
}
