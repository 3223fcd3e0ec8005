package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/auth"
	"github.com/michealohagwam/dta-backend-clean/internal/config"
	"github.com/michealohagwam/dta-backend-clean/internal/email"
	"github.com/michealohagwam/dta-backend-clean/internal/handlers"
	"github.com/michealohagwam/dta-backend-clean/internal/logger"
	"github.com/michealohagwam/dta-backend-clean/internal/middleware"
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/routes"
	"github.com/michealohagwam/dta-backend-clean/internal/services"
	"github.com/michealohagwam/dta-backend-clean/internal/validator"
	"github.com/michealohagwam/dta-backend-clean/internal/workers"
	"github.com/michealohagwam/dta-backend-clean/pkg/retry"
	"github.com/michealohagwam/dta-backend-clean/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	auth.Init(cfg.JWT.Secret, cfg.JWT.TTL)

	gormDB := connectDatabase(cfg)

	if err := migrate(gormDB); err != nil {
		logger.Fatal("database migration failed", "error", err)
	}
	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("failed to seed first admin user", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	router := SetupRouter(ctx, cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

// SetupRouter wires the full application graph and returns the router.
// The context bounds the websocket manager and background workers.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	wsManager := ws.NewManager()
	go wsManager.Run()
	wsHandler := ws.NewHandler(wsManager)

	emailProvider := newEmailProvider(cfg)

	serviceContainer := services.NewServiceContainer(cfg, emailProvider, wsManager)
	appHandlers := initializeHandlers(serviceContainer)

	dashboardWorker := workers.NewDashboardWorker(
		gormDB,
		serviceContainer.DashboardService,
		time.Duration(cfg.Dashboard.BroadcastIntervalSec)*time.Second,
	)
	dashboardWorker.Start(ctx)

	router := initializeGinRouter(gormDB)
	routes.RegisterRoutes(router, appHandlers, wsHandler)
	return router
}

func connectDatabase(cfg *config.Config) *gorm.DB {
	var gormDB *gorm.DB
	err := retry.Do(context.Background(), func() error {
		db, openErr := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
		if openErr != nil {
			logger.WithError(openErr).Warn("database connection attempt failed")
			return openErr
		}
		sqlDB, dbErr := db.DB()
		if dbErr != nil {
			return dbErr
		}
		if pingErr := sqlDB.Ping(); pingErr != nil {
			logger.WithError(pingErr).Warn("database ping failed")
			return pingErr
		}
		gormDB = db
		return nil
	})
	if err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")
	return gormDB
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PaymentMethod{},
		&models.Withdrawal{},
		&models.Transaction{},
		&models.Upgrade{},
		&models.Referral{},
		&models.Task{},
		&models.TaskCompletion{},
		&models.Notification{},
	)
}

func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP is not configured, outbound mail will only be logged")
		return &logEmailProvider{}
	}

	provider, err := email.NewSMTPProvider(email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		BaseURL:   cfg.Email.BaseURL,
	})
	if err != nil {
		logger.Fatal("failed to initialize smtp provider", "error", err)
	}
	return provider
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, container.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, container.UserService),
		TaskHandler:         handlers.NewTaskHandler(baseHandler, container.TaskService),
		WithdrawalHandler:   handlers.NewWithdrawalHandler(baseHandler, container.WithdrawalService),
		UpgradeHandler:      handlers.NewUpgradeHandler(baseHandler, container.UpgradeService),
		ReferralHandler:     handlers.NewReferralHandler(baseHandler, container.ReferralService),
		NotificationHandler: handlers.NewNotificationHandler(baseHandler, container.NotificationService),
		AdminHandler: handlers.NewAdminHandler(
			baseHandler,
			container.AdminService,
			container.WithdrawalService,
			container.UpgradeService,
			container.TaskService,
			container.DashboardService,
		),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set, skipping admin seeding")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("email = ?", adminEmail).First(&existing)
		if result.Error == nil {
			logger.Info("admin user already exists, skipping creation", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Username:     "admin",
			Email:        adminEmail,
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
			Status:       models.UserStatusActive,
			IsVerified:   true,
			Level:        1,
			ReferralCode: auth.GenerateRandomToken()[:8],
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		logger.Warn("first admin user created", "email", adminEmail)
		return nil
	})
}
