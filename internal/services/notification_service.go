package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/michealohagwam/dta-backend-clean/internal/email"
	"github.com/michealohagwam/dta-backend-clean/internal/logger"
	"github.com/michealohagwam/dta-backend-clean/internal/models"
	"github.com/michealohagwam/dta-backend-clean/internal/repositories"
	"github.com/michealohagwam/dta-backend-clean/pkg/apperrors"
	"github.com/michealohagwam/dta-backend-clean/pkg/retry"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationWithdrawalDeclined = "withdrawal_declined"
	NotificationWithdrawalPaid     = "withdrawal_paid"
	NotificationUpgradeApproved    = "upgrade_approved"
	NotificationUpgradeRejected    = "upgrade_rejected"
	NotificationAnnouncement       = "announcement"
)

// NotificationService persists in-app notifications and pushes them over the
// realtime channel. Email delivery runs in the background with retries; a
// failed send is logged, never surfaced to the caller.
type NotificationService interface {
	ListForUser(db *gorm.DB, userID string, limit, offset int) ([]models.Notification, error)
	UnreadCount(db *gorm.DB, userID string) (int64, error)
	MarkAsRead(db *gorm.DB, userID, notificationID string) error
	MarkAllAsRead(db *gorm.DB, userID string) error

	NotifyWithdrawalDeclined(db *gorm.DB, userID string, amount float64)
	NotifyWithdrawalPaid(db *gorm.DB, userID string, amount float64)
	NotifyUpgradeApproved(db *gorm.DB, userID string, level int)
	NotifyUpgradeRejected(db *gorm.DB, userID string, level int)

	// Announce creates a notification for every active user. When sendEmail
	// is set the message also goes out over SMTP.
	Announce(db *gorm.DB, title, message string, sendEmail bool) (int, error)
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
	userRepo         repositories.UserRepository
	emailProvider    email.Provider
	broadcaster      Broadcaster
}

func NewNotificationService(
	notificationRepo repositories.NotificationRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
	broadcaster Broadcaster,
) NotificationService {
	return &notificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		emailProvider:    emailProvider,
		broadcaster:      broadcaster,
	}
}

func (s *notificationService) ListForUser(db *gorm.DB, userID string, limit, offset int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	notifications, err := s.notificationRepo.FindByUserID(db, userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return notifications, nil
}

func (s *notificationService) UnreadCount(db *gorm.DB, userID string) (int64, error) {
	count, err := s.notificationRepo.CountUnread(db, userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(db *gorm.DB, userID, notificationID string) error {
	if err := s.notificationRepo.MarkAsRead(db, userID, notificationID); err != nil {
		if apperrors.Is(err, repositories.ErrNotificationNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(db *gorm.DB, userID string) error {
	if err := s.notificationRepo.MarkAllAsRead(db, userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *notificationService) NotifyWithdrawalDeclined(db *gorm.DB, userID string, amount float64) {
	s.deliver(db, userID, NotificationWithdrawalDeclined,
		"Withdrawal declined",
		fmt.Sprintf("Your withdrawal request of %.2f was declined. The amount has been returned to your available balance.", amount),
		map[string]any{"amount": amount},
	)
}

func (s *notificationService) NotifyWithdrawalPaid(db *gorm.DB, userID string, amount float64) {
	s.deliver(db, userID, NotificationWithdrawalPaid,
		"Withdrawal paid",
		fmt.Sprintf("Your withdrawal of %.2f has been paid out.", amount),
		map[string]any{"amount": amount},
	)
}

func (s *notificationService) NotifyUpgradeApproved(db *gorm.DB, userID string, level int) {
	s.deliver(db, userID, NotificationUpgradeApproved,
		"Upgrade approved",
		fmt.Sprintf("Your upgrade to level %d has been approved. New tasks are now available.", level),
		map[string]any{"level": level},
	)
}

func (s *notificationService) NotifyUpgradeRejected(db *gorm.DB, userID string, level int) {
	s.deliver(db, userID, NotificationUpgradeRejected,
		"Upgrade rejected",
		fmt.Sprintf("Your upgrade request to level %d was rejected.", level),
		map[string]any{"level": level},
	)
}

func (s *notificationService) Announce(db *gorm.DB, title, message string, sendEmail bool) (int, error) {
	users, _, err := s.userRepo.FindWithFilter(db, repositories.UserFilter{
		Status:   models.UserStatusActive,
		Page:     1,
		PageSize: 10000,
	})
	if err != nil {
		return 0, apperrors.InternalError(err)
	}

	notifications := make([]*models.Notification, 0, len(users))
	for _, u := range users {
		notifications = append(notifications, &models.Notification{
			UserID:  u.ID,
			Type:    NotificationAnnouncement,
			Title:   title,
			Message: message,
		})
	}
	if err := s.notificationRepo.CreateBulk(db, notifications); err != nil {
		return 0, apperrors.InternalError(err)
	}

	for _, n := range notifications {
		s.broadcaster.BroadcastToUser(n.UserID, EventNotification, n)
	}

	if sendEmail {
		recipients := make([]string, 0, len(users))
		for _, u := range users {
			recipients = append(recipients, u.Email)
		}
		go s.sendEmails(recipients, title, message)
	}
	return len(users), nil
}

// deliver writes the in-app record within the caller's transaction, then
// pushes it over the socket and mails the user in the background.
func (s *notificationService) deliver(db *gorm.DB, userID, kind, title, message string, data map[string]any) {
	notification := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   title,
		Message: message,
	}
	if data != nil {
		if raw, err := json.Marshal(data); err == nil {
			notification.Data = datatypes.JSON(raw)
		}
	}
	if err := s.notificationRepo.Create(db, notification); err != nil {
		logger.WithError(err).Error("failed to persist notification", "user_id", userID, "type", kind)
		return
	}

	s.broadcaster.BroadcastToUser(userID, EventNotification, notification)

	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		logger.WithError(err).Warn("notification email skipped, user lookup failed", "user_id", userID)
		return
	}
	go s.sendEmails([]string{user.Email}, title, message)
}

func (s *notificationService) sendEmails(recipients []string, subject, message string) {
	for _, to := range recipients {
		addr := to
		err := retry.Do(context.Background(), func() error {
			return s.emailProvider.SendNotification(addr, subject, message)
		})
		if err != nil {
			logger.WithError(err).Error("notification email failed after retries", "to", addr, "subject", subject)
		}
	}
}
