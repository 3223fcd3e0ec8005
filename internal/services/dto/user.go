package dto

import (
	"time"

	"github.com/michealohagwam/dta-backend-clean/internal/models"
)

type UserProfile struct {
	ID             string            `json:"id"`
	Username       string            `json:"username"`
	Email          string            `json:"email"`
	Role           models.UserRole   `json:"role"`
	Status         models.UserStatus `json:"status"`
	IsVerified     bool              `json:"is_verified"`
	Level          int               `json:"level"`
	TasksCompleted int               `json:"tasks_completed"`
	ReferralCode   string            `json:"referral_code"`
	Invites        int               `json:"invites"`
	CreatedAt      time.Time         `json:"created_at"`
}

type BalanceResponse struct {
	Available     float64 `json:"available"`
	Pending       float64 `json:"pending"`
	ReferralBonus float64 `json:"referral_bonus"`
	Level         int     `json:"level"`
}

type CreatePaymentMethodRequest struct {
	Label   string         `json:"label" validate:"required,min=2,max=64"`
	Details map[string]any `json:"details" validate:"required"`
}

func NewUserProfile(user *models.User) *UserProfile {
	return &UserProfile{
		ID:             user.ID,
		Username:       user.Username,
		Email:          user.Email,
		Role:           user.Role,
		Status:         user.Status,
		IsVerified:     user.IsVerified,
		Level:          user.Level,
		TasksCompleted: user.TasksCompleted,
		ReferralCode:   user.ReferralCode,
		Invites:        user.Invites,
		CreatedAt:      user.CreatedAt,
	}
}
