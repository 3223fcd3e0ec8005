package dto

import "github.com/michealohagwam/dta-backend-clean/internal/models"

type CreateTaskRequest struct {
	Title       string  `json:"title" validate:"required,min=3,max=128"`
	Description string  `json:"description"`
	Reward      float64 `json:"reward" validate:"required,gt=0"`
	MinLevel    int     `json:"min_level" validate:"gte=1"`
}

type AdminUserFilter struct {
	Status   string `form:"status"`
	Role     string `form:"role"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type UserListResponse struct {
	Users []UserProfile `json:"users"`
	Total int64         `json:"total"`
}

type InviteAdminRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
}

type AnnouncementRequest struct {
	Title   string `json:"title" validate:"required,min=3,max=128"`
	Message string `json:"message" validate:"required"`
	Email   bool   `json:"email"` // also deliver by email, best-effort
}

func NewUserListResponse(users []models.User, total int64) *UserListResponse {
	out := make([]UserProfile, 0, len(users))
	for i := range users {
		out = append(out, *NewUserProfile(&users[i]))
	}
	return &UserListResponse{Users: out, Total: total}
}
