package dto

type CreateWithdrawalRequest struct {
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	PaymentMethodID string  `json:"payment_method_id" validate:"required"`
}

type CreateUpgradeRequest struct {
	Level int `json:"level" validate:"required,gt=1"`
}

type DashboardStats struct {
	TotalUsers         int64   `json:"totalUsers"`
	TotalEarnings      float64 `json:"totalEarnings"`
	TaskCompletions    int64   `json:"taskCompletions"`
	PendingWithdrawals int64   `json:"pendingWithdrawals"`
}
