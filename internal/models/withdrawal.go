package models

import "gorm.io/datatypes"

type PaymentMethod struct {
	BaseModel
	UserID  string         `gorm:"type:uuid;not null;index" json:"user_id"`
	Label   string         `gorm:"not null" json:"label"` // "bank", "crypto", ...
	Details datatypes.JSON `gorm:"type:jsonb" json:"details"`
}

type Withdrawal struct {
	BaseModel
	UserID          string           `gorm:"type:uuid;not null;index" json:"user_id"`
	PaymentMethodID string           `gorm:"type:uuid;not null" json:"payment_method_id"`
	Amount          float64          `gorm:"not null" json:"amount"`
	Status          WithdrawalStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`

	PaymentMethod PaymentMethod `gorm:"foreignKey:PaymentMethodID" json:"payment_method,omitempty"`
}

// Transaction mirrors a Withdrawal (or records a deposit) for the user's
// statement view. Its status follows the withdrawal state machine:
// approved -> completed, declined -> failed.
type Transaction struct {
	BaseModel
	UserID       string            `gorm:"type:uuid;not null;index" json:"user_id"`
	WithdrawalID *string           `gorm:"type:uuid;index" json:"withdrawal_id,omitempty"`
	Amount       float64           `gorm:"not null" json:"amount"` // signed; negative for withdrawals
	Type         TransactionType   `gorm:"type:varchar(20);not null" json:"type"`
	Status       TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}
