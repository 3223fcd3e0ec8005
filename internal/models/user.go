package models

type User struct {
	BaseModel
	Username          string     `gorm:"uniqueIndex;not null" json:"username"`
	Email             string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string     `gorm:"not null" json:"-"`
	Role              UserRole   `gorm:"type:varchar(20);not null;default:'member'" json:"role"`
	Status            UserStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	IsVerified        bool       `gorm:"default:false" json:"is_verified"`
	VerificationToken string     `json:"-"`

	Level int `gorm:"not null;default:1" json:"level"`

	// Ledger fields. Mutated only through the four ledger operations.
	BalanceAvailable float64 `gorm:"not null;default:0" json:"balance_available"`
	BalancePending   float64 `gorm:"not null;default:0" json:"balance_pending"`

	TasksCompleted int    `gorm:"not null;default:0" json:"tasks_completed"`
	LastTaskDate   string `gorm:"type:varchar(10)" json:"last_task_date"` // YYYY-MM-DD

	ReferralCode  string  `gorm:"uniqueIndex" json:"referral_code"`
	ReferredBy    string  `gorm:"type:uuid;index" json:"referred_by,omitempty"`
	ReferralBonus float64 `gorm:"not null;default:0" json:"referral_bonus"`
	Invites       int     `gorm:"not null;default:0" json:"invites"`

	// Relations
	PaymentMethods []PaymentMethod `gorm:"foreignKey:UserID" json:"payment_methods,omitempty"`
	Withdrawals    []Withdrawal    `gorm:"foreignKey:UserID" json:"withdrawals,omitempty"`
	Upgrades       []Upgrade       `gorm:"foreignKey:UserID" json:"upgrades,omitempty"`
}
