package models

type Upgrade struct {
	BaseModel
	UserID string        `gorm:"type:uuid;not null;index" json:"user_id"`
	Level  int           `gorm:"not null" json:"level"` // target level, must exceed the user's level at creation
	Amount float64       `gorm:"not null" json:"amount"`
	Status UpgradeStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
}
