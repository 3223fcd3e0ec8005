package models

import "time"

// Referral is created exactly once per (referrer, referred) pair, at the
// moment the referred signup completes. Append-only apart from Bonus.
type Referral struct {
	BaseModel
	ReferrerID     string    `gorm:"type:uuid;not null;index;uniqueIndex:idx_referrer_referred" json:"referrer_id"`
	ReferredUserID string    `gorm:"type:uuid;not null;uniqueIndex:idx_referrer_referred" json:"referred_user_id"`
	Bonus          float64   `gorm:"not null;default:0" json:"bonus"`
	Suspicious     bool      `gorm:"not null;default:false" json:"suspicious"`
	JoinedAt       time.Time `gorm:"not null" json:"joined_at"`

	ReferredUser User `gorm:"foreignKey:ReferredUserID" json:"referred_user,omitempty"`
}
