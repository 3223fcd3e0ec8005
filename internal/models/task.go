package models

type Task struct {
	BaseModel
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Reward      float64 `gorm:"not null" json:"reward"`
	MinLevel    int     `gorm:"not null;default:1" json:"min_level"`
	Completions int     `gorm:"not null;default:0" json:"completions"`
	Archived    bool    `gorm:"not null;default:false" json:"archived"`
}

type TaskCompletion struct {
	BaseModel
	TaskID string  `gorm:"type:uuid;not null;index" json:"task_id"`
	UserID string  `gorm:"type:uuid;not null;index" json:"user_id"`
	Reward float64 `gorm:"not null" json:"reward"`
}
