package models

import "time"

type UserOption struct {
	UserID   uint `gorm:"primaryKey" json:"user_id"`
	OptionID uint `gorm:"primaryKey" json:"option_id"`
	Value    bool `gorm:"not null;default:false" json:"value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (UserOption) TableName() string {
	return "user_options"
}
