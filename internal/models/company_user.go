package models

import "time"

// CompanyUser is the user<->company pivot. A user only sees tasks of
// companies whose Enabled flag is true.
type CompanyUser struct {
	UserID    uint `gorm:"primaryKey" json:"user_id"`
	CompanyID uint `gorm:"primaryKey" json:"company_id"`
	Enabled   bool `gorm:"not null;default:true" json:"enabled"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CompanyUser) TableName() string {
	return "company_user"
}
