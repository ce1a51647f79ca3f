package models

type User struct {
	BaseModel

	Name         string `gorm:"not null" json:"name"`
	Phone        string `json:"phone"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	// Relationships
	Companies []Company `gorm:"many2many:company_user" json:"-"`
	Options   []Option  `gorm:"many2many:user_options" json:"-"`
}
