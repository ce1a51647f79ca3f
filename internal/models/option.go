package models

// Option is a global catalog entry of toggleable user preferences.
// The per-user value lives on the UserOption pivot.
type Option struct {
	BaseModel

	Key         string `gorm:"uniqueIndex;not null" json:"key"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Relationships
	Users []User `gorm:"many2many:user_options" json:"-"`
}
