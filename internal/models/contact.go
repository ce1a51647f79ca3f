package models

type Contact struct {
	BaseModel

	TaskID uint    `gorm:"not null;index" json:"task_id"`
	Name   string  `gorm:"not null" json:"name"`
	Phone  *string `json:"phone"`
	Email  *string `json:"email"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
