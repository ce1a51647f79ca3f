package models

type Company struct {
	BaseModel

	Name string `gorm:"not null" json:"name"`
	City string `gorm:"not null" json:"city"`

	// Relationships
	Users []User `gorm:"many2many:company_user" json:"-"`
	Tasks []Task `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
