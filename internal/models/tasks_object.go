package models

// TasksObject is a single inspection sub-item of a task.
type TasksObject struct {
	BaseModel

	TaskID      uint   `gorm:"not null;index" json:"task_id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Completed   bool   `gorm:"not null;default:false" json:"completed"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (TasksObject) TableName() string {
	return "tasks_objects"
}
