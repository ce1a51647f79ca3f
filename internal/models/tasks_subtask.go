package models

type SubtaskStatus string

const (
	SubtaskStatusNew      SubtaskStatus = "new"
	SubtaskStatusComplete SubtaskStatus = "complete"
)

func (s SubtaskStatus) Valid() bool {
	return s == SubtaskStatusNew || s == SubtaskStatusComplete
}

type TasksSubtask struct {
	BaseModel

	TaskID uint          `gorm:"not null;index" json:"task_id"`
	Target string        `gorm:"type:text;not null" json:"target"`
	Status SubtaskStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

func (TasksSubtask) TableName() string {
	return "tasks_subtasks"
}
