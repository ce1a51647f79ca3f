package models

import "time"

type TaskStatus string

const (
	TaskStatusNew      TaskStatus = "new"
	TaskStatusProcess  TaskStatus = "process"
	TaskStatusBreak    TaskStatus = "break"
	TaskStatusDecline  TaskStatus = "decline"
	TaskStatusComplete TaskStatus = "complete"
)

// TaskStatuses returns every valid status value.
func TaskStatuses() []TaskStatus {
	return []TaskStatus{
		TaskStatusNew,
		TaskStatusProcess,
		TaskStatusBreak,
		TaskStatusDecline,
		TaskStatusComplete,
	}
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusNew, TaskStatusProcess, TaskStatusBreak, TaskStatusDecline, TaskStatusComplete:
		return true
	}
	return false
}

// Task is an inspection assignment belonging to exactly one company.
// Notes is the only field users mutate through the API.
type Task struct {
	BaseModel

	CompanyID   uint       `gorm:"not null;index" json:"company_id"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'new';index" json:"status"`
	Description string     `gorm:"type:text;not null" json:"description"`
	Start       time.Time  `gorm:"not null;index" json:"start"`
	Deadline    time.Time  `gorm:"not null" json:"deadline"`
	Address     string     `gorm:"not null" json:"address"`
	Notes       *string    `json:"notes"`

	// Relationships
	Company  Company        `gorm:"foreignKey:CompanyID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Contacts []Contact      `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Objects  []TasksObject  `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Subtasks []TasksSubtask `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
