package dto

import (
	"time"

	"github.com/fieldops-dev/fieldops/internal/models"
	"github.com/fieldops-dev/fieldops/internal/repositories"
)

type ContactResource struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// TaskItem is one row of a task listing. Contacts and object counts are not
// loaded by the list query and therefore not exposed here.
type TaskItem struct {
	ID          uint      `json:"id"`
	CompanyID   uint      `json:"company_id"`
	Status      string    `json:"status"`
	Description string    `json:"description"`
	Start       time.Time `json:"start"`
	Deadline    time.Time `json:"deadline"`
	Address     string    `json:"address"`
	Notes       *string   `json:"notes"`
}

// TaskResource is the single-task view: the task, its contacts and the
// object-completion aggregate.
type TaskResource struct {
	TaskItem

	Contacts         []ContactResource `json:"contacts"`
	ObjectsAmount    int64             `json:"objects_amount"`
	ObjectsCompleted int64             `json:"objects_completed"`
}

func NewTaskItem(task models.Task) TaskItem {
	if task.ID == 0 {
		panic("dto: task must have an id")
	}

	return TaskItem{
		ID:          task.ID,
		CompanyID:   task.CompanyID,
		Status:      string(task.Status),
		Description: task.Description,
		Start:       task.Start,
		Deadline:    task.Deadline,
		Address:     task.Address,
		Notes:       task.Notes,
	}
}

func NewTaskItems(tasks []models.Task) []TaskItem {
	items := make([]TaskItem, 0, len(tasks))

	for _, task := range tasks {
		items = append(items, NewTaskItem(task))
	}

	return items
}

// NewTaskResource maps a detail row into the API shape. Missing aggregate
// columns mean the row was fetched without the completion counts, which is a
// bug in the caller, not user input.
func NewTaskResource(detail repositories.TaskDetail) TaskResource {
	if detail.ObjectsAmount == nil || detail.ObjectsCompleted == nil {
		panic("dto: task detail must have object completion counts loaded")
	}

	contacts := make([]ContactResource, 0, len(detail.Contacts))

	for _, contact := range detail.Contacts {
		contacts = append(contacts, ContactResource{
			ID:    contact.ID,
			Name:  contact.Name,
			Phone: contact.Phone,
			Email: contact.Email,
		})
	}

	return TaskResource{
		TaskItem:         NewTaskItem(detail.Task),
		Contacts:         contacts,
		ObjectsAmount:    *detail.ObjectsAmount,
		ObjectsCompleted: *detail.ObjectsCompleted,
	}
}
