package repositories

import (
	"errors"
	"time"

	"github.com/fieldops-dev/fieldops/internal/models"
	"github.com/fieldops-dev/fieldops/internal/pagination"
	"gorm.io/gorm"
)

const DefaultPerPage = 5

// TaskOrder selects the primary sort column of a task listing. The id
// tie-breaker is always appended.
type TaskOrder string

const (
	TaskOrderStart     TaskOrder = "start"
	TaskOrderCreatedAt TaskOrder = "created_at"
)

type TaskListParams struct {
	Order       TaskOrder
	StartBefore *time.Time
	Statuses    []models.TaskStatus
	PerPage     int
	Cursor      *pagination.Cursor
}

type TaskPage struct {
	Tasks      []models.Task
	PerPage    int
	NextCursor *pagination.Cursor
	PrevCursor *pagination.Cursor
}

// TaskDetail carries a task plus its object-completion aggregate. The count
// pointers are nil only when the row was built without the aggregate columns,
// which the DTO layer treats as a programmer error.
type TaskDetail struct {
	models.Task

	ObjectsAmount    *int64 `gorm:"column:objects_amount"`
	ObjectsCompleted *int64 `gorm:"column:objects_completed"`
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(database *gorm.DB) *TaskRepository {
	return &TaskRepository{db: database}
}

// ActiveCompanyIDs resolves the companies the user may see: linked rows whose
// pivot enabled flag is true. Disabled links stay invisible to task queries.
func (r *TaskRepository) ActiveCompanyIDs(userID uint) ([]uint, error) {
	var ids []uint

	err := r.db.Model(&models.CompanyUser{}).
		Where("user_id = ? AND enabled = ?", userID, true).
		Order("company_id").
		Pluck("company_id", &ids).Error

	if err != nil {
		return nil, err
	}

	return ids, nil
}

// ListUserTasks returns a cursor-paginated page of the user's tasks, scoped
// to their active companies and optionally filtered by start date and status.
func (r *TaskRepository) ListUserTasks(userID uint, params TaskListParams) (*TaskPage, error) {
	companyIDs, err := r.ActiveCompanyIDs(userID)

	if err != nil {
		return nil, err
	}

	order := params.Order
	if order != TaskOrderStart && order != TaskOrderCreatedAt {
		order = TaskOrderCreatedAt
	}

	perPage := params.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	query := r.db.Model(&models.Task{})

	if len(companyIDs) == 0 {
		// Unsatisfiable predicate: the page envelope keeps the same shape as
		// a real result, no special case at the call site.
		query = query.Where("1 = 0")
	} else {
		query = query.Where("company_id IN ?", companyIDs)

		if params.StartBefore != nil {
			query = query.Where("start <= ?", *params.StartBefore)
		}

		if len(params.Statuses) > 0 {
			query = query.Where("status IN ?", params.Statuses)
		}
	}

	column := string(order)
	backward := params.Cursor != nil && params.Cursor.Prev

	if params.Cursor != nil {
		// A cursor minted by a differently ordered listing would silently
		// produce a wrong page, so it is rejected like a corrupt token.
		if params.Cursor.Order != column {
			return nil, pagination.ErrInvalidCursor
		}

		if backward {
			query = query.Where("("+column+", id) > (?, ?)", params.Cursor.Key, params.Cursor.ID)
		} else {
			query = query.Where("("+column+", id) < (?, ?)", params.Cursor.Key, params.Cursor.ID)
		}
	}

	if backward {
		query = query.Order(column + " ASC").Order("id ASC")
	} else {
		query = query.Order(column + " DESC").Order("id DESC")
	}

	// One extra row tells us whether another page exists in scan direction.
	var rows []models.Task

	if err := query.Limit(perPage + 1).Find(&rows).Error; err != nil {
		return nil, err
	}

	more := len(rows) > perPage
	if more {
		rows = rows[:perPage]
	}

	if backward {
		reverseTasks(rows)
	}

	page := &TaskPage{Tasks: rows, PerPage: perPage}

	if len(rows) == 0 {
		return page, nil
	}

	first := rows[0]
	last := rows[len(rows)-1]

	hasNext := more
	hasPrev := params.Cursor != nil

	if backward {
		// Scanning backward: the cursor position guarantees later rows exist,
		// the extra row tells us about earlier ones.
		hasNext = true
		hasPrev = more
	}

	if hasNext {
		page.NextCursor = &pagination.Cursor{Key: sortKey(last, order), ID: last.ID, Order: column}
	}

	if hasPrev {
		page.PrevCursor = &pagination.Cursor{Key: sortKey(first, order), ID: first.ID, Order: column, Prev: true}
	}

	return page, nil
}

// FindUserTask returns the task only when its company is in the user's
// active set; otherwise nil, indistinguishable from a missing task. Contacts
// and the object-completion aggregate are attached eagerly.
func (r *TaskRepository) FindUserTask(userID uint, taskID uint) (*TaskDetail, error) {
	companyIDs, err := r.ActiveCompanyIDs(userID)

	if err != nil {
		return nil, err
	}

	if len(companyIDs) == 0 {
		return nil, nil
	}

	var detail TaskDetail

	err = r.db.Model(&models.Task{}).
		Select(`tasks.*,
			(SELECT COUNT(*) FROM tasks_objects WHERE tasks_objects.task_id = tasks.id) AS objects_amount,
			(SELECT COUNT(*) FROM tasks_objects WHERE tasks_objects.task_id = tasks.id AND tasks_objects.completed = ?) AS objects_completed`, true).
		Where("tasks.company_id IN ?", companyIDs).
		Where("tasks.id = ?", taskID).
		Take(&detail).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := r.db.Where("task_id = ?", taskID).Order("id").Find(&detail.Contacts).Error; err != nil {
		return nil, err
	}

	return &detail, nil
}

// UpdateNotes stores the user's free-text note. Ownership must be checked by
// the caller via FindUserTask first.
func (r *TaskRepository) UpdateNotes(taskID uint, notes string) error {
	return r.db.Model(&models.Task{}).Where("id = ?", taskID).Update("notes", notes).Error
}

func sortKey(task models.Task, order TaskOrder) time.Time {
	if order == TaskOrderStart {
		return task.Start
	}

	return task.CreatedAt
}

func reverseTasks(tasks []models.Task) {
	for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	}
}
