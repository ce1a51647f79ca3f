package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fieldops-dev/fieldops/db"
	"github.com/fieldops-dev/fieldops/internal/dto"
	"github.com/fieldops-dev/fieldops/internal/models"
	"github.com/fieldops-dev/fieldops/internal/pagination"
	"github.com/fieldops-dev/fieldops/internal/repositories"
	"github.com/fieldops-dev/fieldops/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TaskListQuery struct {
	PerPage *int     `form:"per_page" binding:"omitempty,min=1,max=100"`
	Cursor  *string  `form:"cursor"`
	Status  []string `form:"status" binding:"omitempty,dive,oneof=new process break decline complete"`
}

type UpdateNotesRequest struct {
	Notes string `json:"notes" binding:"required,max=255"`
}

// ListTasks is the plain feed: every task of the user's active companies,
// newest first, optionally narrowed to a status allow-list.
func ListTasks(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var query TaskListQuery

	if err := ctx.ShouldBindQuery(&query); err != nil {
		abortWithValidationError(ctx, err)
		return
	}

	perPage := repositories.DefaultPerPage

	if query.PerPage != nil {
		perPage = *query.PerPage
	}

	var cursor *pagination.Cursor

	if query.Cursor != nil {
		cursor, err = pagination.Decode(*query.Cursor)

		if err != nil {
			abortWithFieldError(ctx, "cursor", "The cursor field is invalid.")
			return
		}
	}

	statuses := make([]models.TaskStatus, 0, len(query.Status))

	for _, status := range query.Status {
		statuses = append(statuses, models.TaskStatus(status))
	}

	repo := repositories.NewTaskRepository(db.DB)

	page, err := repo.ListUserTasks(userID, repositories.TaskListParams{
		Order:    repositories.TaskOrderCreatedAt,
		Statuses: statuses,
		PerPage:  perPage,
		Cursor:   cursor,
	})

	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			abortWithFieldError(ctx, "cursor", "The cursor field is invalid.")
			return
		}

		logrus.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("Failed to fetch tasks")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	ctx.JSON(http.StatusOK, taskPageResponse(page))
}

func GetTask(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	repo := repositories.NewTaskRepository(db.DB)

	detail, err := repo.FindUserTask(userID, taskID)

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "task_id": taskID}).WithError(err).Error("Failed to fetch task")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	if detail == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	ctx.JSON(http.StatusOK, dto.NewTaskResource(*detail))
}

// UpdateTaskNotes stores the user's note on a task they can see. The note is
// trimmed first; a whitespace-only note fails validation.
func UpdateTaskNotes(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var body UpdateNotesRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		abortWithValidationError(ctx, err)
		return
	}

	notes := strings.TrimSpace(body.Notes)

	if notes == "" {
		abortWithFieldError(ctx, "notes", "The notes field is required.")
		return
	}

	repo := repositories.NewTaskRepository(db.DB)

	detail, err := repo.FindUserTask(userID, taskID)

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "task_id": taskID}).WithError(err).Error("Failed to fetch task")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch task"})
		return
	}

	if detail == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}

	if err := repo.UpdateNotes(detail.ID, notes); err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "task_id": taskID}).WithError(err).Error("Failed to update notes")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		return
	}

	detail.Notes = &notes

	ctx.JSON(http.StatusOK, dto.NewTaskResource(*detail))
}
