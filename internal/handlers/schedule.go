package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fieldops-dev/fieldops/db"
	"github.com/fieldops-dev/fieldops/internal/dto"
	"github.com/fieldops-dev/fieldops/internal/models"
	"github.com/fieldops-dev/fieldops/internal/pagination"
	"github.com/fieldops-dev/fieldops/internal/repositories"
	"github.com/fieldops-dev/fieldops/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ScheduleQuery struct {
	PerPage *int    `form:"per_page" binding:"omitempty,min=1,max=100"`
	Cursor  *string `form:"cursor"`
	Date    *string `form:"date"`
}

// GetSchedule is the calendar view: open tasks (new/process) that have
// started by the requested date, newest start first.
func GetSchedule(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var query ScheduleQuery

	if err := ctx.ShouldBindQuery(&query); err != nil {
		abortWithValidationError(ctx, err)
		return
	}

	perPage := repositories.DefaultPerPage

	if query.PerPage != nil {
		perPage = *query.PerPage
	}

	date := time.Now()

	if query.Date != nil {
		parsed, err := parseDate(*query.Date)

		if err != nil {
			abortWithFieldError(ctx, "date", "The date field must be a valid date.")
			return
		}

		date = parsed
	}

	var cursor *pagination.Cursor

	if query.Cursor != nil {
		cursor, err = pagination.Decode(*query.Cursor)

		if err != nil {
			abortWithFieldError(ctx, "cursor", "The cursor field is invalid.")
			return
		}
	}

	repo := repositories.NewTaskRepository(db.DB)

	page, err := repo.ListUserTasks(userID, repositories.TaskListParams{
		Order:       repositories.TaskOrderStart,
		StartBefore: &date,
		Statuses:    []models.TaskStatus{models.TaskStatusNew, models.TaskStatusProcess},
		PerPage:     perPage,
		Cursor:      cursor,
	})

	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			abortWithFieldError(ctx, "cursor", "The cursor field is invalid.")
			return
		}

		logrus.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("Failed to fetch schedule")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
		return
	}

	ctx.JSON(http.StatusOK, taskPageResponse(page))
}

func taskPageResponse(page *repositories.TaskPage) gin.H {
	return gin.H{
		"data": dto.NewTaskItems(page.Tasks),
		"meta": gin.H{
			"per_page":    page.PerPage,
			"next_cursor": pagination.EncodeOrNil(page.NextCursor),
			"prev_cursor": pagination.EncodeOrNil(page.PrevCursor),
		},
	}
}

func parseDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid date: %q", value)
}
