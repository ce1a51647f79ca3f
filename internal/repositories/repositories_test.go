package repositories

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/fieldops-dev/fieldops/db"
	"github.com/fieldops-dev/fieldops/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named in-memory database: shared across the pooled connections of
	// this gorm handle, isolated between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(database))

	return database
}

func createUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "irrelevant",
	}
	require.NoError(t, database.Create(&user).Error)

	return user
}

func createCompany(t *testing.T, database *gorm.DB, name string) models.Company {
	t.Helper()

	company := models.Company{Name: name, City: "Springfield"}
	require.NoError(t, database.Create(&company).Error)

	return company
}

func linkCompany(t *testing.T, database *gorm.DB, user models.User, company models.Company, enabled bool) {
	t.Helper()

	pivot := models.CompanyUser{
		UserID:    user.ID,
		CompanyID: company.ID,
		Enabled:   enabled,
	}
	require.NoError(t, database.Create(&pivot).Error)
}

type taskSpec struct {
	status    models.TaskStatus
	start     time.Time
	createdAt time.Time
}

func createTask(t *testing.T, database *gorm.DB, company models.Company, spec taskSpec) models.Task {
	t.Helper()

	status := spec.status
	if status == "" {
		status = models.TaskStatusNew
	}

	start := spec.start
	if start.IsZero() {
		start = time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)
	}

	task := models.Task{
		CompanyID:   company.ID,
		Status:      status,
		Description: "Inspect the boiler room",
		Start:       start,
		Deadline:    start.Add(48 * time.Hour),
		Address:     "742 Evergreen Terrace",
	}

	if !spec.createdAt.IsZero() {
		task.CreatedAt = spec.createdAt
		task.UpdatedAt = spec.createdAt
	}

	require.NoError(t, database.Create(&task).Error)

	return task
}
