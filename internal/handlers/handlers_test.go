package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fieldops-dev/fieldops/db"
	"github.com/fieldops-dev/fieldops/internal/auth"
	"github.com/fieldops-dev/fieldops/internal/models"
	"github.com/fieldops-dev/fieldops/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testPassword = "password123"

// setupAPI wires the real router against a throwaway in-memory database.
// db.DB is a package global, so these tests must not run in parallel.
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	t.Setenv("JWT_SECRET", "handler-test-secret")
	require.NoError(t, auth.InitJWTSecret())

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))

	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrate(database))

	db.DB = database

	return router.NewRouter(), database
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res := httptest.NewRecorder()
	r.ServeHTTP(res, req)

	return res
}

func decodeBody(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))

	return body
}

func fieldErrors(t *testing.T, body map[string]any, field string) []any {
	t.Helper()

	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok, "body has no errors object: %v", body)

	messages, ok := errs[field].([]any)
	require.True(t, ok, "no errors for field %q: %v", field, errs)

	return messages
}

func createUser(t *testing.T, database *gorm.DB, email string) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: string(hash),
	}
	require.NoError(t, database.Create(&user).Error)

	token, err := auth.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)

	return user, token
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

func createTask(t *testing.T, database *gorm.DB, company models.Company, status models.TaskStatus) models.Task {
	t.Helper()

	start := time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC)

	task := models.Task{
		CompanyID:   company.ID,
		Status:      status,
		Description: "Inspect the boiler room",
		Start:       start,
		Deadline:    start.Add(48 * time.Hour),
		Address:     "742 Evergreen Terrace",
	}
	require.NoError(t, database.Create(&task).Error)

	return task
}

func TestHealthCheck(t *testing.T) {
	r, _ := setupAPI(t)

	res := doRequest(t, r, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, res.Code)
	assert.Contains(t, res.Body.String(), "running")
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	r, database := setupAPI(t)

	res := doRequest(t, r, http.MethodPost, "/api/v1/register", "", gin.H{
		"name":     "New User",
		"email":    " New.User@Example.COM ",
		"password": testPassword,
	})

	require.Equal(t, http.StatusCreated, res.Code, res.Body.String())

	body := decodeBody(t, res)
	assert.NotEmpty(t, body["token"])

	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "new.user@example.com", user["email"])

	var stored models.User
	require.NoError(t, database.Where("email = ?", "new.user@example.com").First(&stored).Error)
	assert.NotEqual(t, testPassword, stored.PasswordHash)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := setupAPI(t)

	res := doRequest(t, r, http.MethodPost, "/api/v1/register", "", gin.H{
		"name":     "New User",
		"email":    "not-an-email",
		"password": "short",
	})

	require.Equal(t, http.StatusUnprocessableEntity, res.Code)

	body := decodeBody(t, res)
	assert.NotEmpty(t, body["message"])
	fieldErrors(t, body, "email")
	fieldErrors(t, body, "password")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	r, database := setupAPI(t)

	createUser(t, database, "taken@example.com")

	res := doRequest(t, r, http.MethodPost, "/api/v1/register", "", gin.H{
		"name":     "New User",
		"email":    "taken@example.com",
		"password": testPassword,
	})

	require.Equal(t, http.StatusUnprocessableEntity, res.Code)

	messages := fieldErrors(t, decodeBody(t, res), "email")
	assert.Contains(t, messages[0], "already been taken")
}

func TestLogin(t *testing.T) {
	r, database := setupAPI(t)

	createUser(t, database, "user@example.com")

	res := doRequest(t, r, http.MethodPost, "/api/v1/login", "", gin.H{
		"email":    "user@example.com",
		"password": testPassword,
	})

	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	assert.NotEmpty(t, decodeBody(t, res)["token"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, database := setupAPI(t)

	createUser(t, database, "user@example.com")

	wrongPassword := doRequest(t, r, http.MethodPost, "/api/v1/login", "", gin.H{
		"email":    "user@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)

	unknownEmail := doRequest(t, r, http.MethodPost, "/api/v1/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": testPassword,
	})
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)

	// The two failures are indistinguishable to the caller.
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogout(t *testing.T) {
	r, database := setupAPI(t)

	_, token := createUser(t, database, "user@example.com")

	res := doRequest(t, r, http.MethodPost, "/api/v1/logout", token, nil)

	assert.Equal(t, http.StatusOK, res.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := setupAPI(t)

	missing := doRequest(t, r, http.MethodGet, "/api/v1/tasks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, missing.Code)

	garbage := doRequest(t, r, http.MethodGet, "/api/v1/tasks", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, garbage.Code)
}

func TestTokenForDeletedUserRejected(t *testing.T) {
	r, database := setupAPI(t)

	user, token := createUser(t, database, "user@example.com")
	require.NoError(t, database.Unscoped().Delete(&models.User{}, user.ID).Error)

	res := doRequest(t, r, http.MethodGet, "/api/v1/tasks", token, nil)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
}
