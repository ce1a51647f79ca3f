package handlers_test

import (
	"net/http"
	"testing"

	"github.com/fieldops-dev/fieldops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCompaniesHistogram(t *testing.T) {
	r, database := setupAPI(t)

	user, token := createUser(t, database, "user@example.com")
	company := createCompany(t, database, "Acme")
	linkCompany(t, database, user, company, true)

	createTask(t, database, company, models.TaskStatusNew)
	createTask(t, database, company, models.TaskStatusNew)
	createTask(t, database, company, models.TaskStatusProcess)
	createTask(t, database, company, models.TaskStatusComplete)

	res := doRequest(t, r, http.MethodGet, "/api/v1/companies", token, nil)

	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	companies := decodeBody(t, res)["companies"].([]any)
	require.Len(t, companies, 1)

	row := companies[0].(map[string]any)
	assert.Equal(t, "Acme", row["name"])
	assert.Equal(t, "Springfield", row["city"])

	tasks := row["tasks"].(map[string]any)
	assert.EqualValues(t, 4, tasks["total"])
	assert.EqualValues(t, 2, tasks["new"])
	assert.EqualValues(t, 1, tasks["process"])
	assert.EqualValues(t, 0, tasks["break"])
	assert.EqualValues(t, 0, tasks["decline"])
	assert.EqualValues(t, 1, tasks["complete"])
}

func TestListCompaniesOmitsDisabled(t *testing.T) {
	r, database := setupAPI(t)

	user, token := createUser(t, database, "user@example.com")
	on := createCompany(t, database, "On")
	off := createCompany(t, database, "Off")
	linkCompany(t, database, user, on, true)
	linkCompany(t, database, user, off, false)

	res := doRequest(t, r, http.MethodGet, "/api/v1/companies", token, nil)

	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	companies := decodeBody(t, res)["companies"].([]any)
	require.Len(t, companies, 1)
	assert.Equal(t, "On", companies[0].(map[string]any)["name"])
}

func TestDeprecatedCompanyRoute(t *testing.T) {
	r, database := setupAPI(t)

	user, token := createUser(t, database, "user@example.com")
	company := createCompany(t, database, "Acme")
	linkCompany(t, database, user, company, true)

	legacy := doRequest(t, r, http.MethodGet, "/api/v1/company", token, nil)
	current := doRequest(t, r, http.MethodGet, "/api/v1/companies", token, nil)

	require.Equal(t, http.StatusOK, legacy.Code, legacy.Body.String())

	// Same payload, plus deprecation headers.
	assert.JSONEq(t, current.Body.String(), legacy.Body.String())
	assert.Equal(t, "true", legacy.Header().Get("Deprecation"))
	assert.NotEmpty(t, legacy.Header().Get("Sunset"))
	assert.Contains(t, legacy.Header().Get("Link"), "/api/v1/companies")
}
