package dto

import (
	"fmt"

	"github.com/fieldops-dev/fieldops/internal/repositories"
)

// CompanyTasks is the per-company task-status histogram exposed by the API.
type CompanyTasks struct {
	Total    int64 `json:"total"`
	New      int64 `json:"new"`
	Process  int64 `json:"process"`
	Break    int64 `json:"break"`
	Decline  int64 `json:"decline"`
	Complete int64 `json:"complete"`
}

type CompanyResource struct {
	ID    uint         `json:"id"`
	Name  string       `json:"name"`
	City  string       `json:"city"`
	Tasks CompanyTasks `json:"tasks"`
}

// NewCompanyResource maps a histogram row into the API shape. A row missing
// required fields or with an inconsistent histogram can only come from a
// broken query, so this panics instead of returning an error.
func NewCompanyResource(row repositories.CompanyTaskCounts) CompanyResource {
	if row.ID == 0 {
		panic("dto: company row must have an id")
	}

	if row.Name == "" {
		panic("dto: company row must have a name")
	}

	if row.City == "" {
		panic("dto: company row must have a city")
	}

	sum := row.TasksNew + row.TasksProcess + row.TasksBreak + row.TasksDecline + row.TasksComplete

	if sum != row.TasksCount {
		panic(fmt.Sprintf("dto: company %d histogram does not add up: total %d, sum %d", row.ID, row.TasksCount, sum))
	}

	return CompanyResource{
		ID:   row.ID,
		Name: row.Name,
		City: row.City,
		Tasks: CompanyTasks{
			Total:    row.TasksCount,
			New:      row.TasksNew,
			Process:  row.TasksProcess,
			Break:    row.TasksBreak,
			Decline:  row.TasksDecline,
			Complete: row.TasksComplete,
		},
	}
}
