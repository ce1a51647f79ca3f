package repositories

import (
	"errors"

	"github.com/fieldops-dev/fieldops/internal/models"
	"gorm.io/gorm"
)

// CompanyTaskCounts is one row of the per-company task-status histogram.
// Counts are recomputed from the tasks table on every call, never stored.
type CompanyTaskCounts struct {
	ID            uint
	Name          string
	City          string
	TasksCount    int64
	TasksNew      int64
	TasksProcess  int64
	TasksBreak    int64
	TasksDecline  int64
	TasksComplete int64
}

// CompanyWithEnabled is a company row joined with the user's pivot flag.
type CompanyWithEnabled struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	City    string `json:"city"`
	Enabled bool   `json:"enabled"`
}

type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(database *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: database}
}

// UserCompaniesWithTaskCounts returns the user's active companies with the
// total task count and the count per status, computed in a single grouped
// query to avoid per-company fan-out.
func (r *CompanyRepository) UserCompaniesWithTaskCounts(userID uint) ([]CompanyTaskCounts, error) {
	var rows []CompanyTaskCounts

	err := r.db.Table("companies").
		Select(`companies.id, companies.name, companies.city,
			COUNT(tasks.id) AS tasks_count,
			COUNT(CASE WHEN tasks.status = ? THEN 1 END) AS tasks_new,
			COUNT(CASE WHEN tasks.status = ? THEN 1 END) AS tasks_process,
			COUNT(CASE WHEN tasks.status = ? THEN 1 END) AS tasks_break,
			COUNT(CASE WHEN tasks.status = ? THEN 1 END) AS tasks_decline,
			COUNT(CASE WHEN tasks.status = ? THEN 1 END) AS tasks_complete`,
			models.TaskStatusNew,
			models.TaskStatusProcess,
			models.TaskStatusBreak,
			models.TaskStatusDecline,
			models.TaskStatusComplete).
		Joins("JOIN company_user ON company_user.company_id = companies.id AND company_user.user_id = ? AND company_user.enabled = ?", userID, true).
		Joins("LEFT JOIN tasks ON tasks.company_id = companies.id").
		Group("companies.id, companies.name, companies.city").
		Order("companies.id").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// UserCompanies lists every company linked to the user, enabled or not,
// with the pivot flag attached.
func (r *CompanyRepository) UserCompanies(userID uint) ([]CompanyWithEnabled, error) {
	var rows []CompanyWithEnabled

	err := r.db.Table("companies").
		Select("companies.id, companies.name, companies.city, company_user.enabled").
		Joins("JOIN company_user ON company_user.company_id = companies.id AND company_user.user_id = ?", userID).
		Order("companies.id").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}

	return rows, nil
}

// FindCompany looks a company up by id, nil when absent.
func (r *CompanyRepository) FindCompany(companyID uint) (*models.Company, error) {
	var company models.Company

	err := r.db.First(&company, companyID).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &company, nil
}

// SetCompanyEnabled flips the pivot flag. Returns false when the company is
// not linked to the user at all.
func (r *CompanyRepository) SetCompanyEnabled(userID uint, companyID uint, enabled bool) (bool, error) {
	var pivot models.CompanyUser

	err := r.db.Where("user_id = ? AND company_id = ?", userID, companyID).First(&pivot).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	err = r.db.Model(&models.CompanyUser{}).
		Where("user_id = ? AND company_id = ?", userID, companyID).
		Update("enabled", enabled).Error

	if err != nil {
		return false, err
	}

	return true, nil
}

// UserCompany fetches a single linked company with its pivot flag, nil when
// the link does not exist.
func (r *CompanyRepository) UserCompany(userID uint, companyID uint) (*CompanyWithEnabled, error) {
	var row CompanyWithEnabled

	err := r.db.Table("companies").
		Select("companies.id, companies.name, companies.city, company_user.enabled").
		Joins("JOIN company_user ON company_user.company_id = companies.id AND company_user.user_id = ?", userID).
		Where("companies.id = ?", companyID).
		Take(&row).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &row, nil
}
