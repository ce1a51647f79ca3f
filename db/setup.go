package db

import (
	"github.com/fieldops-dev/fieldops/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

// Migrate wires the pivot models into the many2many relations and creates
// any missing tables. Shared with the test setup, which runs against SQLite.
func Migrate(database *gorm.DB) error {
	if err := database.SetupJoinTable(&models.User{}, "Companies", &models.CompanyUser{}); err != nil {
		return err
	}

	if err := database.SetupJoinTable(&models.User{}, "Options", &models.UserOption{}); err != nil {
		return err
	}

	tables := []interface{}{
		&models.User{},
		&models.Company{},
		&models.CompanyUser{},
		&models.Task{},
		&models.Contact{},
		&models.TasksObject{},
		&models.TasksSubtask{},
		&models.Option{},
		&models.UserOption{},
	}

	migrator := database.Migrator()

	for _, table := range tables {
		if !migrator.HasTable(table) {
			if err := database.AutoMigrate(table); err != nil {
				return err
			}
		}
	}

	return nil
}
