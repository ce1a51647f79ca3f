package main

import (
	"github.com/fieldops-dev/fieldops/db"
	"github.com/fieldops-dev/fieldops/internal/auth"
	"github.com/fieldops-dev/fieldops/internal/config"
	"github.com/fieldops-dev/fieldops/internal/router"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("No .env file found, relying on the environment")
	}

	cfg, err := config.Load()

	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if err := auth.InitJWTSecret(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize JWT secret")
	}

	if err := db.ConnectDatabase(cfg.DatabaseURL); err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := db.MigrateDatabase(); err != nil {
		logrus.WithError(err).Fatal("Failed to migrate database")
	}

	r := router.NewRouter()

	logrus.WithField("port", cfg.Port).Info("Starting server")

	if err := r.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
