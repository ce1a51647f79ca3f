package router

import (
	"time"

	"github.com/fieldops-dev/fieldops/internal/handlers"
	"github.com/fieldops-dev/fieldops/internal/middleware"
	"github.com/fieldops-dev/fieldops/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	r := gin.Default()

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Deprecation", "Sunset", "Link"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		v1 := api.Group("/v1")
		{
			v1.POST("/register", handlers.Register)
			v1.POST("/login", handlers.Login)

			protected := v1.Group("", middleware.AuthMiddleware())
			{
				protected.POST("/logout", handlers.Logout)

				protected.GET("/profile", handlers.Me)
				protected.PUT("/profile/update", handlers.UpdateProfile)
				protected.GET("/profile/company", handlers.ProfileCompanies)
				protected.PUT("/profile/company", handlers.UpdateProfileCompany)
				protected.GET("/profile/options", handlers.ProfileOptions)
				protected.PUT("/profile/options", handlers.UpdateProfileOption)

				protected.GET("/companies", handlers.ListCompanies)

				// Legacy route kept for old mobile clients
				protected.GET("/company", middleware.DeprecationWarning("/api/v1/companies"), handlers.ListCompanies)

				protected.GET("/schedule", handlers.GetSchedule)
				protected.GET("/tasks", handlers.ListTasks)
				protected.GET("/task/:id", handlers.GetTask)
				protected.PUT("/task/:id", handlers.UpdateTaskNotes)
			}
		}
	}

	return r
}
