package handlers

import (
	"net/http"

	"github.com/fieldops-dev/fieldops/db"
	"github.com/fieldops-dev/fieldops/internal/dto"
	"github.com/fieldops-dev/fieldops/internal/repositories"
	"github.com/fieldops-dev/fieldops/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ListCompanies returns the user's active companies, each with its
// task-status histogram.
func ListCompanies(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	repo := repositories.NewCompanyRepository(db.DB)

	rows, err := repo.UserCompaniesWithTaskCounts(userID)

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("Failed to fetch companies")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch companies"})
		return
	}

	companies := make([]dto.CompanyResource, 0, len(rows))

	for _, row := range rows {
		companies = append(companies, dto.NewCompanyResource(row))
	}

	ctx.JSON(http.StatusOK, gin.H{"companies": companies})
}
