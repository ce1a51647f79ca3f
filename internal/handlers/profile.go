package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/fieldops-dev/fieldops/db"
	"github.com/fieldops-dev/fieldops/internal/models"
	"github.com/fieldops-dev/fieldops/internal/repositories"
	"github.com/fieldops-dev/fieldops/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UpdateProfileRequest struct {
	Name                 string `json:"name"`
	Phone                string `json:"phone"`
	Email                string `json:"email" binding:"omitempty,email"`
	Password             string `json:"password" binding:"omitempty,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required_with=Password,omitempty,eqfield=Password"`
}

type UpdateCompanyRequest struct {
	CompanyID uint  `json:"company_id" binding:"required"`
	Enabled   *bool `json:"enabled" binding:"required"`
}

type UpdateOptionRequest struct {
	OptionID *uint   `json:"option_id" binding:"required_without=Key"`
	Key      *string `json:"key" binding:"required_without=OptionID"`
	Value    *bool   `json:"value" binding:"required"`
}

// OptionValue is one catalog option joined with the user's pivot value.
type OptionValue struct {
	ID          uint   `json:"id"`
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Value       bool   `json:"value"`
}

func Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		logrus.WithFields(logrus.Fields{"user_id": currentUser.ID}).WithError(err).Error("Failed to fetch user")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}

func UpdateProfile(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, currentUser.ID).Error; err != nil {
		logrus.WithFields(logrus.Fields{"user_id": currentUser.ID}).WithError(err).Error("Failed to fetch user")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var body UpdateProfileRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		abortWithValidationError(ctx, err)
		return
	}

	updates := make(map[string]interface{})

	if body.Name != "" {
		updates["name"] = strings.TrimSpace(body.Name)
	}

	if body.Phone != "" {
		updates["phone"] = strings.TrimSpace(body.Phone)
	}

	if body.Email != "" {
		newEmail := strings.ToLower(strings.TrimSpace(body.Email))

		if newEmail != user.Email {
			var existingUser models.User

			err := db.DB.Where("email = ? AND id != ?", newEmail, user.ID).First(&existingUser).Error

			if err == nil {
				abortWithFieldError(ctx, "email", "The email has already been taken.")
				return
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithFields(logrus.Fields{"user_id": user.ID}).WithError(err).Error("Database error when checking existing email")
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
				return
			}
		}

		updates["email"] = newEmail
	}

	if body.Password != "" {
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)

		if err != nil {
			logrus.WithError(err).Error("Failed to hash new password")
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		updates["password_hash"] = string(passwordHash)
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&user).Updates(updates).Error; err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).WithError(err).Error("Failed to update user")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.First(&user, user.ID).Error; err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID}).WithError(err).Error("Failed to refresh user")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    userResponse(user),
	})
}

// ProfileCompanies lists every company linked to the user, enabled or not,
// so the client can render the toggles.
func ProfileCompanies(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	repo := repositories.NewCompanyRepository(db.DB)

	companies, err := repo.UserCompanies(userID)

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("Failed to fetch companies")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch companies"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"companies": companies})
}

func UpdateProfileCompany(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateCompanyRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		abortWithValidationError(ctx, err)
		return
	}

	repo := repositories.NewCompanyRepository(db.DB)

	company, err := repo.FindCompany(body.CompanyID)

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("Failed to fetch company")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if company == nil {
		abortWithFieldError(ctx, "company_id", "The selected company_id is invalid.")
		return
	}

	updated, err := repo.SetCompanyEnabled(userID, body.CompanyID, *body.Enabled)

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "company_id": body.CompanyID}).WithError(err).Error("Failed to update company status")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if !updated {
		ctx.JSON(http.StatusNotFound, gin.H{"message": "Company not found or does not belong to user"})
		return
	}

	row, err := repo.UserCompany(userID, body.CompanyID)

	if err != nil || row == nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "company_id": body.CompanyID}).WithError(err).Error("Failed to refresh company")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Company status updated successfully",
		"company": row,
	})
}

// ProfileOptions returns the full option catalog with the user's values;
// options the user never touched default to false.
func ProfileOptions(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	rows, err := userOptionValues(userID)

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("Failed to fetch options")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch options"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"options": rows})
}

func UpdateProfileOption(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateOptionRequest

	if err := ctx.ShouldBindJSON(&body); err != nil {
		abortWithValidationError(ctx, err)
		return
	}

	var option models.Option

	if body.OptionID != nil {
		err = db.DB.First(&option, *body.OptionID).Error
	} else {
		err = db.DB.Where("key = ?", *body.Key).First(&option).Error
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		if body.OptionID != nil {
			abortWithFieldError(ctx, "option_id", "The selected option_id is invalid.")
		} else {
			abortWithFieldError(ctx, "key", "The selected key is invalid.")
		}

		return
	}

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID}).WithError(err).Error("Failed to fetch option")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	pivot := models.UserOption{
		UserID:   userID,
		OptionID: option.ID,
		Value:    *body.Value,
	}

	err = db.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "option_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pivot).Error

	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": userID, "option_id": option.ID}).WithError(err).Error("Failed to update option")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Option updated successfully",
		"option": OptionValue{
			ID:          option.ID,
			Key:         option.Key,
			Name:        option.Name,
			Description: option.Description,
			Value:       *body.Value,
		},
	})
}

func userOptionValues(userID uint) ([]OptionValue, error) {
	var raw []struct {
		ID          uint
		Key         string
		Name        string
		Description string
		Value       *bool
	}

	err := db.DB.Table("options").
		Select("options.id, options.key, options.name, options.description, user_options.value").
		Joins("LEFT JOIN user_options ON user_options.option_id = options.id AND user_options.user_id = ?", userID).
		Order("options.id").
		Scan(&raw).Error

	if err != nil {
		return nil, err
	}

	rows := make([]OptionValue, 0, len(raw))

	for _, row := range raw {
		value := false

		if row.Value != nil {
			value = *row.Value
		}

		rows = append(rows, OptionValue{
			ID:          row.ID,
			Key:         row.Key,
			Name:        row.Name,
			Description: row.Description,
			Value:       value,
		})
	}

	return rows, nil
}
