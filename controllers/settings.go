// controllers/settings.go
package controllers

import (
	"errors"
	"net/http"

	"homecare-backend/config"
	"homecare-backend/models"
	"homecare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpdateSettingsInput struct {
	BusinessName  *string       `json:"businessName"`
	Phone         *string       `json:"phone"`
	Email         *string       `json:"email"`
	Address       *string       `json:"address"`
	ServiceAreas  *models.JSONB `json:"serviceAreas"`
	BusinessHours *models.JSONB `json:"businessHours"`
	AboutText     *string       `json:"aboutText"`
}

// GetSettings returns the business profile shown on the public site
func GetSettings(c *gin.Context) {
	settings, err := loadSettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings updates the single business profile row
func UpdateSettings(c *gin.Context) {
	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings, err := loadSettings()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve settings")
		return
	}

	if input.BusinessName != nil {
		settings.BusinessName = *input.BusinessName
	}
	if input.Phone != nil {
		settings.Phone = *input.Phone
	}
	if input.Email != nil {
		settings.Email = *input.Email
	}
	if input.Address != nil {
		settings.Address = *input.Address
	}
	if input.ServiceAreas != nil {
		settings.ServiceAreas = *input.ServiceAreas
	}
	if input.BusinessHours != nil {
		settings.BusinessHours = *input.BusinessHours
	}
	if input.AboutText != nil {
		settings.AboutText = *input.AboutText
	}

	if err := config.DB.Save(settings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// loadSettings fetches the settings row, creating the default one on
// first access.
func loadSettings() (*models.SiteSettings, error) {
	var settings models.SiteSettings
	err := config.DB.First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.SiteSettings{
			ID:            uuid.New(),
			BusinessName:  "Helping Hands Home Care",
			ServiceAreas:  models.JSONB{},
			BusinessHours: models.JSONB{},
		}
		if err := config.DB.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
