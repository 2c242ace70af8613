// controllers/service.go
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

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	HourlyPrice float64 `json:"hourlyPrice" binding:"required,min=0"`
	DailyPrice  float64 `json:"dailyPrice" binding:"required,min=0"`
	Category    string  `json:"category"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	HourlyPrice *float64 `json:"hourlyPrice"`
	DailyPrice  *float64 `json:"dailyPrice"`
	Category    *string  `json:"category"`
	IsActive    *bool    `json:"isActive"`
}

// CreateService creates a new care service
func CreateService(c *gin.Context) {
	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	service := models.Service{
		Name:        input.Name,
		Description: input.Description,
		HourlyPrice: input.HourlyPrice,
		DailyPrice:  input.DailyPrice,
		Category:    input.Category,
		IsActive:    true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services
func GetServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetPublicServices retrieves active services for the marketing site
func GetPublicServices(c *gin.Context) {
	var services []models.Service
	if err := config.DB.Where("is_active = ?", true).Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Retrieve existing service
	var service models.Service
	if err := config.DB.First(&service, "id = ?", serviceUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	// Update fields if provided
	if input.Name != nil {
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.HourlyPrice != nil {
		service.HourlyPrice = *input.HourlyPrice
	}
	if input.DailyPrice != nil {
		service.DailyPrice = *input.DailyPrice
	}
	if input.Category != nil {
		service.Category = *input.Category
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service
func DeleteService(c *gin.Context) {
	serviceUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid service ID format")
		return
	}

	result := config.DB.Where("id = ?", serviceUUID).Delete(&models.Service{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
