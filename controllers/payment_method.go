// controllers/payment_method.go
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

// CreatePaymentMethodInput defines the expected JSON structure for
// creating a payment method. The paymentDetails keys depend on type:
// a bank account carries account/routing numbers, Zelle an email, etc.
type CreatePaymentMethodInput struct {
	Name           string       `json:"name" binding:"required"`
	Type           string       `json:"type" binding:"required,oneof=cash check bank_account zelle cash_app other"`
	PaymentDetails models.JSONB `json:"paymentDetails"`
	DisplayOrder   int          `json:"displayOrder"`
}

// UpdatePaymentMethodInput defines the expected JSON structure for updates
type UpdatePaymentMethodInput struct {
	Name           *string       `json:"name"`
	Type           *string       `json:"type" binding:"omitempty,oneof=cash check bank_account zelle cash_app other"`
	PaymentDetails *models.JSONB `json:"paymentDetails"`
	IsActive       *bool         `json:"isActive"`
	DisplayOrder   *int          `json:"displayOrder"`
}

// CreatePaymentMethod creates a new payment method
func CreatePaymentMethod(c *gin.Context) {
	var input CreatePaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	details := input.PaymentDetails
	if details == nil {
		details = models.JSONB{}
	}

	method := models.PaymentMethod{
		Name:           input.Name,
		Type:           input.Type,
		PaymentDetails: details,
		IsActive:       true,
		DisplayOrder:   input.DisplayOrder,
	}

	if err := config.DB.Create(&method).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create payment method")
		return
	}

	c.JSON(http.StatusCreated, method)
}

// GetPaymentMethods retrieves all payment methods in display order
func GetPaymentMethods(c *gin.Context) {
	var methods []models.PaymentMethod
	if err := config.DB.Order("display_order").Find(&methods).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve payment methods")
		return
	}

	c.JSON(http.StatusOK, methods)
}

// UpdatePaymentMethod updates an existing payment method
func UpdatePaymentMethod(c *gin.Context) {
	methodUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method ID format")
		return
	}

	var input UpdatePaymentMethodInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var method models.PaymentMethod
	if err := config.DB.First(&method, "id = ?", methodUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Payment method not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		method.Name = *input.Name
	}
	if input.Type != nil {
		method.Type = *input.Type
	}
	if input.PaymentDetails != nil {
		method.PaymentDetails = *input.PaymentDetails
	}
	if input.IsActive != nil {
		method.IsActive = *input.IsActive
	}
	if input.DisplayOrder != nil {
		method.DisplayOrder = *input.DisplayOrder
	}

	if err := config.DB.Save(&method).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update payment method")
		return
	}

	c.JSON(http.StatusOK, method)
}

// DeletePaymentMethod soft deletes a payment method
func DeletePaymentMethod(c *gin.Context) {
	methodUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid payment method ID format")
		return
	}

	result := config.DB.Where("id = ?", methodUUID).Delete(&models.PaymentMethod{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete payment method")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Payment method not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment method deleted successfully"})
}
