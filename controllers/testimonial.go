// controllers/testimonial.go
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

// CreateTestimonialInput defines the expected JSON structure
type CreateTestimonialInput struct {
	AuthorName   string `json:"authorName" binding:"required"`
	Quote        string `json:"quote" binding:"required"`
	Rating       int    `json:"rating" binding:"omitempty,min=1,max=5"`
	DisplayOrder int    `json:"displayOrder"`
}

// UpdateTestimonialInput defines the expected JSON structure
type UpdateTestimonialInput struct {
	AuthorName   *string `json:"authorName"`
	Quote        *string `json:"quote"`
	Rating       *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	IsApproved   *bool   `json:"isApproved"`
	DisplayOrder *int    `json:"displayOrder"`
}

// CreateTestimonial creates a new testimonial (unapproved until reviewed)
func CreateTestimonial(c *gin.Context) {
	var input CreateTestimonialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	rating := input.Rating
	if rating == 0 {
		rating = 5
	}

	testimonial := models.Testimonial{
		AuthorName:   input.AuthorName,
		Quote:        input.Quote,
		Rating:       rating,
		DisplayOrder: input.DisplayOrder,
	}

	if err := config.DB.Create(&testimonial).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create testimonial")
		return
	}

	c.JSON(http.StatusCreated, testimonial)
}

// GetTestimonials retrieves all testimonials for the admin portal
func GetTestimonials(c *gin.Context) {
	var testimonials []models.Testimonial
	if err := config.DB.Order("display_order").Find(&testimonials).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve testimonials")
		return
	}

	c.JSON(http.StatusOK, testimonials)
}

// GetPublicTestimonials retrieves approved testimonials for the site
func GetPublicTestimonials(c *gin.Context) {
	var testimonials []models.Testimonial
	if err := config.DB.Where("is_approved = ?", true).
		Order("display_order").Find(&testimonials).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve testimonials")
		return
	}

	c.JSON(http.StatusOK, testimonials)
}

// UpdateTestimonial updates an existing testimonial
func UpdateTestimonial(c *gin.Context) {
	testimonialUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid testimonial ID format")
		return
	}

	var input UpdateTestimonialInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var testimonial models.Testimonial
	if err := config.DB.First(&testimonial, "id = ?", testimonialUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Testimonial not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.AuthorName != nil {
		testimonial.AuthorName = *input.AuthorName
	}
	if input.Quote != nil {
		testimonial.Quote = *input.Quote
	}
	if input.Rating != nil {
		testimonial.Rating = *input.Rating
	}
	if input.IsApproved != nil {
		testimonial.IsApproved = *input.IsApproved
	}
	if input.DisplayOrder != nil {
		testimonial.DisplayOrder = *input.DisplayOrder
	}

	if err := config.DB.Save(&testimonial).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update testimonial")
		return
	}

	c.JSON(http.StatusOK, testimonial)
}

// DeleteTestimonial removes a testimonial
func DeleteTestimonial(c *gin.Context) {
	testimonialUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid testimonial ID format")
		return
	}

	result := config.DB.Where("id = ?", testimonialUUID).Delete(&models.Testimonial{})
	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete testimonial")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Testimonial not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Testimonial deleted successfully"})
}
