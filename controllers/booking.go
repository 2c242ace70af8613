// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"homecare-backend/config"
	"homecare-backend/models"
	"homecare-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBookingInput defines the expected JSON structure for the public
// booking form. Phone, address and the computed total are typed fields
// on the booking row; nothing is smuggled through the notes blob.
type CreateBookingInput struct {
	ServiceID   uuid.UUID  `json:"serviceId" binding:"required"`
	ClientName  string     `json:"clientName" binding:"required"`
	ClientEmail string     `json:"clientEmail" binding:"required,email"`
	Phone       string     `json:"phone" binding:"required"`
	Address     string     `json:"address" binding:"required"`
	City        string     `json:"city"`
	StartDate   time.Time  `json:"startDate" binding:"required"`
	EndDate     *time.Time `json:"endDate"`
	StartTime   string     `json:"startTime"`
	EndTime     string     `json:"endTime"`
	HoursPerDay int        `json:"hoursPerDay" binding:"min=0,max=24"`
	Notes       string     `json:"notes"`
}

// UpdateBookingStatusInput defines the admin status change body
type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
}

// CreateBooking handles the public booking form submission
func CreateBooking(c *gin.Context) {
	var input CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number")
		return
	}

	var service models.Service
	if err := config.DB.Where("id = ? AND is_active = ?", input.ServiceID, true).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	days := 1
	if input.EndDate != nil {
		days = utils.DaysBetween(input.StartDate, *input.EndDate) + 1
		if days < 1 {
			utils.RespondWithError(c, http.StatusBadRequest, "End date must not precede start date")
			return
		}
	}

	booking := models.Booking{
		ServiceID:   service.ID,
		ClientName:  input.ClientName,
		ClientEmail: input.ClientEmail,
		Phone:       input.Phone,
		Address:     input.Address,
		City:        input.City,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		HoursPerDay: input.HoursPerDay,
		TotalPrice:  computeBookingPrice(&service, days, input.HoursPerDay),
		Notes:       input.Notes,
		Status:      "pending",
	}

	if err := config.DB.Create(&booking).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// computeBookingPrice prices a booking from the service rates. A full
// day (8+ hours, or no hourly figure given) bills at the daily rate.
func computeBookingPrice(service *models.Service, days, hoursPerDay int) float64 {
	perDay := service.DailyPrice
	if hoursPerDay > 0 && hoursPerDay < 8 {
		perDay = float64(hoursPerDay) * service.HourlyPrice
	}
	return float64(days) * perDay
}

// GetBookings retrieves all bookings, newest first, optionally filtered
// by status
func GetBookings(c *gin.Context) {
	query := config.DB.Preload("Service").Order("created_at DESC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

// GetBooking retrieves a specific booking by ID
func GetBooking(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Service").First(&booking, "id = ?", bookingUUID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// UpdateBookingStatus changes a booking's status (admin action)
func UpdateBookingStatus(c *gin.Context) {
	bookingUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	result := config.DB.Model(&models.Booking{}).
		Where("id = ?", bookingUUID).
		Update("status", input.Status)

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated"})
}
