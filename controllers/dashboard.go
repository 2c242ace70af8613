// controllers/dashboard.go
package controllers

import (
	"net/http"
	"time"

	"homecare-backend/config"
	"homecare-backend/models"
	"homecare-backend/services"
	"homecare-backend/utils"

	"github.com/gin-gonic/gin"
)

type DashboardOverview struct {
	TotalBookings   int64            `json:"totalBookings"`
	PendingBookings int64            `json:"pendingBookings"`
	MonthlyRevenue  float64          `json:"monthlyRevenue"`
	ContractBuckets map[string]int64 `json:"contractBuckets"`
	FailedEmails    int64            `json:"failedEmails"`
	RecentBookings  []RecentBooking  `json:"recentBookings"`
}

type RecentBooking struct {
	ClientName string    `json:"clientName"`
	Service    string    `json:"service"`
	StartDate  time.Time `json:"startDate"`
	Status     string    `json:"status"`
}

// GetDashboardOverview summarizes bookings, contracts and outbox health
// for the admin landing page
func GetDashboardOverview(c *gin.Context) {
	var overview DashboardOverview

	config.DB.Model(&models.Booking{}).Count(&overview.TotalBookings)
	config.DB.Model(&models.Booking{}).Where("status = ?", "pending").Count(&overview.PendingBookings)

	// This month's booked revenue (confirmed bookings only)
	now := time.Now()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	config.DB.Model(&models.Booking{}).
		Where("status = ? AND start_date >= ?", "confirmed", firstOfMonth).
		Select("COALESCE(SUM(total_price), 0)").Scan(&overview.MonthlyRevenue)

	overview.ContractBuckets = map[string]int64{
		services.BucketAwaitingClient: 0,
		services.BucketAwaitingAdmin:  0,
		services.BucketCompleted:      0,
	}
	var contracts []models.Contract
	if err := config.DB.Find(&contracts).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve contracts")
		return
	}
	for i := range contracts {
		switch {
		case contracts[i].AwaitingAdminSignature():
			overview.ContractBuckets[services.BucketAwaitingAdmin]++
		case contracts[i].FullyExecuted():
			overview.ContractBuckets[services.BucketCompleted]++
		default:
			overview.ContractBuckets[services.BucketAwaitingClient]++
		}
	}

	config.DB.Model(&models.EmailJob{}).Where("status = ?", models.EmailJobFailed).Count(&overview.FailedEmails)

	var recent []models.Booking
	config.DB.Preload("Service").Order("created_at DESC").Limit(5).Find(&recent)
	for _, b := range recent {
		overview.RecentBookings = append(overview.RecentBookings, RecentBooking{
			ClientName: b.ClientName,
			Service:    b.Service.Name,
			StartDate:  b.StartDate,
			Status:     b.Status,
		})
	}

	c.JSON(http.StatusOK, overview)
}

// GetEmailJobs lists recent outbox jobs so a failed delivery is visible
// without reading server logs
func GetEmailJobs(c *gin.Context) {
	query := config.DB.Order("created_at DESC").Limit(50)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var jobs []models.EmailJob
	if err := query.Find(&jobs).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve email jobs")
		return
	}

	// attachment payloads are large and useless in a listing
	for i := range jobs {
		jobs[i].AttachmentContent = ""
	}

	c.JSON(http.StatusOK, jobs)
}
