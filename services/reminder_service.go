// services/reminder_service.go
package services

import (
	"fmt"
	"log"
	"os"
	"time"

	"homecare-backend/models"
	"homecare-backend/utils"

	"github.com/robfig/cron/v3"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// ReminderService texts clients the day before a confirmed visit.
type ReminderService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewReminderService(db *gorm.DB) *ReminderService {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &ReminderService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *ReminderService) StartScheduler() {
	c := cron.New()

	// Run every day at 9 AM
	c.AddFunc("0 9 * * *", func() {
		s.SendUpcomingBookingReminders()
	})

	c.Start()
	log.Println("Booking reminder scheduler started")
}

// SendUpcomingBookingReminders texts every confirmed booking that starts
// tomorrow. Failures are logged and skipped; the next run does not retry
// past days.
func (s *ReminderService) SendUpcomingBookingReminders() {
	log.Println("Starting booking reminder processing...")

	tomorrow := utils.BeginningOfDay(time.Now().AddDate(0, 0, 1))
	dayAfter := tomorrow.AddDate(0, 0, 1)

	var bookings []models.Booking
	if err := s.db.Preload("Service").
		Where("status = ? AND start_date >= ? AND start_date < ?", "confirmed", tomorrow, dayAfter).
		Find(&bookings).Error; err != nil {
		log.Printf("Failed to fetch upcoming bookings: %v", err)
		return
	}

	for _, booking := range bookings {
		if booking.Phone == "" {
			continue
		}

		message := fmt.Sprintf("Hi %s, this is a reminder that your %s visit is scheduled for tomorrow", booking.ClientName, booking.Service.Name)
		if booking.StartTime != "" {
			message += " at " + booking.StartTime
		}
		message += "."

		params := &twilioApi.CreateMessageParams{}
		params.SetTo(booking.Phone)
		params.SetFrom(os.Getenv("TWILIO_PHONE_NUMBER"))
		params.SetBody(message)

		resp, err := s.client.Api.CreateMessage(params)
		if err != nil {
			log.Printf("Failed to send reminder to %s: %v", booking.Phone, err)
			continue
		}
		if resp.Sid != nil {
			log.Printf("Reminder sent to %s, SID: %s", booking.Phone, *resp.Sid)
		} else {
			log.Printf("Reminder sent to %s, but no SID returned", booking.Phone)
		}
	}

	log.Println("Booking reminder processing completed")
}
