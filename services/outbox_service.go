// services/outbox_service.go
package services

import (
	"log"
	"time"

	"homecare-backend/models"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const (
	outboxBatchSize   = 20
	outboxMaxAttempts = 5
)

// OutboxService drains pending email jobs. Jobs are written in the same
// transaction as the contract mutation that caused them, so a send
// failure is retried instead of lost.
type OutboxService struct {
	db     *gorm.DB
	sender EmailSender
}

func NewOutboxService(db *gorm.DB, sender EmailSender) *OutboxService {
	return &OutboxService{db: db, sender: sender}
}

func (s *OutboxService) StartScheduler() {
	c := cron.New()

	c.AddFunc("@every 1m", func() {
		s.Drain()
	})

	c.Start()
	log.Println("Email outbox worker started")
}

// EnqueueEmail writes a pending job inside the caller's transaction.
func EnqueueEmail(tx *gorm.DB, job *models.EmailJob) error {
	job.Status = models.EmailJobPending
	return tx.Create(job).Error
}

// Drain sends a batch of pending jobs. A job that keeps failing is
// marked failed after outboxMaxAttempts; delivery is at-least-once, so a
// crash between send and mark-sent means the client may get a duplicate.
func (s *OutboxService) Drain() {
	var jobs []models.EmailJob
	if err := s.db.Where("status = ?", models.EmailJobPending).
		Order("created_at").
		Limit(outboxBatchSize).
		Find(&jobs).Error; err != nil {
		log.Printf("Outbox: failed to fetch pending jobs: %v", err)
		return
	}

	for i := range jobs {
		s.process(&jobs[i])
	}
}

func (s *OutboxService) process(job *models.EmailJob) {
	err := s.sender.Send(EmailMessage{
		ToEmail:           job.ToEmail,
		ToName:            job.ToName,
		Subject:           job.Subject,
		HTMLBody:          job.HTMLBody,
		AttachmentName:    job.AttachmentName,
		AttachmentContent: job.AttachmentContent,
	})

	job.Attempts++

	if err != nil {
		log.Printf("Outbox: job %s attempt %d failed: %v", job.ID, job.Attempts, err)
		job.LastError = err.Error()
		if job.Attempts >= outboxMaxAttempts {
			job.Status = models.EmailJobFailed
		}
	} else {
		now := time.Now()
		job.Status = models.EmailJobSent
		job.SentAt = &now
		job.LastError = ""
	}

	if err := s.db.Save(job).Error; err != nil {
		log.Printf("Outbox: failed to persist job %s: %v", job.ID, err)
	}
}
