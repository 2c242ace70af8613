// models/email_job.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	EmailJobPending = "pending"
	EmailJobSent    = "sent"
	EmailJobFailed  = "failed"
)

// EmailJob is an outbox row. Contract mutations and their outbound mail
// commit in one transaction; a cron worker drains pending rows, so
// delivery is at-least-once rather than lost on a failed inline send.
type EmailJob struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key"`
	ToEmail  string    `gorm:"not null"`
	ToName   string
	Subject  string `gorm:"not null"`
	HTMLBody string `gorm:"type:text"`

	// Base64 attachment content, empty when the mail has none.
	AttachmentName    string
	AttachmentContent string `gorm:"type:text"`

	Status    string `gorm:"type:varchar(20);default:'pending';index"`
	Attempts  int    `gorm:"default:0"`
	LastError string `gorm:"type:text"`
	SentAt    *time.Time

	gorm.Model
}

func (e *EmailJob) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return
}
