package models

import (
	"github.com/google/uuid"
)

// SiteSettings holds the single business profile shown on the public site
// and stamped into contract PDFs.
type SiteSettings struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	BusinessName  string    `gorm:"not null"`
	Phone         string
	Email         string
	Address       string
	ServiceAreas  JSONB  `gorm:"type:jsonb;default:'{}'"`
	BusinessHours JSONB  `gorm:"type:jsonb;default:'{}'"`
	AboutText     string `gorm:"type:text"`
}
