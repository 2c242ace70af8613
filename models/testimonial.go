package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Testimonial struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	AuthorName   string    `gorm:"not null"`
	Quote        string    `gorm:"type:text;not null"`
	Rating       int       `gorm:"default:5"`
	IsApproved   bool      `gorm:"default:false"`
	DisplayOrder int       `gorm:"default:0"`

	gorm.Model
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return
}
