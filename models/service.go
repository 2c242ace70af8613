package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	Name        string    `gorm:"not null"`
	Description string
	HourlyPrice float64 `gorm:"type:decimal(10,2);not null"`
	DailyPrice  float64 `gorm:"type:decimal(10,2);not null"`
	Category    string  `gorm:"default:'General'"`
	IsActive    bool    `gorm:"default:true"`

	Bookings []Booking `gorm:"foreignKey:ServiceID"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}
