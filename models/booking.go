package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	ServiceID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClientName  string `gorm:"not null"`
	ClientEmail string `gorm:"not null"`
	Phone       string
	Address     string
	City        string

	StartDate   time.Time `gorm:"not null"`
	EndDate     *time.Time
	StartTime   string `gorm:"type:varchar(5)"` // "09:00"
	EndTime     string `gorm:"type:varchar(5)"`
	HoursPerDay int    `gorm:"default:0"`

	TotalPrice    float64 `gorm:"type:decimal(10,2);default:0.0"`
	Notes         string  `gorm:"type:text"`
	AssignedAgent string
	Status        string `gorm:"type:varchar(20);default:'pending'"` // pending, confirmed, cancelled

	Service Service `gorm:"foreignKey:ServiceID"`

	gorm.Model
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
