package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentTypeCash        = "cash"
	PaymentTypeCheck       = "check"
	PaymentTypeBankAccount = "bank_account"
	PaymentTypeZelle       = "zelle"
	PaymentTypeCashApp     = "cash_app"
	PaymentTypeOther       = "other"
)

// PaymentMethod is an admin-configured payment channel. PaymentDetails is
// free-form key-value data whose keys depend on Type (account/routing
// numbers for bank accounts, an email for Zelle, and so on).
type PaymentMethod struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"not null"`
	Type           string    `gorm:"type:varchar(20);not null"`
	PaymentDetails JSONB     `gorm:"type:jsonb;default:'{}'"`
	IsActive       bool      `gorm:"default:true"`
	DisplayOrder   int       `gorm:"default:0"`

	gorm.Model
}

func (p *PaymentMethod) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
