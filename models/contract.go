package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContractStatus string

const (
	ContractPending        ContractStatus = "pending"
	ContractSignedByClient ContractStatus = "signed_by_client"
	ContractSignedByAdmin  ContractStatus = "signed_by_admin"
	ContractCompleted      ContractStatus = "completed"
)

// SignatureEvent is a signing action applied to a contract.
type SignatureEvent string

const (
	EventClientSign SignatureEvent = "client_sign"
	EventAdminSign  SignatureEvent = "admin_sign"
)

var ErrInvalidTransition = errors.New("invalid contract status transition")

// Transition returns the status that follows the given signing event.
// Legal edges are pending → signed_by_client → completed; anything else,
// including a repeat of an already-applied event, is rejected.
func (s ContractStatus) Transition(e SignatureEvent) (ContractStatus, error) {
	switch {
	case s == ContractPending && e == EventClientSign:
		return ContractSignedByClient, nil
	case s == ContractSignedByClient && e == EventAdminSign:
		return ContractCompleted, nil
	default:
		return s, ErrInvalidTransition
	}
}

// Contract is the service-agreement record, distinct from the rendered PDF.
// Signature images are stored inline as data URIs.
type Contract struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`

	ClientName         string `gorm:"not null"`
	ClientEmail        string `gorm:"not null"`
	ServiceDescription string
	StartDate          time.Time

	PDFPath         string `gorm:"column:pdf_path"`
	ClientSignature string `gorm:"type:text"`
	AdminSignature  string `gorm:"type:text"`

	Status ContractStatus `gorm:"type:varchar(20);default:'pending'"`

	Booking Booking `gorm:"foreignKey:BookingID"`

	gorm.Model
}

func (c *Contract) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return
}

// AwaitingAdminSignature reports whether the client has signed but the
// admin has not yet counter-signed.
func (c *Contract) AwaitingAdminSignature() bool {
	return c.Status == ContractSignedByClient && c.AdminSignature == ""
}

// AwaitingClientSignature reports whether the contract is still unsigned.
func (c *Contract) AwaitingClientSignature() bool {
	return c.Status == ContractPending && c.ClientSignature == ""
}

// FullyExecuted reports whether the contract carries both signatures.
func (c *Contract) FullyExecuted() bool {
	return c.Status == ContractCompleted || c.AdminSignature != ""
}
