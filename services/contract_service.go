// services/contract_service.go
package services

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"homecare-backend/models"
	"homecare-backend/pdf"
	"homecare-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrContractNotFound  = errors.New("contract not found")
	ErrSignaturesMissing = errors.New("contract is missing a signature")
)

const defaultBusinessName = "Helping Hands Home Care"

// Contract listing buckets for the admin dashboard.
const (
	BucketAwaitingAdmin  = "awaiting_admin"
	BucketCompleted      = "completed"
	BucketAwaitingClient = "awaiting_client"
)

// ContractSummary is a contract row annotated with its dashboard bucket.
type ContractSummary struct {
	models.Contract
	Bucket string `json:"bucket"`
}

// ContractService drives the contract lifecycle: issuance, the two
// signature captures and finalization. Every status change goes through
// models.ContractStatus.Transition, and every outbound email commits in
// the same transaction as the row it announces.
type ContractService struct {
	db             *gorm.DB
	frontendOrigin string
}

func NewContractService(db *gorm.DB) *ContractService {
	origin := os.Getenv("FRONTEND_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}
	return &ContractService{db: db, frontendOrigin: strings.TrimRight(origin, "/")}
}

// SigningURL is the client-facing signature page for a contract. Both
// generation paths and the frontend agree on this shape.
func (s *ContractService) SigningURL(contractID uuid.UUID) string {
	return fmt.Sprintf("%s/contract/%s", s.frontendOrigin, contractID)
}

// Issue creates a contract for a booking: renders the unsigned
// agreement, inserts the contract row (status pending) and enqueues the
// signature-request email, the last two atomically.
func (s *ContractService) Issue(bookingID uuid.UUID, agentName string) (*models.Contract, error) {
	var booking models.Booking
	if err := s.db.Preload("Service").First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if agentName != "" {
		booking.AssignedAgent = agentName
	}

	methods, err := s.activePaymentMethods()
	if err != nil {
		return nil, err
	}

	contract := &models.Contract{
		ID:                 uuid.New(),
		BookingID:          booking.ID,
		ClientName:         booking.ClientName,
		ClientEmail:        booking.ClientEmail,
		ServiceDescription: booking.Service.Name,
		StartDate:          booking.StartDate,
		Status:             models.ContractPending,
	}

	pdfBytes, err := pdf.RenderContract(s.contractData(&booking, methods, contract, nil))
	if err != nil {
		return nil, fmt.Errorf("render contract: %w", err)
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if agentName != "" {
		if err := tx.Model(&models.Booking{}).Where("id = ?", booking.ID).
			Update("assigned_agent", agentName).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Create(contract).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := EnqueueEmail(tx, s.issueEmail(contract, pdfBytes)); err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	return contract, nil
}

// Get fetches a contract by id.
func (s *ContractService) Get(contractID uuid.UUID) (*models.Contract, error) {
	var contract models.Contract
	if err := s.db.First(&contract, "id = ?", contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContractNotFound
		}
		return nil, err
	}
	return &contract, nil
}

// ClientSign stores the client's signature and moves the contract to
// signed_by_client. A duplicate or out-of-order submission is rejected
// with models.ErrInvalidTransition rather than overwriting.
func (s *ContractService) ClientSign(contractID uuid.UUID, signature string) (*models.Contract, error) {
	return s.applySignature(contractID, signature, models.EventClientSign, "client_signature")
}

// AdminSign stores the counter-signature and moves the contract to
// completed.
func (s *ContractService) AdminSign(contractID uuid.UUID, signature string) (*models.Contract, error) {
	return s.applySignature(contractID, signature, models.EventAdminSign, "admin_signature")
}

func (s *ContractService) applySignature(contractID uuid.UUID, signature string, event models.SignatureEvent, column string) (*models.Contract, error) {
	contract, err := s.Get(contractID)
	if err != nil {
		return nil, err
	}

	next, err := contract.Status.Transition(event)
	if err != nil {
		return nil, err
	}

	// The status guard in the WHERE clause keeps a concurrent signer
	// from silently overwriting: first write wins, the loser sees zero
	// rows updated.
	result := s.db.Model(&models.Contract{}).
		Where("id = ? AND status = ?", contractID, contract.Status).
		Updates(map[string]interface{}{
			column:   signature,
			"status": next,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, models.ErrInvalidTransition
	}

	return s.Get(contractID)
}

// Finalize re-renders the agreement with both signature images embedded
// and enqueues the fully-executed email. The signature precondition is
// the only guard; repeated calls simply queue another copy.
func (s *ContractService) Finalize(contractID uuid.UUID) error {
	var contract models.Contract
	if err := s.db.Preload("Booking.Service").First(&contract, "id = ?", contractID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrContractNotFound
		}
		return err
	}

	if contract.ClientSignature == "" || contract.AdminSignature == "" {
		return ErrSignaturesMissing
	}

	methods, err := s.activePaymentMethods()
	if err != nil {
		return err
	}

	sigs := &pdf.Signatures{
		Client: contract.ClientSignature,
		Admin:  contract.AdminSignature,
	}
	pdfBytes, err := pdf.RenderContract(s.contractData(&contract.Booking, methods, &contract, sigs))
	if err != nil {
		return fmt.Errorf("render contract: %w", err)
	}

	return EnqueueEmail(s.db, s.finalEmail(&contract, pdfBytes))
}

// List returns every contract annotated with its dashboard bucket,
// sorted with contracts awaiting the admin's counter-signature first and
// descending start date within each group.
func (s *ContractService) List() ([]ContractSummary, error) {
	var contracts []models.Contract
	if err := s.db.Find(&contracts).Error; err != nil {
		return nil, err
	}

	summaries := make([]ContractSummary, 0, len(contracts))
	for _, c := range contracts {
		summaries = append(summaries, ContractSummary{Contract: c, Bucket: bucketFor(&c)})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		ai := summaries[i].AwaitingAdminSignature()
		aj := summaries[j].AwaitingAdminSignature()
		if ai != aj {
			return ai
		}
		return summaries[i].StartDate.After(summaries[j].StartDate)
	})

	return summaries, nil
}

func bucketFor(c *models.Contract) string {
	switch {
	case c.AwaitingAdminSignature():
		return BucketAwaitingAdmin
	case c.FullyExecuted():
		return BucketCompleted
	default:
		return BucketAwaitingClient
	}
}

func (s *ContractService) activePaymentMethods() ([]models.PaymentMethod, error) {
	var methods []models.PaymentMethod
	err := s.db.Where("is_active = ?", true).Order("display_order").Find(&methods).Error
	return methods, err
}

func (s *ContractService) businessName() string {
	var settings models.SiteSettings
	if err := s.db.First(&settings).Error; err == nil && settings.BusinessName != "" {
		return settings.BusinessName
	}
	return defaultBusinessName
}

func (s *ContractService) contractData(booking *models.Booking, methods []models.PaymentMethod, contract *models.Contract, sigs *pdf.Signatures) pdf.ContractData {
	phone := booking.Phone
	address := booking.Address
	total := booking.TotalPrice

	// Rows written by the old booking form carry these only inside the
	// notes blob.
	if phone == "" || address == "" || total == 0 {
		fields := utils.ParseBookingNotes(booking.Notes)
		if phone == "" {
			phone = fields.Phone
		}
		if address == "" {
			address = fields.Address
		}
		if total == 0 {
			total = parsePriceString(fields.TotalPrice)
		}
	}

	return pdf.ContractData{
		ContractNumber: contractNumber(contract.ID),
		BusinessName:   s.businessName(),
		AgentName:      booking.AssignedAgent,

		ClientName:    booking.ClientName,
		ClientEmail:   booking.ClientEmail,
		ClientPhone:   phone,
		ClientAddress: address,
		City:          booking.City,

		ServiceName:        contract.ServiceDescription,
		ServiceDescription: booking.Service.Description,
		StartDate:          booking.StartDate,
		EndDate:            booking.EndDate,
		StartTime:          booking.StartTime,
		EndTime:            booking.EndTime,
		HoursPerDay:        booking.HoursPerDay,
		TotalPrice:         total,

		PaymentMethods: paymentMethodLines(methods),
		Signatures:     sigs,
	}
}

func (s *ContractService) issueEmail(contract *models.Contract, pdfBytes []byte) *models.EmailJob {
	link := s.SigningURL(contract.ID)
	return &models.EmailJob{
		ToEmail: contract.ClientEmail,
		ToName:  contract.ClientName,
		Subject: fmt.Sprintf("Your %s Service Agreement - Signature Requested", contract.ServiceDescription),
		HTMLBody: fmt.Sprintf(
			`<p>Dear %s,</p>`+
				`<p>Attached is your service agreement for <strong>%s</strong>. `+
				`Please review it and sign online at the link below:</p>`+
				`<p><a href="%s">%s</a></p>`+
				`<p>Thank you,<br>%s</p>`,
			contract.ClientName, contract.ServiceDescription, link, link, s.businessName()),
		AttachmentName:    "service-agreement.pdf",
		AttachmentContent: base64.StdEncoding.EncodeToString(pdfBytes),
	}
}

func (s *ContractService) finalEmail(contract *models.Contract, pdfBytes []byte) *models.EmailJob {
	return &models.EmailJob{
		ToEmail: contract.ClientEmail,
		ToName:  contract.ClientName,
		Subject: fmt.Sprintf("Your Fully Executed %s Service Agreement", contract.ServiceDescription),
		HTMLBody: fmt.Sprintf(
			`<p>Dear %s,</p>`+
				`<p>Your service agreement for <strong>%s</strong> has been signed by `+
				`both parties. The fully executed copy is attached for your records.</p>`+
				`<p>Thank you,<br>%s</p>`,
			contract.ClientName, contract.ServiceDescription, s.businessName()),
		AttachmentName:    "service-agreement-signed.pdf",
		AttachmentContent: base64.StdEncoding.EncodeToString(pdfBytes),
	}
}

func contractNumber(id uuid.UUID) string {
	return "HC-" + strings.ToUpper(id.String()[:8])
}

func paymentMethodLines(methods []models.PaymentMethod) []pdf.PaymentMethodLine {
	lines := make([]pdf.PaymentMethodLine, 0, len(methods))
	for _, m := range methods {
		keys := make([]string, 0, len(m.PaymentDetails))
		for k := range m.PaymentDetails {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		details := make([]string, 0, len(keys))
		for _, k := range keys {
			details = append(details, fmt.Sprintf("%s: %v", humanizeKey(k), m.PaymentDetails[k]))
		}

		label := m.Name
		if m.Type != "" {
			label = fmt.Sprintf("%s (%s)", m.Name, humanizeKey(m.Type))
		}
		lines = append(lines, pdf.PaymentMethodLine{Label: label, Details: details})
	}
	return lines
}

func humanizeKey(k string) string {
	return strings.ReplaceAll(k, "_", " ")
}

func parsePriceString(s string) float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
