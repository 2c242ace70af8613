package services

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"homecare-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// 1x1 PNG signature stand-in
const testSignature = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mP8z8BQDwAEhQGAhKmMIQAAAABJRU5ErkJggg=="

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Service{},
		&models.Booking{},
		&models.Contract{},
		&models.PaymentMethod{},
		&models.SiteSettings{},
		&models.EmailJob{},
	))
	return db
}

func seedBooking(t *testing.T, db *gorm.DB) *models.Booking {
	t.Helper()

	service := models.Service{
		Name:        "Personal Care",
		Description: "Assistance with daily living activities.",
		HourlyPrice: 50,
		DailyPrice:  400,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&service).Error)

	require.NoError(t, db.Create(&models.PaymentMethod{
		Name:           "Company Zelle",
		Type:           models.PaymentTypeZelle,
		PaymentDetails: models.JSONB{"email": "pay@example.com"},
		IsActive:       true,
		DisplayOrder:   1,
	}).Error)

	booking := models.Booking{
		ServiceID:   service.ID,
		ClientName:  "John Smith",
		ClientEmail: "john@example.com",
		Phone:       "+15551234567",
		Address:     "12 Oak Lane",
		City:        "Springfield",
		StartDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		HoursPerDay: 8,
		TotalPrice:  400,
		Status:      "pending",
	}
	require.NoError(t, db.Create(&booking).Error)
	return &booking
}

func decodedAttachment(t *testing.T, job *models.EmailJob) string {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(job.AttachmentContent)
	require.NoError(t, err)
	return string(raw)
}

func TestIssueContract(t *testing.T) {
	db := setupDB(t)
	booking := seedBooking(t, db)
	svc := NewContractService(db)

	contract, err := svc.Issue(booking.ID, "Maria Lopez")
	require.NoError(t, err)

	assert.Equal(t, models.ContractPending, contract.Status)
	assert.Equal(t, "John Smith", contract.ClientName)
	assert.Equal(t, "Personal Care", contract.ServiceDescription)
	assert.Empty(t, contract.ClientSignature)

	var updated models.Booking
	require.NoError(t, db.First(&updated, "id = ?", booking.ID).Error)
	assert.Equal(t, "Maria Lopez", updated.AssignedAgent)

	var jobs []models.EmailJob
	require.NoError(t, db.Find(&jobs).Error)
	require.Len(t, jobs, 1)

	assert.Equal(t, "john@example.com", jobs[0].ToEmail)
	assert.Contains(t, jobs[0].Subject, "Personal Care")
	assert.Contains(t, jobs[0].HTMLBody, "/contract/"+contract.ID.String())
	assert.Equal(t, models.EmailJobPending, jobs[0].Status)

	pdfText := decodedAttachment(t, &jobs[0])
	assert.True(t, strings.HasPrefix(pdfText, "%PDF"))
	assert.Contains(t, pdfText, "$400")
	assert.Contains(t, pdfText, "Company Zelle")
	assert.Contains(t, pdfText, "pay@example.com")
	assert.Equal(t, 0, strings.Count(pdfText, "/Subtype /Image"))
}

func TestIssueContractBookingNotFound(t *testing.T) {
	db := setupDB(t)
	svc := NewContractService(db)

	_, err := svc.Issue(uuid.New(), "")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestIssueContractFallsBackToNotesFields(t *testing.T) {
	db := setupDB(t)
	booking := seedBooking(t, db)

	// simulate a row written by the old booking form
	require.NoError(t, db.Model(&models.Booking{}).Where("id = ?", booking.ID).
		Updates(map[string]interface{}{
			"phone":       "",
			"address":     "",
			"total_price": 0,
			"notes":       "Phone: +15559876543\nAddress: 7 Elm Street\nTotal price: $250",
		}).Error)

	svc := NewContractService(db)
	_, err := svc.Issue(booking.ID, "")
	require.NoError(t, err)

	var job models.EmailJob
	require.NoError(t, db.First(&job).Error)

	pdfText := decodedAttachment(t, &job)
	assert.Contains(t, pdfText, "+15559876543")
	assert.Contains(t, pdfText, "7 Elm Street")
	assert.Contains(t, pdfText, "$250.00")
}

func TestClientSign(t *testing.T) {
	db := setupDB(t)
	booking := seedBooking(t, db)
	svc := NewContractService(db)

	contract, err := svc.Issue(booking.ID, "")
	require.NoError(t, err)

	signed, err := svc.ClientSign(contract.ID, testSignature)
	require.NoError(t, err)
	assert.Equal(t, models.ContractSignedByClient, signed.Status)
	assert.Equal(t, testSignature, signed.ClientSignature)
	assert.Empty(t, signed.AdminSignature)

	// a second submission must be rejected, not overwrite
	_, err = svc.ClientSign(contract.ID, "data:image/png;base64,other")
	assert.ErrorIs(t, err, models.ErrInvalidTransition)

	refetched, err := svc.Get(contract.ID)
	require.NoError(t, err)
	assert.Equal(t, testSignature, refetched.ClientSignature)
}

func TestAdminSignBeforeClientRejected(t *testing.T) {
	db := setupDB(t)
	booking := seedBooking(t, db)
	svc := NewContractService(db)

	contract, err := svc.Issue(booking.ID, "")
	require.NoError(t, err)

	_, err = svc.AdminSign(contract.ID, testSignature)
	assert.ErrorIs(t, err, models.ErrInvalidTransition)
}

func TestFullSigningFlowEmbedsSignatures(t *testing.T) {
	db := setupDB(t)
	booking := seedBooking(t, db)
	svc := NewContractService(db)

	contract, err := svc.Issue(booking.ID, "Maria Lopez")
	require.NoError(t, err)

	_, err = svc.ClientSign(contract.ID, testSignature)
	require.NoError(t, err)

	completed, err := svc.AdminSign(contract.ID, testSignature)
	require.NoError(t, err)
	assert.Equal(t, models.ContractCompleted, completed.Status)
	assert.NotEmpty(t, completed.ClientSignature)
	assert.NotEmpty(t, completed.AdminSignature)

	require.NoError(t, svc.Finalize(contract.ID))

	var jobs []models.EmailJob
	require.NoError(t, db.Find(&jobs).Error)
	require.Len(t, jobs, 2)

	var finalJob *models.EmailJob
	for i := range jobs {
		if strings.Contains(jobs[i].Subject, "Fully Executed") {
			finalJob = &jobs[i]
		}
	}
	require.NotNil(t, finalJob)

	finalPDF := decodedAttachment(t, finalJob)
	assert.Equal(t, 2, strings.Count(finalPDF, "/Subtype /Image"))
}

func TestFinalizeRequiresBothSignatures(t *testing.T) {
	db := setupDB(t)
	booking := seedBooking(t, db)
	svc := NewContractService(db)

	contract, err := svc.Issue(booking.ID, "")
	require.NoError(t, err)

	err = svc.Finalize(contract.ID)
	assert.ErrorIs(t, err, ErrSignaturesMissing)

	// no fully-executed email may be queued
	var count int64
	require.NoError(t, db.Model(&models.EmailJob{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestListSortsAwaitingAdminFirst(t *testing.T) {
	db := setupDB(t)
	booking := seedBooking(t, db)
	svc := NewContractService(db)

	a := models.Contract{
		BookingID:       booking.ID,
		ClientName:      "A",
		ClientEmail:     "a@example.com",
		StartDate:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ClientSignature: testSignature,
		Status:          models.ContractSignedByClient,
	}
	b := models.Contract{
		BookingID:       booking.ID,
		ClientName:      "B",
		ClientEmail:     "b@example.com",
		StartDate:       time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ClientSignature: testSignature,
		AdminSignature:  testSignature,
		Status:          models.ContractCompleted,
	}
	c := models.Contract{
		BookingID:   booking.ID,
		ClientName:  "C",
		ClientEmail: "c@example.com",
		StartDate:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.ContractPending,
	}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)
	require.NoError(t, db.Create(&c).Error)

	summaries, err := svc.List()
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	// A awaits the admin's counter-signature and sorts before the
	// newer, already-completed B
	assert.Equal(t, "A", summaries[0].ClientName)
	assert.Equal(t, BucketAwaitingAdmin, summaries[0].Bucket)

	assert.Equal(t, "C", summaries[1].ClientName)
	assert.Equal(t, BucketAwaitingClient, summaries[1].Bucket)

	assert.Equal(t, "B", summaries[2].ClientName)
	assert.Equal(t, BucketCompleted, summaries[2].Bucket)
}
