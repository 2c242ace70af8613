package services

import (
	"errors"
	"testing"

	"homecare-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent      []EmailMessage
	failTimes int
}

func (f *fakeSender) Send(msg EmailMessage) error {
	if f.failTimes > 0 {
		f.failTimes--
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestOutboxDrainSendsPendingJobs(t *testing.T) {
	db := setupDB(t)
	sender := &fakeSender{}
	outbox := NewOutboxService(db, sender)

	require.NoError(t, EnqueueEmail(db, &models.EmailJob{
		ToEmail:  "john@example.com",
		ToName:   "John Smith",
		Subject:  "Your Personal Care Service Agreement - Signature Requested",
		HTMLBody: "<p>Please sign.</p>",
	}))

	outbox.Drain()

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "john@example.com", sender.sent[0].ToEmail)

	var job models.EmailJob
	require.NoError(t, db.First(&job).Error)
	assert.Equal(t, models.EmailJobSent, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.NotNil(t, job.SentAt)
	assert.Empty(t, job.LastError)
}

func TestOutboxRetriesTransientFailure(t *testing.T) {
	db := setupDB(t)
	sender := &fakeSender{failTimes: 1}
	outbox := NewOutboxService(db, sender)

	require.NoError(t, EnqueueEmail(db, &models.EmailJob{
		ToEmail: "john@example.com",
		Subject: "Agreement",
	}))

	outbox.Drain()

	var job models.EmailJob
	require.NoError(t, db.First(&job).Error)
	assert.Equal(t, models.EmailJobPending, job.Status)
	assert.Equal(t, 1, job.Attempts)
	assert.Contains(t, job.LastError, "smtp unavailable")
	assert.Empty(t, sender.sent)

	// next tick picks the job up again
	outbox.Drain()

	require.NoError(t, db.First(&job, "id = ?", job.ID).Error)
	assert.Equal(t, models.EmailJobSent, job.Status)
	assert.Equal(t, 2, job.Attempts)
	require.Len(t, sender.sent, 1)
}

func TestOutboxMarksJobFailedAfterMaxAttempts(t *testing.T) {
	db := setupDB(t)
	sender := &fakeSender{failTimes: outboxMaxAttempts + 1}
	outbox := NewOutboxService(db, sender)

	require.NoError(t, EnqueueEmail(db, &models.EmailJob{
		ToEmail: "john@example.com",
		Subject: "Agreement",
	}))

	for i := 0; i < outboxMaxAttempts; i++ {
		outbox.Drain()
	}

	var job models.EmailJob
	require.NoError(t, db.First(&job).Error)
	assert.Equal(t, models.EmailJobFailed, job.Status)
	assert.Equal(t, outboxMaxAttempts, job.Attempts)
	assert.Empty(t, sender.sent)

	// failed jobs are not retried
	outbox.Drain()
	require.NoError(t, db.First(&job, "id = ?", job.ID).Error)
	assert.Equal(t, outboxMaxAttempts, job.Attempts)
}
