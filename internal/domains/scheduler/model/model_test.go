package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stay/internal/domains/scheduler/model"
)

func TestNewJob(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	t.Run("keyed job", func(t *testing.T) {
		job, err := model.NewJob(model.Spec{
			Type:      model.TypeSendConfirmation,
			Payload:   model.Payload{BookingID: "b1"},
			UniqueKey: model.ConfirmationKey("b1"),
		}, "system", now)
		require.NoError(t, err)

		assert.Equal(t, model.StatusPending, job.Status)
		assert.Equal(t, now, job.RunAt)
		require.NotNil(t, job.UniqueKey)
		assert.Equal(t, "confirmation:b1", *job.UniqueKey)
		assert.JSONEq(t, `{"booking_id":"b1"}`, job.Payload)

		payload, err := job.Decode()
		require.NoError(t, err)
		assert.Equal(t, "b1", payload.BookingID)
	})

	t.Run("unkeyed job", func(t *testing.T) {
		job, err := model.NewJob(model.Spec{Type: model.TypeExpireBookings, RunAt: now.Add(time.Hour)}, "system", now)
		require.NoError(t, err)

		assert.Nil(t, job.UniqueKey)
		assert.Equal(t, now.Add(time.Hour), job.RunAt)
	})
}

func TestJob_DecodeInvalid(t *testing.T) {
	_, err := model.Job{Payload: "{"}.Decode()
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	at := time.Unix(1740787200, 0)

	assert.Equal(t, "reminder:b1", model.ReminderKey("b1"))
	assert.Equal(t, "notice:rejected:b1:2", model.NoticeKey(model.NoticeRejected, "b1", 2))
	assert.Equal(t, "notice:canceled:b1", model.NoticeKey(model.NoticeCanceled, "b1", 3))
	assert.Equal(t, "recurring:expire-bookings:1740787200", model.RecurringKey(model.TypeExpireBookings, at))
}

func TestRetryAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

	assert.Equal(t, now.Add(30*time.Second), model.RetryAt(now, 0, 30*time.Second))
	assert.Equal(t, now.Add(90*time.Second), model.RetryAt(now, 3, 30*time.Second))
}
