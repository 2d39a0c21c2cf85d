package model

import (
	"encoding/json"
	"fmt"
	"stay/shared/model"
	"time"

	"github.com/google/uuid"
)

const (
	TableName  = "scheduled_jobs"
	EntityName = "scheduled_job"

	FieldID          = "id"
	FieldType        = "type"
	FieldPayload     = "payload"
	FieldRunAt       = "run_at"
	FieldUniqueKey   = "unique_key"
	FieldStatus      = "status"
	FieldAttempts    = "attempts"
	FieldLastError   = "last_error"
	FieldLockedUntil = "locked_until"
)

type Type string

const (
	TypeExpireBookings   Type = "expire-bookings"
	TypeSendReminder     Type = "send-reminder"
	TypeSendConfirmation Type = "send-confirmation"
	TypeSendNotice       Type = "send-notice"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

const (
	NoticeRejected = "rejected"
	NoticeCanceled = "canceled"
)

// Job is a durable unit of deferred work. UniqueKey, when set, admits one job per key for all time.
type Job struct {
	ID          string     `db:"id"`
	Type        Type       `db:"type"`
	Payload     string     `db:"payload"`
	RunAt       time.Time  `db:"run_at"`
	UniqueKey   *string    `db:"unique_key"`
	Status      Status     `db:"status"`
	Attempts    int        `db:"attempts"`
	LastError   string     `db:"last_error"`
	LockedUntil *time.Time `db:"locked_until"`
	model.Metadata
}

// Payload is the JSON body every built-in job type understands.
type Payload struct {
	BookingID string `json:"booking_id,omitempty"`
	Kind      string `json:"kind,omitempty"`
}

// Spec describes a job to enqueue.
type Spec struct {
	Type      Type
	Payload   Payload
	RunAt     time.Time
	UniqueKey string
}

func NewJob(spec Spec, user string, now time.Time) (Job, error) {
	payload, err := json.Marshal(spec.Payload)
	if err != nil {
		return Job{}, fmt.Errorf("failed to encode job payload: %w", err)
	}

	job := Job{
		ID:       uuid.NewString(),
		Type:     spec.Type,
		Payload:  string(payload),
		RunAt:    spec.RunAt,
		Status:   StatusPending,
		Metadata: model.NewMetadata(user, now),
	}

	if spec.UniqueKey != "" {
		key := spec.UniqueKey
		job.UniqueKey = &key
	}

	if job.RunAt.IsZero() {
		job.RunAt = now
	}

	return job, nil
}

func (j Job) Decode() (Payload, error) {
	var payload Payload

	if j.Payload == "" {
		return payload, nil
	}

	if err := json.Unmarshal([]byte(j.Payload), &payload); err != nil {
		return payload, fmt.Errorf("failed to decode job payload: %w", err)
	}

	return payload, nil
}

func ConfirmationKey(bookingID string) string {
	return "confirmation:" + bookingID
}

func ReminderKey(bookingID string) string {
	return "reminder:" + bookingID
}

// NoticeKey dedups notices per booking. Rejections carry their count so each one notifies once.
func NoticeKey(kind, bookingID string, n int) string {
	if kind == NoticeRejected {
		return fmt.Sprintf("notice:%s:%s:%d", kind, bookingID, n)
	}

	return fmt.Sprintf("notice:%s:%s", kind, bookingID)
}

func RecurringKey(jobType Type, at time.Time) string {
	return fmt.Sprintf("recurring:%s:%d", jobType, at.Unix())
}

// RetryAt backs off linearly with the number of attempts made.
func RetryAt(now time.Time, attempts int, backoff time.Duration) time.Time {
	return now.Add(backoff * time.Duration(max(1, attempts)))
}
