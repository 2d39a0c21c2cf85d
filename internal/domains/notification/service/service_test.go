package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stay/config"
	"stay/infras/kafka"
	kafkaMocks "stay/infras/kafka/mocks"
	otelMocks "stay/infras/otel/mocks"
	bookingMocks "stay/internal/domains/booking/mocks"
	bookingModel "stay/internal/domains/booking/model"
	"stay/internal/domains/notification/model"
	"stay/internal/domains/notification/service"
	schedulerModel "stay/internal/domains/scheduler/model"
)

type fixture struct {
	bookings *bookingMocks.MockBooking
	lines    *bookingMocks.MockLine
	kafka    *kafkaMocks.MockClient
	svc      service.Notification
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.Kafka.NotificationTopic = "stay.notifications"

	f := fixture{
		bookings: bookingMocks.NewMockBooking(ctrl),
		lines:    bookingMocks.NewMockLine(ctrl),
		kafka:    kafkaMocks.NewMockClient(ctrl),
	}
	f.svc = service.New(f.bookings, f.lines, f.kafka, cfg, otelMocks.NewOtel())

	return f
}

func booking(status bookingModel.Status) bookingModel.Booking {
	return bookingModel.Booking{
		ID:         "b-1",
		GuestEmail: "guest@example.com",
		Status:     status,
		TotalPrice: decimal.NewFromInt(100),
	}
}

func TestSend(t *testing.T) {
	tests := []struct {
		name     string
		status   bookingModel.Status
		call     func(svc service.Notification) error
		template model.Template
		wantErr  error
	}{
		{
			name:     "confirmation for confirmed booking",
			status:   bookingModel.StatusConfirmed,
			call:     func(svc service.Notification) error { return svc.SendConfirmation(context.Background(), "b-1") },
			template: model.TemplateConfirmation,
		},
		{
			name:     "reminder for confirmed booking",
			status:   bookingModel.StatusConfirmed,
			call:     func(svc service.Notification) error { return svc.SendReminder(context.Background(), "b-1") },
			template: model.TemplateReminder,
		},
		{
			name:    "reminder skipped after cancellation",
			status:  bookingModel.StatusCanceledByTenant,
			call:    func(svc service.Notification) error { return svc.SendReminder(context.Background(), "b-1") },
			wantErr: service.ErrStale,
		},
		{
			name:   "rejected notice",
			status: bookingModel.StatusWaitingPayment,
			call: func(svc service.Notification) error {
				return svc.SendNotice(context.Background(), "b-1", schedulerModel.NoticeRejected)
			},
			template: model.TemplateRejected,
		},
		{
			name:   "canceled notice",
			status: bookingModel.StatusCanceledByTenant,
			call: func(svc service.Notification) error {
				return svc.SendNotice(context.Background(), "b-1", schedulerModel.NoticeCanceled)
			},
			template: model.TemplateCanceled,
		},
		{
			name:    "missing booking",
			call:    func(svc service.Notification) error { return svc.SendConfirmation(context.Background(), "b-1") },
			wantErr: service.ErrStale,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			found := bookingModel.Booking{}
			if tt.status != "" {
				found = booking(tt.status)
			}

			f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(found, nil)

			if tt.wantErr == nil {
				f.lines.EXPECT().GetByBooking(gomock.Any(), "b-1").Return(nil, nil)
				f.kafka.EXPECT().SendMessages(gomock.Any(), "stay.notifications", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, msgs ...kafka.Message) error {
						require.Len(t, msgs, 1)
						assert.Equal(t, "b-1", msgs[0].Key)

						msg, ok := msgs[0].Value.(model.Message)
						require.True(t, ok)
						assert.Equal(t, tt.template, msg.Template)
						assert.Equal(t, "guest@example.com", msg.To)

						return nil
					})
			}

			err := tt.call(f.svc)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSendPublishError(t *testing.T) {
	f := newFixture(t)

	f.bookings.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking(bookingModel.StatusConfirmed), nil)
	f.lines.EXPECT().GetByBooking(gomock.Any(), "b-1").Return(nil, nil)
	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	err := f.svc.SendConfirmation(context.Background(), "b-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrStale)
}

func TestSendNoticeUnknownKind(t *testing.T) {
	f := newFixture(t)

	err := f.svc.SendNotice(context.Background(), "b-1", "postponed")
	require.Error(t, err)
}
