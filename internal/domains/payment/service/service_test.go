package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stay/config"
	otelMocks "stay/infras/otel/mocks"
	bookingMocks "stay/internal/domains/booking/mocks"
	bookingModel "stay/internal/domains/booking/model"
	bookingDto "stay/internal/domains/booking/model/dto"
	"stay/internal/domains/payment/model"
	"stay/internal/domains/payment/model/dto"
	"stay/internal/domains/payment/service"
	"stay/shared/failure"
)

const serverKey = "server-key"

func notification(status, fraud string) dto.NotificationRequest {
	req := dto.NotificationRequest{
		OrderID:           "b-1",
		StatusCode:        "200",
		GrossAmount:       "250000.00",
		TransactionStatus: status,
		FraudStatus:       fraud,
	}
	req.SignatureKey = model.Signature(req.OrderID, req.StatusCode, req.GrossAmount, serverKey)

	return req
}

func newService(t *testing.T) (*bookingMocks.MockBookingService, service.Payment) {
	t.Helper()

	ctrl := gomock.NewController(t)
	cfg := &config.Config{}
	cfg.Payment.ServerKey = serverKey

	booking := bookingMocks.NewMockBookingService(ctrl)

	return booking, service.New(booking, cfg, otelMocks.NewOtel())
}

func TestHandleNotification(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.NotificationRequest
		setup     func(booking *bookingMocks.MockBookingService)
		wantKind  failure.Kind
		wantApply bool
	}{
		{
			name: "settlement confirms",
			req:  notification("settlement", ""),
			setup: func(booking *bookingMocks.MockBookingService) {
				booking.EXPECT().ApplyGatewayStatus(gomock.Any(), "b-1", bookingModel.EventGatewaySettle).
					Return(bookingDto.BookingResponse{ID: "b-1", Status: string(bookingModel.StatusConfirmed)}, nil)
			},
			wantApply: true,
		},
		{
			name: "expire cancels",
			req:  notification("expire", ""),
			setup: func(booking *bookingMocks.MockBookingService) {
				booking.EXPECT().ApplyGatewayStatus(gomock.Any(), "b-1", bookingModel.EventGatewayCancel).
					Return(bookingDto.BookingResponse{ID: "b-1", Status: string(bookingModel.StatusCanceledByTenant)}, nil)
			},
			wantApply: true,
		},
		{
			name: "pending is acknowledged",
			req:  notification("pending", ""),
		},
		{
			name: "bad signature",
			req: func() dto.NotificationRequest {
				req := notification("settlement", "")
				req.GrossAmount = "1.00"

				return req
			}(),
			wantKind: failure.KindSignatureMismatch,
		},
		{
			name: "late event is acknowledged",
			req:  notification("settlement", ""),
			setup: func(booking *bookingMocks.MockBookingService) {
				booking.EXPECT().ApplyGatewayStatus(gomock.Any(), "b-1", bookingModel.EventGatewaySettle).
					Return(bookingDto.BookingResponse{}, failure.InvalidStateTransition("expired", "gateway_settle"))
			},
		},
		{
			name: "unknown booking",
			req:  notification("settlement", ""),
			setup: func(booking *bookingMocks.MockBookingService) {
				booking.EXPECT().ApplyGatewayStatus(gomock.Any(), "b-1", gomock.Any()).
					Return(bookingDto.BookingResponse{}, failure.NotFound("booking not found"))
			},
			wantKind: failure.KindNotFound,
		},
		{
			name: "store failure surfaces for redelivery",
			req:  notification("capture", "accept"),
			setup: func(booking *bookingMocks.MockBookingService) {
				booking.EXPECT().ApplyGatewayStatus(gomock.Any(), "b-1", gomock.Any()).
					Return(bookingDto.BookingResponse{}, errors.New("db down"))
			},
			wantKind: failure.KindInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking, svc := newService(t)
			if tt.setup != nil {
				tt.setup(booking)
			}

			res, err := svc.HandleNotification(context.Background(), tt.req)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, failure.GetKind(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "b-1", res.OrderID)
			assert.Equal(t, tt.wantApply, res.Applied)
		})
	}
}
