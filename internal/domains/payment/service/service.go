package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Payment=MockPaymentService

import (
	"context"
	"stay/config"
	"stay/infras/otel"
	bookingService "stay/internal/domains/booking/service"
	"stay/internal/domains/payment/model/dto"
	"stay/shared/constant"
	"stay/shared/failure"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	// HandleNotification verifies a gateway notification and applies it to its booking.
	// Statuses that change nothing, and events the booking already moved past, are acknowledged.
	HandleNotification(ctx context.Context, req dto.NotificationRequest) (dto.NotificationResponse, error)
}

type serviceImpl struct {
	booking bookingService.Booking
	cfg     *config.Config
	otel    otel.Otel
}

func New(booking bookingService.Booking, cfg *config.Config, otel otel.Otel) Payment {
	return &serviceImpl{
		booking: booking,
		cfg:     cfg,
		otel:    otel,
	}
}

func (s *serviceImpl) HandleNotification(ctx context.Context, req dto.NotificationRequest) (res dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".payment.HandleNotification")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	notification := req.ToModel()
	res.OrderID = notification.OrderID

	logger := log.With().Str("order", notification.OrderID).Str("transaction_status", notification.TransactionStatus).Logger()

	if !notification.Verify(s.cfg.Payment.ServerKey) {
		logger.Warn().Msg("payment notification signature mismatch")

		return res, failure.SignatureMismatch("invalid signature") //nolint:wrapcheck
	}

	event, ok := notification.Event()
	if !ok {
		logger.Info().Msg("payment notification needs no transition")

		return res, nil
	}

	booking, err := s.booking.ApplyGatewayStatus(ctx, notification.OrderID, event)
	if err != nil {
		if failure.Is(err, failure.KindInvalidStateTransition) {
			logger.Warn().Err(err).Msg("payment notification arrived after the booking moved on")

			return res, nil
		}

		return res, err //nolint:wrapcheck
	}

	res.Applied = true
	res.Status = booking.Status

	return res, nil
}
