package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Notification=MockNotificationService

import (
	"context"
	"errors"
	"fmt"
	"stay/config"
	"stay/infras/kafka"
	"stay/infras/otel"
	bookingModel "stay/internal/domains/booking/model"
	bookingRepo "stay/internal/domains/booking/repository"
	"stay/internal/domains/notification/model"
	schedulerModel "stay/internal/domains/scheduler/model"
	"stay/shared"
	"stay/shared/constant"

	"github.com/rs/zerolog/log"
)

// ErrStale means the booking moved on since the notification was scheduled. Nothing was sent.
var ErrStale = errors.New("booking no longer matches notification")

type Notification interface {
	Send(ctx context.Context, msg model.Message) error
	SendConfirmation(ctx context.Context, bookingID string) error
	SendReminder(ctx context.Context, bookingID string) error
	// SendNotice tells the guest their booking was rejected or canceled. kind is a scheduler notice kind.
	SendNotice(ctx context.Context, bookingID, kind string) error
}

type serviceImpl struct {
	bookingRepo bookingRepo.Booking
	lineRepo    bookingRepo.Line
	kafka       kafka.Client
	cfg         *config.Config
	otel        otel.Otel
}

func New(bookingRepo bookingRepo.Booking, lineRepo bookingRepo.Line, kafka kafka.Client, cfg *config.Config, otel otel.Otel) Notification {
	return &serviceImpl{
		bookingRepo: bookingRepo,
		lineRepo:    lineRepo,
		kafka:       kafka,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) Send(ctx context.Context, msg model.Message) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification.Send")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	key, _ := msg.Data["booking_id"].(string)

	err = s.kafka.SendMessages(ctx, s.cfg.Kafka.NotificationTopic, kafka.Message{Key: key, Value: msg})
	if err != nil {
		log.Error().Err(err).Str("template", string(msg.Template)).Msg("failed to publish notification")

		return fmt.Errorf("failed to publish notification: %w", err)
	}

	return nil
}

func (s *serviceImpl) SendConfirmation(ctx context.Context, bookingID string) error {
	return s.notify(ctx, bookingID, model.TemplateConfirmation)
}

func (s *serviceImpl) SendReminder(ctx context.Context, bookingID string) error {
	return s.notify(ctx, bookingID, model.TemplateReminder)
}

func (s *serviceImpl) SendNotice(ctx context.Context, bookingID, kind string) error {
	switch kind {
	case schedulerModel.NoticeRejected:
		return s.notify(ctx, bookingID, model.TemplateRejected)
	case schedulerModel.NoticeCanceled:
		return s.notify(ctx, bookingID, model.TemplateCanceled)
	default:
		return fmt.Errorf("unknown notice kind %q", kind)
	}
}

func (s *serviceImpl) notify(ctx context.Context, bookingID string, template model.Template) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".notification."+string(template))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.bookingRepo.Get(ctx, shared.FilterByID(bookingID, bookingModel.FieldID, bookingModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if !booking.Exists() || !template.Expects(booking.Status) {
		log.Info().Str("booking", bookingID).Str("status", string(booking.Status)).Str("template", string(template)).
			Msg("notification no longer applies")

		return ErrStale
	}

	lines, err := s.lineRepo.GetByBooking(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking", bookingID).Msg("failed to get booking lines")

		return fmt.Errorf("failed to get booking lines: %w", err)
	}

	return s.Send(ctx, model.NewMessage(template, booking, lines))
}
