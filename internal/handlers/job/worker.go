package job

import (
	"context"
	"errors"
	"fmt"
	bookingService "stay/internal/domains/booking/service"
	notificationService "stay/internal/domains/notification/service"
	"stay/internal/domains/scheduler/model"
	schedulerService "stay/internal/domains/scheduler/service"

	"github.com/rs/zerolog/log"
)

type Worker struct {
	scheduler    schedulerService.Scheduler
	booking      bookingService.Booking
	notification notificationService.Notification
}

func NewWorker(scheduler schedulerService.Scheduler, booking bookingService.Booking, notification notificationService.Notification) Worker {
	return Worker{
		scheduler:    scheduler,
		booking:      booking,
		notification: notification,
	}
}

// Register binds every built-in job type and keeps the expiry sweep on cronSpec.
func (w Worker) Register(ctx context.Context, cronSpec string) error {
	w.scheduler.OnDue(model.TypeExpireBookings, w.expireBookings)
	w.scheduler.OnDue(model.TypeSendConfirmation, w.sendConfirmation)
	w.scheduler.OnDue(model.TypeSendReminder, w.sendReminder)
	w.scheduler.OnDue(model.TypeSendNotice, w.sendNotice)

	if err := w.scheduler.Recurring(ctx, model.TypeExpireBookings, cronSpec); err != nil {
		return fmt.Errorf("failed to register expiry sweep: %w", err)
	}

	return nil
}

func (w Worker) expireBookings(ctx context.Context, _ model.Job) error {
	n, err := w.booking.ExpireOverdue(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	log.Info().Int("expired", n).Msg("expiry sweep finished")

	return nil
}

func (w Worker) sendConfirmation(ctx context.Context, job model.Job) error {
	payload, err := job.Decode()
	if err != nil {
		return err //nolint:wrapcheck
	}

	return skipStale(w.notification.SendConfirmation(ctx, payload.BookingID))
}

func (w Worker) sendReminder(ctx context.Context, job model.Job) error {
	payload, err := job.Decode()
	if err != nil {
		return err //nolint:wrapcheck
	}

	return skipStale(w.notification.SendReminder(ctx, payload.BookingID))
}

func (w Worker) sendNotice(ctx context.Context, job model.Job) error {
	payload, err := job.Decode()
	if err != nil {
		return err //nolint:wrapcheck
	}

	return skipStale(w.notification.SendNotice(ctx, payload.BookingID, payload.Kind))
}

func skipStale(err error) error {
	if errors.Is(err, notificationService.ErrStale) {
		return schedulerService.ErrSkip
	}

	return err
}
