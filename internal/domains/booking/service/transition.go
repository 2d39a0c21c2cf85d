package service

import (
	"context"
	"fmt"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	schedulerModel "stay/internal/domains/scheduler/model"
	"stay/shared"
	"stay/shared/constant"
	"stay/shared/failure"
	"stay/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type transitionRequest struct {
	id    string
	event model.Event
	// guard runs against the locked row, after authorization inputs are known and before the table is consulted.
	guard  func(ctx context.Context, booking model.Booking) error
	proof  string
	reason string
}

// transition is the only writer of booking status. It locks the booking's rooms, then the row,
// resolves the event through the transition table and enqueues side effects in the same transaction.
func (s *serviceImpl) transition(ctx context.Context, req transitionRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking."+string(req.event))
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	lines, err := s.lineRepo.GetByBooking(ctx, req.id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking lines")

		return res, fmt.Errorf("failed to get booking lines: %w", err)
	}

	if len(lines) == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	roomIDs := model.RoomIDs(lines)

	var (
		booking model.Booking
		changed bool
	)

	err = s.transactor.WithinRooms(ctx, roomIDs, func(ctx context.Context, tx *sqlx.Tx) error {
		booking, err = s.repo.GetForUpdateTx(ctx, tx, shared.FilterByID(req.id, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		if !booking.Exists() {
			return failure.NotFound("booking not found") // nolint:wrapcheck
		}

		if req.guard != nil {
			if err := req.guard(ctx, booking); err != nil {
				return err
			}
		}

		var to model.Status

		to, changed, err = model.Resolve(booking.Status, req.event)
		if err != nil || !changed {
			return err //nolint:wrapcheck
		}

		user, _ := actor(ctx)
		updates := s.apply(&booking, to, req, user, timezone.Now())

		if err := s.repo.UpdateTx(ctx, tx, updates, shared.FilterByID(req.id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}

		for _, spec := range s.effects(booking, req.event) {
			if _, err := s.scheduler.ScheduleTx(ctx, tx, spec); err != nil {
				return fmt.Errorf("failed to schedule %s: %w", spec.Type, err)
			}
		}

		return nil
	})
	if err != nil {
		if failure.GetKind(err) != failure.KindInternal {
			return res, err //nolint:wrapcheck
		}

		log.Error().Err(err).Str("booking", req.id).Str("event", string(req.event)).Msg("failed to transition booking")

		return res, fmt.Errorf("failed to transition booking: %w", err)
	}

	if changed {
		log.Info().Str("booking", req.id).Str("event", string(req.event)).Str("status", string(booking.Status)).
			Str("reason", req.reason).Msg("booking transitioned")

		if !booking.Status.HoldsInventory() {
			s.reservation.Invalidate(ctx, roomIDs...)
		}

		s.invalidate(ctx, req.id)
	} else {
		log.Info().Str("booking", req.id).Str("event", string(req.event)).Msg("booking already in target status")
	}

	res.FromModel(booking, lines)

	return res, nil
}

// apply moves booking to status and returns the columns that changed.
func (s *serviceImpl) apply(booking *model.Booking, to model.Status, req transitionRequest, user string, now time.Time) map[string]any {
	booking.Status = to
	booking.ModifiedAt = now
	booking.ModifiedBy = user

	updates := map[string]any{
		model.FieldStatus:        to,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}

	switch req.event {
	case model.EventUploadProof:
		booking.PaymentProof = req.proof
		updates[model.FieldPaymentProof] = req.proof
	case model.EventAccept, model.EventGatewaySettle:
		booking.PaidAt = &now
		updates[model.FieldPaidAt] = now
	case model.EventReject:
		deadline := now.Add(time.Duration(s.cfg.Booking.PaymentDeadlineMinutes) * time.Minute)
		booking.RejectCount++
		booking.PaymentProof = constant.Empty
		booking.PaymentDeadline = &deadline
		updates[model.FieldRejectCount] = booking.RejectCount
		updates[model.FieldPaymentProof] = constant.Empty
		updates[model.FieldPaymentDeadline] = deadline
	case model.EventGuestCancel, model.EventTenantCancel, model.EventGatewayCancel:
		booking.CanceledAt = &now
		updates[model.FieldCanceledAt] = now
	case model.EventExpire:
	}

	return updates
}

// effects lists the jobs an applied event schedules. Unique keys make redelivery harmless.
func (s *serviceImpl) effects(booking model.Booking, event model.Event) []schedulerModel.Spec {
	payload := schedulerModel.Payload{BookingID: booking.ID}

	switch event {
	case model.EventAccept, model.EventGatewaySettle:
		lead := time.Duration(s.cfg.Booking.ReminderLeadMinutes) * time.Minute
		remindAt := booking.CheckIn.Add(-lead)

		return []schedulerModel.Spec{
			{
				Type:      schedulerModel.TypeSendConfirmation,
				Payload:   payload,
				UniqueKey: schedulerModel.ConfirmationKey(booking.ID),
			},
			{
				Type:      schedulerModel.TypeSendReminder,
				Payload:   payload,
				RunAt:     remindAt,
				UniqueKey: schedulerModel.ReminderKey(booking.ID),
			},
		}
	case model.EventReject:
		payload.Kind = schedulerModel.NoticeRejected

		return []schedulerModel.Spec{{
			Type:      schedulerModel.TypeSendNotice,
			Payload:   payload,
			UniqueKey: schedulerModel.NoticeKey(schedulerModel.NoticeRejected, booking.ID, booking.RejectCount),
		}}
	case model.EventTenantCancel, model.EventGatewayCancel:
		payload.Kind = schedulerModel.NoticeCanceled

		return []schedulerModel.Spec{{
			Type:      schedulerModel.TypeSendNotice,
			Payload:   payload,
			UniqueKey: schedulerModel.NoticeKey(schedulerModel.NoticeCanceled, booking.ID, 0),
		}}
	default:
		return nil
	}
}
