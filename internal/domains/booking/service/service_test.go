package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stay/config"
	otelMocks "stay/infras/otel/mocks"
	"stay/infras/postgres"
	pgMocks "stay/infras/postgres/mocks"
	s3Mocks "stay/infras/s3/mocks"
	bookingMocks "stay/internal/domains/booking/mocks"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/domains/booking/service"
	pricingMocks "stay/internal/domains/pricing/mocks"
	pricingModel "stay/internal/domains/pricing/model"
	resMocks "stay/internal/domains/reservation/mocks"
	resModel "stay/internal/domains/reservation/model"
	resService "stay/internal/domains/reservation/service"
	roomModel "stay/internal/domains/room/model"
	schedulerMocks "stay/internal/domains/scheduler/mocks"
	schedulerModel "stay/internal/domains/scheduler/model"
	cacheMocks "stay/shared/cache/mocks"
	"stay/shared/calendar"
	"stay/shared/constant"
	"stay/shared/failure"
	"stay/shared/timezone"
)

const (
	guestID  = "guest-1"
	tenantID = "tenant-1"
)

type fixture struct {
	repo        *bookingMocks.MockBooking
	lines       *bookingMocks.MockLine
	reservation *resMocks.MockReservationService
	pricing     *pricingMocks.MockPricingService
	scheduler   *schedulerMocks.MockSchedulerService
	s3          *s3Mocks.MockS3
	transactor  *pgMocks.MockTransactor
	cache       *cacheMocks.MockRedisCache
	svc         service.Booking
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.PaymentDeadlineMinutes = 60
	cfg.Booking.ReminderLeadMinutes = 1440
	cfg.Booking.MaxNights = 30
	cfg.Booking.ExpirySweepBatch = 10
	cfg.External.S3.BucketName = "stay"

	f := fixture{
		repo:        bookingMocks.NewMockBooking(ctrl),
		lines:       bookingMocks.NewMockLine(ctrl),
		reservation: resMocks.NewMockReservationService(ctrl),
		pricing:     pricingMocks.NewMockPricingService(ctrl),
		scheduler:   schedulerMocks.NewMockSchedulerService(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
		transactor:  pgMocks.NewMockTransactor(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
	}
	f.svc = service.New(f.repo, f.lines, f.reservation, f.pricing, f.scheduler, f.s3, f.transactor, cfg, f.cache, otelMocks.NewOtel())

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func (f fixture) runRooms() {
	f.transactor.EXPECT().
		WithinRooms(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ []string, fn postgres.TxFunc) error {
			return fn(ctx, nil)
		})
}

// reserve makes Reserve run commit as if every line fit.
func (f fixture) reserve(rooms ...roomModel.Room) {
	byID := make(map[string]roomModel.Room, len(rooms))
	for _, room := range rooms {
		byID[room.ID] = room
	}

	f.reservation.EXPECT().
		Reserve(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req resModel.Request, commit resService.CommitFunc) (resModel.Reservation, error) {
			res := resModel.Reservation{Lines: req.Lines, Rooms: byID}

			return res, commit(ctx, nil, res)
		})
}

// locked primes the lookups transition does before and under the room locks.
func (f fixture) locked(booking model.Booking) {
	f.lines.EXPECT().GetByBooking(gomock.Any(), booking.ID).Return([]model.Line{
		{ID: "l-1", BookingID: booking.ID, RoomID: "r-1", Quantity: 1, CheckIn: booking.CheckIn, CheckOut: booking.CheckOut},
	}, nil)
	f.runRooms()
	f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(booking, nil)
}

func actor(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func day(offset int) time.Time {
	return timezone.Today().AddDate(0, 0, offset)
}

func room(id, propertyID string) roomModel.Room {
	return roomModel.Room{ID: id, PropertyID: propertyID, TenantID: tenantID, TotalUnits: 2, BasePrice: decimal.NewFromInt(100)}
}

func bookingIn(status model.Status) model.Booking {
	return model.Booking{
		ID:            "b-1",
		GuestID:       guestID,
		TenantID:      tenantID,
		CheckIn:       day(10),
		CheckOut:      day(12),
		TotalPrice:    decimal.NewFromInt(200),
		Status:        status,
		PaymentMethod: model.PaymentManual,
		RejectCount:   1,
	}
}

func createRequest(method string, lines ...dto.LineRequest) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		GuestName:     "Guest",
		GuestEmail:    "guest@example.com",
		PaymentMethod: method,
		Lines:         lines,
	}
}

func line(roomID string, quantity, from, to int) dto.LineRequest {
	return dto.LineRequest{RoomID: roomID, Quantity: quantity, CheckIn: calendar.Format(day(from)), CheckOut: calendar.Format(day(to)), Guests: 2}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("manual payment waits for proof", func(t *testing.T) {
		f := newFixture(t)
		f.reserve(room("r-1", "p-1"))

		f.pricing.EXPECT().QuoteTx(gomock.Any(), gomock.Any(), gomock.Any(), day(10), day(12)).
			Return(pricingModel.Quote{Nights: 2, Total: decimal.NewFromInt(250)}, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
				assert.Equal(t, model.StatusWaitingPayment, b.Status)
				assert.Equal(t, guestID, b.GuestID)
				assert.Equal(t, "p-1", b.PropertyID)
				assert.Equal(t, tenantID, b.TenantID)
				assert.True(t, decimal.NewFromInt(500).Equal(b.TotalPrice))
				require.NotNil(t, b.PaymentDeadline)
				assert.WithinDuration(t, timezone.Now().Add(time.Hour), *b.PaymentDeadline, time.Minute)

				return nil
			})
		f.lines.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, lines []model.Line) error {
				require.Len(t, lines, 1)
				assert.Equal(t, 2, lines[0].Quantity)
				assert.Equal(t, 2, lines[0].Nights)
				assert.Equal(t, 2, lines[0].Guests)

				return nil
			})

		res, err := f.svc.Create(actor(guestID, constant.RoleGuest), createRequest("manual", line("r-1", 2, 10, 12)))
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusWaitingPayment), res.Status)
		assert.NotEmpty(t, res.PaymentDeadline)
		require.Len(t, res.Lines, 1)
	})

	t.Run("gateway payment waits for confirmation", func(t *testing.T) {
		f := newFixture(t)
		f.reserve(room("r-1", "p-1"))

		f.pricing.EXPECT().QuoteTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pricingModel.Quote{Nights: 2, Total: decimal.NewFromInt(200)}, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, b model.Booking) error {
				assert.Equal(t, model.StatusWaitingConfirmation, b.Status)
				assert.Nil(t, b.PaymentDeadline)

				return nil
			})
		f.lines.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(actor(guestID, constant.RoleGuest), createRequest("gateway", line("r-1", 1, 10, 12)))
		require.NoError(t, err)
		assert.Empty(t, res.PaymentDeadline)
	})

	t.Run("rooms from different properties", func(t *testing.T) {
		f := newFixture(t)
		f.reserve(room("r-1", "p-1"), room("r-2", "p-2"))

		f.pricing.EXPECT().QuoteTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pricingModel.Quote{Nights: 2, Total: decimal.NewFromInt(200)}, nil)

		_, err := f.svc.Create(actor(guestID, constant.RoleGuest), createRequest("manual", line("r-1", 1, 10, 12), line("r-2", 1, 10, 12)))
		require.Error(t, err)
		assert.Equal(t, failure.KindBadRequest, failure.GetKind(err))
	})

	t.Run("shortage passes through", func(t *testing.T) {
		f := newFixture(t)

		shortage := failure.InsufficientInventory("not enough units", []resModel.Shortage{{RoomID: "r-1", Date: calendar.Format(day(10))}})
		f.reservation.EXPECT().Reserve(gomock.Any(), gomock.Any(), gomock.Any()).Return(resModel.Reservation{}, shortage)

		_, err := f.svc.Create(actor(guestID, constant.RoleGuest), createRequest("manual", line("r-1", 3, 10, 12)))
		require.Error(t, err)
		assert.Equal(t, failure.KindInsufficientInventory, failure.GetKind(err))
	})

	t.Run("invalid stays never reach the reservation", func(t *testing.T) {
		tests := []struct {
			name string
			line dto.LineRequest
		}{
			{name: "past check-in", line: line("r-1", 1, -1, 2)},
			{name: "reversed range", line: line("r-1", 1, 5, 3)},
			{name: "too long", line: line("r-1", 1, 1, 45)},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newFixture(t)

				_, err := f.svc.Create(actor(guestID, constant.RoleGuest), createRequest("manual", tt.line))
				require.Error(t, err)
				assert.Equal(t, failure.KindInvalidRange, failure.GetKind(err))
			})
		}
	})
}

func TestBookingService_Accept(t *testing.T) {
	t.Run("confirms and schedules confirmation and reminder", func(t *testing.T) {
		f := newFixture(t)
		f.locked(bookingIn(model.StatusWaitingConfirmation))

		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, updates map[string]any, _ any) error {
				assert.Equal(t, model.StatusConfirmed, updates[model.FieldStatus])
				assert.Contains(t, updates, model.FieldPaidAt)
				assert.Equal(t, tenantID, updates[constant.FieldModifiedBy])

				return nil
			})

		var specs []schedulerModel.Spec

		f.scheduler.EXPECT().ScheduleTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, spec schedulerModel.Spec) (bool, error) {
				specs = append(specs, spec)

				return true, nil
			}).Times(2)

		res, err := f.svc.Accept(actor(tenantID, constant.RoleTenant), "b-1")
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
		assert.NotEmpty(t, res.PaidAt)

		require.Len(t, specs, 2)
		assert.Equal(t, "confirmation:b-1", specs[0].UniqueKey)
		assert.Equal(t, "reminder:b-1", specs[1].UniqueKey)
		assert.Equal(t, day(9), specs[1].RunAt)
	})

	t.Run("redelivery is a no-op", func(t *testing.T) {
		f := newFixture(t)
		f.locked(bookingIn(model.StatusConfirmed))

		res, err := f.svc.Accept(actor(tenantID, constant.RoleTenant), "b-1")
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
	})

	t.Run("other tenant", func(t *testing.T) {
		f := newFixture(t)
		f.locked(bookingIn(model.StatusWaitingConfirmation))

		_, err := f.svc.Accept(actor("tenant-2", constant.RoleTenant), "b-1")
		require.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})

	t.Run("illegal from waiting payment", func(t *testing.T) {
		f := newFixture(t)
		f.locked(bookingIn(model.StatusWaitingPayment))

		_, err := f.svc.Accept(actor(tenantID, constant.RoleTenant), "b-1")
		require.Error(t, err)
		assert.Equal(t, failure.KindInvalidStateTransition, failure.GetKind(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		f.lines.EXPECT().GetByBooking(gomock.Any(), "b-9").Return(nil, nil)

		_, err := f.svc.Accept(actor(tenantID, constant.RoleTenant), "b-9")
		require.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}

func TestBookingService_Reject(t *testing.T) {
	f := newFixture(t)

	booking := bookingIn(model.StatusWaitingConfirmation)
	booking.PaymentProof = "https://cdn.example.com/proof.png"
	f.locked(booking)

	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, updates map[string]any, _ any) error {
			assert.Equal(t, model.StatusWaitingPayment, updates[model.FieldStatus])
			assert.Equal(t, 2, updates[model.FieldRejectCount])
			assert.Equal(t, "", updates[model.FieldPaymentProof])
			assert.Contains(t, updates, model.FieldPaymentDeadline)

			return nil
		})
	f.scheduler.EXPECT().ScheduleTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, spec schedulerModel.Spec) (bool, error) {
			assert.Equal(t, schedulerModel.TypeSendNotice, spec.Type)
			assert.Equal(t, schedulerModel.NoticeRejected, spec.Payload.Kind)
			assert.Equal(t, "notice:rejected:b-1:2", spec.UniqueKey)

			return true, nil
		})

	res, err := f.svc.Reject(actor(tenantID, constant.RoleTenant), "b-1", dto.RejectRequest{Reason: "blurry"})
	require.NoError(t, err)
	assert.Equal(t, string(model.StatusWaitingPayment), res.Status)
	assert.Empty(t, res.PaymentProof)
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("guest cancels before proof", func(t *testing.T) {
		f := newFixture(t)
		f.locked(bookingIn(model.StatusWaitingPayment))

		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.reservation.EXPECT().Invalidate(gomock.Any(), "r-1")

		res, err := f.svc.CancelByGuest(actor(guestID, constant.RoleGuest), "b-1")
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCanceled), res.Status)
		assert.NotEmpty(t, res.CanceledAt)
	})

	t.Run("guest cannot cancel after proof", func(t *testing.T) {
		f := newFixture(t)

		booking := bookingIn(model.StatusWaitingConfirmation)
		booking.PaymentProof = "https://cdn.example.com/proof.png"
		f.locked(booking)

		_, err := f.svc.CancelByGuest(actor(guestID, constant.RoleGuest), "b-1")
		require.Error(t, err)
		assert.Equal(t, failure.KindInvalidStateTransition, failure.GetKind(err))
	})

	t.Run("tenant cancel sends notice", func(t *testing.T) {
		f := newFixture(t)
		f.locked(bookingIn(model.StatusConfirmed))

		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.scheduler.EXPECT().ScheduleTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, spec schedulerModel.Spec) (bool, error) {
				assert.Equal(t, "notice:canceled:b-1", spec.UniqueKey)

				return true, nil
			})
		f.reservation.EXPECT().Invalidate(gomock.Any(), "r-1")

		res, err := f.svc.CancelByTenant(actor(tenantID, constant.RoleTenant), "b-1")
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusCanceledByTenant), res.Status)
	})

	t.Run("update failure is internal", func(t *testing.T) {
		f := newFixture(t)
		f.locked(bookingIn(model.StatusConfirmed))

		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := f.svc.CancelByTenant(actor(tenantID, constant.RoleTenant), "b-1")
		require.Error(t, err)
		assert.Equal(t, failure.KindInternal, failure.GetKind(err))
	})
}

func TestBookingService_ApplyGatewayStatus(t *testing.T) {
	t.Run("unsupported event", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ApplyGatewayStatus(context.Background(), "b-1", model.EventAccept)
		require.Error(t, err)
		assert.Equal(t, failure.KindBadRequest, failure.GetKind(err))
	})

	t.Run("settlement acts as the system", func(t *testing.T) {
		f := newFixture(t)
		f.locked(bookingIn(model.StatusWaitingPayment))

		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, updates map[string]any, _ any) error {
				assert.Equal(t, constant.RoleSystem, updates[constant.FieldModifiedBy])

				return nil
			})
		f.scheduler.EXPECT().ScheduleTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil).Times(2)

		res, err := f.svc.ApplyGatewayStatus(context.Background(), "b-1", model.EventGatewaySettle)
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusConfirmed), res.Status)
	})
}

func TestBookingService_UploadProof(t *testing.T) {
	req := dto.UploadProofRequest{FileName: "proof.png", Data: []byte("png")}

	t.Run("stores proof and waits for confirmation", func(t *testing.T) {
		f := newFixture(t)

		booking := bookingIn(model.StatusWaitingPayment)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.s3.EXPECT().UploadFileBytes(gomock.Any(), "stay", "payment-proofs", "b-1-proof.png", "", req.Data).
			Return("https://cdn.example.com/payment-proofs/b-1-proof.png", nil)
		f.locked(booking)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.UploadProof(actor(guestID, constant.RoleGuest), "b-1", req)
		require.NoError(t, err)
		assert.Equal(t, string(model.StatusWaitingConfirmation), res.Status)
		assert.Equal(t, "https://cdn.example.com/payment-proofs/b-1-proof.png", res.PaymentProof)
	})

	t.Run("rejected before upload when illegal", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingIn(model.StatusConfirmed), nil)

		_, err := f.svc.UploadProof(actor(guestID, constant.RoleGuest), "b-1", req)
		require.Error(t, err)
		assert.Equal(t, failure.KindInvalidStateTransition, failure.GetKind(err))
	})

	t.Run("other guest", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingIn(model.StatusWaitingPayment), nil)

		_, err := f.svc.UploadProof(actor("guest-2", constant.RoleGuest), "b-1", req)
		require.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})
}

func TestBookingService_ExpireOverdue(t *testing.T) {
	f := newFixture(t)

	past := timezone.Now().Add(-time.Hour)

	overdue := bookingIn(model.StatusWaitingPayment)
	overdue.PaymentDeadline = &past

	// The second booking received a proof between the listing and the lock.
	raced := bookingIn(model.StatusWaitingConfirmation)
	raced.ID = "b-2"
	raced.PaymentDeadline = &past

	f.repo.EXPECT().OverdueIDs(gomock.Any(), gomock.Any(), 10).Return([]string{"b-1", "b-2"}, nil)
	f.locked(overdue)
	f.locked(raced)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, updates map[string]any, _ any) error {
			assert.Equal(t, model.StatusExpired, updates[model.FieldStatus])

			return nil
		})
	f.reservation.EXPECT().Invalidate(gomock.Any(), "r-1")

	expired, err := f.svc.ExpireOverdue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, expired)
}

func TestBookingService_ExpireOverdueCountsEachFailureOnce(t *testing.T) {
	f := newFixture(t)

	past := timezone.Now().Add(-time.Hour)

	// Nine bookings expire on the first pass; b-bad fails on both passes.
	first := make([]string, 0, 10)

	for i := range 9 {
		overdue := bookingIn(model.StatusWaitingPayment)
		overdue.ID = fmt.Sprintf("b-%d", i)
		overdue.PaymentDeadline = &past

		first = append(first, overdue.ID)
		f.locked(overdue)
	}

	first = append(first, "b-bad")

	gomock.InOrder(
		f.repo.EXPECT().OverdueIDs(gomock.Any(), gomock.Any(), 10).Return(first, nil),
		f.repo.EXPECT().OverdueIDs(gomock.Any(), gomock.Any(), 10).Return([]string{"b-bad"}, nil),
	)
	f.lines.EXPECT().GetByBooking(gomock.Any(), "b-bad").Return(nil, errors.New("connection reset")).Times(2)
	f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(9)
	f.reservation.EXPECT().Invalidate(gomock.Any(), "r-1").Times(9)

	expired, err := f.svc.ExpireOverdue(context.Background())
	require.Error(t, err)
	assert.Equal(t, 9, expired)
	assert.Equal(t, "failed to expire 1 bookings", err.Error())
}

func TestBookingService_Get(t *testing.T) {
	t.Run("owner reads booking with lines", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("miss"))
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingIn(model.StatusConfirmed), nil)
		f.lines.EXPECT().GetByBooking(gomock.Any(), "b-1").Return([]model.Line{{ID: "l-1", RoomID: "r-1"}}, nil)

		res, err := f.svc.Get(actor(guestID, constant.RoleGuest), "b-1")
		require.NoError(t, err)
		assert.Equal(t, "b-1", res.ID)
		require.Len(t, res.Lines, 1)
	})

	t.Run("someone else's booking", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(bookingIn(model.StatusConfirmed), nil)

		_, err := f.svc.Get(actor("guest-2", constant.RoleGuest), "b-1")
		require.Error(t, err)
		assert.Equal(t, failure.KindUnauthorized, failure.GetKind(err))
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(actor(guestID, constant.RoleGuest), "b-1")
		require.Error(t, err)
		assert.Equal(t, failure.KindNotFound, failure.GetKind(err))
	})
}
