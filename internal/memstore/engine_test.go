package memstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"stay/config"
	"stay/infras/kafka"
	kafkaMocks "stay/infras/kafka/mocks"
	otelMocks "stay/infras/otel/mocks"
	s3Mocks "stay/infras/s3/mocks"
	availDto "stay/internal/domains/availability/model/dto"
	availService "stay/internal/domains/availability/service"
	bookingModel "stay/internal/domains/booking/model"
	bookingDto "stay/internal/domains/booking/model/dto"
	bookingService "stay/internal/domains/booking/service"
	notificationModel "stay/internal/domains/notification/model"
	notificationService "stay/internal/domains/notification/service"
	paymentModel "stay/internal/domains/payment/model"
	paymentDto "stay/internal/domains/payment/model/dto"
	paymentService "stay/internal/domains/payment/service"
	pricingDto "stay/internal/domains/pricing/model/dto"
	pricingService "stay/internal/domains/pricing/service"
	resService "stay/internal/domains/reservation/service"
	roomDto "stay/internal/domains/room/model/dto"
	roomService "stay/internal/domains/room/service"
	schedulerModel "stay/internal/domains/scheduler/model"
	schedulerService "stay/internal/domains/scheduler/service"
	"stay/internal/handlers/job"
	"stay/internal/memstore"
	"stay/shared"
	"stay/shared/calendar"
	"stay/shared/constant"
	"stay/shared/failure"
	"stay/shared/timezone"
)

const (
	tenantID   = "tenant-1"
	guestID    = "guest-1"
	guestEmail = "guest@example.com"
	serverKey  = "server-key"
)

type engine struct {
	store        *memstore.Store
	rooms        roomService.Room
	availability availService.Availability
	pricing      pricingService.Pricing
	reservation  resService.Reservation
	booking      bookingService.Booking
	payment      paymentService.Payment
	scheduler    schedulerService.Scheduler

	mu   sync.Mutex
	sent []notificationModel.Message
}

func newEngine(t *testing.T) *engine {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.PaymentDeadlineMinutes = 24 * 60
	cfg.Booking.ReminderLeadMinutes = 24 * 60
	cfg.Booking.AvailabilityHorizonDays = 120
	cfg.Booking.ExpirySweepBatch = 10
	cfg.Booking.MaxNights = 30
	cfg.Scheduler.BatchSize = 50
	cfg.Scheduler.LeaseSeconds = 60
	cfg.Scheduler.MaxAttempts = 3
	cfg.Scheduler.RetryBackoffSeconds = 30
	cfg.Scheduler.Workers = 4
	cfg.Payment.ServerKey = serverKey
	cfg.Kafka.NotificationTopic = "notifications"
	cfg.External.S3.BucketName = "stay"

	e := &engine{store: memstore.New()}
	cache := memstore.NewCache()
	otel := otelMocks.NewOtel()
	tx := e.store.Transactor()

	s3 := s3Mocks.NewMockS3(ctrl)
	s3.EXPECT().UploadFileBytes(gomock.Any(), "stay", gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, directory, name, _ string, _ []byte) (string, error) {
			return "https://files.example.com/" + directory + "/" + name, nil
		}).AnyTimes()

	producer := kafkaMocks.NewMockClient(ctrl)
	producer.EXPECT().SendMessages(gomock.Any(), "notifications", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			e.mu.Lock()
			defer e.mu.Unlock()

			for _, message := range messages {
				e.sent = append(e.sent, message.Value.(notificationModel.Message))
			}

			return nil
		}).AnyTimes()

	e.pricing = pricingService.New(e.store.PeakRates(), e.store.Rooms(), cfg, cache, otel)
	e.availability = availService.New(e.store.Availability(), e.store.Rooms(), tx, cfg, cache, otel)
	e.rooms = roomService.New(e.store.Rooms(), e.pricing, e.availability, tx, cfg, cache, otel)
	e.reservation = resService.New(e.store.Usage(), e.store.Rooms(), e.store.Availability(), tx, cfg, cache, otel)
	e.scheduler = schedulerService.New(e.store.Jobs(), cfg, otel)
	e.booking = bookingService.New(e.store.Bookings(), e.store.Lines(), e.reservation, e.pricing, e.scheduler, s3, tx, cfg, cache, otel)
	e.payment = paymentService.New(e.booking, cfg, otel)

	notifier := notificationService.New(e.store.Bookings(), e.store.Lines(), producer, cfg, otel)
	require.NoError(t, job.NewWorker(e.scheduler, e.booking, notifier).Register(context.Background(), "@daily"))

	return e
}

func (e *engine) messages() []notificationModel.Message {
	e.mu.Lock()
	defer e.mu.Unlock()

	return append([]notificationModel.Message(nil), e.sent...)
}

func (e *engine) room(t *testing.T, units int, rates ...pricingDto.PeakRateRequest) string {
	t.Helper()

	res, err := e.rooms.Create(as(tenantID, constant.RoleTenant), roomDto.CreateRoomRequest{
		PropertyID: uuid.NewString(),
		Name:       "Deluxe",
		TotalUnits: units,
		BasePrice:  decimal.NewFromInt(100),
		PeakRates:  rates,
	})
	require.NoError(t, err)

	return res.ID
}

func (e *engine) book(roomID string, quantity int, from, to time.Time, method string) (bookingDto.BookingResponse, error) {
	return e.booking.Create(as(guestID, constant.RoleGuest), bookingDto.CreateBookingRequest{
		GuestName:     "Ayu",
		GuestEmail:    guestEmail,
		PaymentMethod: method,
		Lines: []bookingDto.LineRequest{{
			RoomID:   roomID,
			Quantity: quantity,
			CheckIn:  calendar.Format(from),
			CheckOut: calendar.Format(to),
			Guests:   quantity,
		}},
	})
}

func (e *engine) status(t *testing.T, id string) bookingModel.Status {
	t.Helper()

	booking, err := e.store.Bookings().Get(context.Background(), shared.FilterByID(id, bookingModel.FieldID, bookingModel.TableName))
	require.NoError(t, err)
	require.True(t, booking.Exists())

	return booking.Status
}

func (e *engine) jobs(jobType schedulerModel.Type) []schedulerModel.Job {
	var out []schedulerModel.Job

	for _, j := range e.store.ScheduledJobs() {
		if j.Type == jobType {
			out = append(out, j)
		}
	}

	return out
}

func as(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func day(offset int) time.Time {
	return timezone.Today().AddDate(0, 0, offset)
}

func saturdayAfter(offset int) time.Time {
	d := day(offset)
	for d.Weekday() != time.Saturday {
		d = d.AddDate(0, 0, 1)
	}

	return d
}

func TestEngine_FullRoomRejectsSecondBooking(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 2)

	first, err := e.book(roomID, 2, day(30), day(32), "manual")
	require.NoError(t, err)
	assert.Equal(t, string(bookingModel.StatusWaitingPayment), first.Status)

	_, err = e.book(roomID, 1, day(30), day(32), "manual")
	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.KindInsufficientInventory))
}

func TestEngine_AdjacentStaysShareUnits(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 1)

	_, err := e.book(roomID, 1, day(30), day(32), "manual")
	require.NoError(t, err)

	// Checking out on the 32nd frees the unit for a stay that starts that day.
	_, err = e.book(roomID, 1, day(32), day(34), "manual")
	require.NoError(t, err)

	remaining, err := e.reservation.Remaining(context.Background(), roomID, day(29), day(35))
	require.NoError(t, err)
	require.Len(t, remaining.Days, 6)

	for i, want := range []int{1, 0, 0, 0, 0, 1} {
		assert.Equal(t, want, remaining.Days[i].Remaining, remaining.Days[i].Date)
	}
}

func TestEngine_ConcurrentReservationsNeverOversell(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 3)

	const attempts = 12

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := e.book(roomID, 1, day(40), day(43), "gateway")

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				accepted++
			case failure.Is(err, failure.KindInsufficientInventory):
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, 3, accepted)
	assert.Equal(t, attempts-3, rejected)

	usages, err := e.store.Usage().ActiveOverlapping(context.Background(), roomID, day(40), day(43))
	require.NoError(t, err)
	assert.Len(t, usages, 3)
}

func TestEngine_ExpirySweepFreesInventory(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 1)

	booking, err := e.book(roomID, 1, day(30), day(31), "manual")
	require.NoError(t, err)
	require.NotEmpty(t, booking.PaymentDeadline)

	_, err = e.book(roomID, 1, day(30), day(31), "manual")
	require.True(t, failure.Is(err, failure.KindInsufficientInventory))

	// Move the deadline into the past instead of waiting a day.
	err = e.store.Bookings().UpdateTx(context.Background(), nil,
		map[string]any{bookingModel.FieldPaymentDeadline: timezone.Now().Add(-time.Minute)},
		shared.FilterByID(booking.ID, bookingModel.FieldID, bookingModel.TableName))
	require.NoError(t, err)

	_, err = e.scheduler.Schedule(context.Background(), schedulerModel.Spec{Type: schedulerModel.TypeExpireBookings})
	require.NoError(t, err)

	_, err = e.scheduler.RunDue(context.Background())
	require.NoError(t, err)

	assert.Equal(t, bookingModel.StatusExpired, e.status(t, booking.ID))

	_, err = e.book(roomID, 1, day(30), day(31), "manual")
	require.NoError(t, err)
}

func TestEngine_CustomRateBeatsWeekendRate(t *testing.T) {
	e := newEngine(t)
	saturday := saturdayAfter(30)

	roomID := e.room(t, 1,
		pricingDto.PeakRateRequest{Kind: "weekend", AdjustmentType: "percentage", Value: decimal.NewFromInt(20)},
		pricingDto.PeakRateRequest{
			Kind:           "custom",
			StartDate:      calendar.Format(saturday),
			EndDate:        calendar.Format(saturday),
			AdjustmentType: "fixed",
			Value:          decimal.NewFromInt(50),
		},
	)

	quote, err := e.pricing.Quote(context.Background(), roomID, saturday, saturday.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, quote.PerDay, 2)
	assert.True(t, decimal.NewFromInt(150).Equal(quote.PerDay[0].Price), "saturday priced %s", quote.PerDay[0].Price)
	assert.True(t, decimal.NewFromInt(120).Equal(quote.PerDay[1].Price), "sunday priced %s", quote.PerDay[1].Price)

	booking, err := e.book(roomID, 1, saturday, saturday.AddDate(0, 0, 2), "gateway")
	require.NoError(t, err)
	assert.True(t, quote.Total.Equal(booking.TotalPrice), "quoted %s, booked %s", quote.Total, booking.TotalPrice)
}

func TestEngine_RejectKeepsInventoryAndNotifiesGuest(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 1)

	booking, err := e.book(roomID, 1, day(30), day(32), "manual")
	require.NoError(t, err)

	uploaded, err := e.booking.UploadProof(as(guestID, constant.RoleGuest), booking.ID, bookingDto.UploadProofRequest{
		FileName: "transfer.png",
		Data:     []byte("png"),
	})
	require.NoError(t, err)
	assert.Equal(t, string(bookingModel.StatusWaitingConfirmation), uploaded.Status)

	rejected, err := e.booking.Reject(as(tenantID, constant.RoleTenant), booking.ID, bookingDto.RejectRequest{Reason: "blurry"})
	require.NoError(t, err)
	assert.Equal(t, string(bookingModel.StatusWaitingPayment), rejected.Status)
	assert.Empty(t, rejected.PaymentProof)

	_, err = e.book(roomID, 1, day(30), day(32), "manual")
	assert.True(t, failure.Is(err, failure.KindInsufficientInventory))

	_, err = e.scheduler.RunDue(context.Background())
	require.NoError(t, err)

	sent := e.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, notificationModel.TemplateRejected, sent[0].Template)
	assert.Equal(t, guestEmail, sent[0].To)
	assert.Equal(t, booking.ID, sent[0].Data["booking_id"])
	assert.Equal(t, "Ayu", sent[0].Data["guest_name"])
}

func TestEngine_GatewaySettlementIsIdempotent(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 1)

	booking, err := e.book(roomID, 1, day(30), day(32), "gateway")
	require.NoError(t, err)

	gross := booking.TotalPrice.StringFixed(2)
	notification := paymentDto.NotificationRequest{
		OrderID:           booking.ID,
		StatusCode:        "200",
		GrossAmount:       gross,
		TransactionStatus: paymentModel.TransactionSettlement,
		SignatureKey:      paymentModel.Signature(booking.ID, "200", gross, serverKey),
	}

	for range 3 {
		res, err := e.payment.HandleNotification(context.Background(), notification)
		require.NoError(t, err)
		assert.True(t, res.Applied)
		assert.Equal(t, string(bookingModel.StatusConfirmed), res.Status)
	}

	assert.Equal(t, bookingModel.StatusConfirmed, e.status(t, booking.ID))
	assert.Len(t, e.jobs(schedulerModel.TypeSendConfirmation), 1)
	assert.Len(t, e.jobs(schedulerModel.TypeSendReminder), 1)

	_, err = e.scheduler.RunDue(context.Background())
	require.NoError(t, err)

	sent := e.messages()
	require.Len(t, sent, 1)
	assert.Equal(t, notificationModel.TemplateConfirmation, sent[0].Template)

	// A cancel arriving after settlement is acknowledged without touching the confirmed booking.
	cancel := notification
	cancel.TransactionStatus = paymentModel.TransactionCancel

	res, err := e.payment.HandleNotification(context.Background(), cancel)
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, bookingModel.StatusConfirmed, e.status(t, booking.ID))

	forged := notification
	forged.SignatureKey = "forged"

	_, err = e.payment.HandleNotification(context.Background(), forged)
	assert.True(t, failure.Is(err, failure.KindSignatureMismatch))
}

func TestEngine_LateGatewayExpiryKeepsAcceptedBooking(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 1)

	booking, err := e.book(roomID, 1, day(30), day(32), "gateway")
	require.NoError(t, err)

	_, err = e.booking.UploadProof(as(guestID, constant.RoleGuest), booking.ID, bookingDto.UploadProofRequest{
		FileName: "transfer.png",
		Data:     []byte("png"),
	})
	require.NoError(t, err)

	accepted, err := e.booking.Accept(as(tenantID, constant.RoleTenant), booking.ID)
	require.NoError(t, err)
	require.Equal(t, string(bookingModel.StatusConfirmed), accepted.Status)

	gross := booking.TotalPrice.StringFixed(2)
	res, err := e.payment.HandleNotification(context.Background(), paymentDto.NotificationRequest{
		OrderID:           booking.ID,
		StatusCode:        "407",
		GrossAmount:       gross,
		TransactionStatus: paymentModel.TransactionExpire,
		SignatureKey:      paymentModel.Signature(booking.ID, "407", gross, serverKey),
	})
	require.NoError(t, err)
	assert.False(t, res.Applied)
	assert.Equal(t, bookingModel.StatusConfirmed, e.status(t, booking.ID))

	_, err = e.book(roomID, 1, day(30), day(32), "manual")
	assert.True(t, failure.Is(err, failure.KindInsufficientInventory))
}

func TestEngine_ReminderSkipsCanceledBooking(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 1)

	// Check-in tomorrow puts the reminder in the past, so it is due right away.
	booking, err := e.book(roomID, 1, day(1), day(2), "gateway")
	require.NoError(t, err)

	_, err = e.booking.Accept(as(tenantID, constant.RoleTenant), booking.ID)
	require.NoError(t, err)

	_, err = e.booking.CancelByTenant(as(tenantID, constant.RoleTenant), booking.ID)
	require.NoError(t, err)

	_, err = e.scheduler.RunDue(context.Background())
	require.NoError(t, err)

	templates := make([]notificationModel.Template, 0, 2)
	for _, message := range e.messages() {
		templates = append(templates, message.Template)
	}

	assert.ElementsMatch(t, []notificationModel.Template{notificationModel.TemplateCanceled}, templates)

	for _, j := range e.store.ScheduledJobs() {
		if j.Type != schedulerModel.TypeExpireBookings {
			assert.Equal(t, schedulerModel.StatusDone, j.Status, j.Type)
		}
	}
}

func TestEngine_BlockedDaysCannotBeBooked(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 2)
	blocked := true

	err := e.availability.SetRange(as(tenantID, constant.RoleTenant), roomID, availDto.SetRangeRequest{
		StartDate: calendar.Format(day(31)),
		EndDate:   calendar.Format(day(32)),
		Blocked:   &blocked,
	})
	require.NoError(t, err)

	_, err = e.book(roomID, 1, day(30), day(33), "manual")
	require.True(t, failure.Is(err, failure.KindInsufficientInventory))

	_, err = e.book(roomID, 1, day(32), day(33), "manual")
	require.NoError(t, err)
}

func TestEngine_ZeroUnitRoomIsListedButNeverBookable(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 0)

	remaining, err := e.reservation.Remaining(context.Background(), roomID, day(30), day(32))
	require.NoError(t, err)
	require.Len(t, remaining.Days, 2)

	for _, d := range remaining.Days {
		assert.Zero(t, d.Remaining, d.Date)
	}

	_, err = e.book(roomID, 1, day(30), day(32), "manual")
	assert.True(t, failure.Is(err, failure.KindInsufficientInventory))
}

func TestEngine_PeakRateEditRepricesQuotesOnly(t *testing.T) {
	e := newEngine(t)
	roomID := e.room(t, 2)
	from, to := day(30), day(31)

	before, err := e.pricing.Quote(context.Background(), roomID, from, to)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(before.Total), "quoted %s", before.Total)

	booking, err := e.book(roomID, 1, from, to, "manual")
	require.NoError(t, err)
	assert.True(t, before.Total.Equal(booking.TotalPrice), "booked %s", booking.TotalPrice)

	err = e.rooms.UpdatePeakRates(as(tenantID, constant.RoleTenant), roomID, pricingDto.ReplacePeakRatesRequest{
		PeakRates: []pricingDto.PeakRateRequest{{
			Kind:           "custom",
			StartDate:      calendar.Format(from),
			EndDate:        calendar.Format(from),
			AdjustmentType: "percentage",
			Value:          decimal.NewFromInt(50),
		}},
	})
	require.NoError(t, err)

	// Cached quotes are dropped in the background.
	assert.Eventually(t, func() bool {
		after, err := e.pricing.Quote(context.Background(), roomID, from, to)

		return err == nil && decimal.NewFromInt(150).Equal(after.Total)
	}, time.Second, 10*time.Millisecond)

	stored, err := e.booking.Get(as(guestID, constant.RoleGuest), booking.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(stored.TotalPrice), "booking repriced to %s", stored.TotalPrice)
}
