package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Booking=MockBookingService

import (
	"context"
	"errors"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/infras/s3"
	"stay/internal/domains/booking/model"
	"stay/internal/domains/booking/model/dto"
	"stay/internal/domains/booking/repository"
	pricingService "stay/internal/domains/pricing/service"
	resModel "stay/internal/domains/reservation/model"
	resService "stay/internal/domains/reservation/service"
	schedulerService "stay/internal/domains/scheduler/service"
	"stay/shared"
	"stay/shared/cache"
	"stay/shared/calendar"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/failure"
	gModel "stay/shared/model"
	"stay/shared/timezone"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"

	proofDirectory = "payment-proofs"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	UploadProof(ctx context.Context, id string, req dto.UploadProofRequest) (dto.BookingResponse, error)
	Accept(ctx context.Context, id string) (dto.BookingResponse, error)
	Reject(ctx context.Context, id string, req dto.RejectRequest) (dto.BookingResponse, error)
	CancelByGuest(ctx context.Context, id string) (dto.BookingResponse, error)
	CancelByTenant(ctx context.Context, id string) (dto.BookingResponse, error)
	// ApplyGatewayStatus moves a booking on behalf of the payment gateway. Redelivered events are no-ops.
	ApplyGatewayStatus(ctx context.Context, id string, event model.Event) (dto.BookingResponse, error)
	// ExpireOverdue expires waiting_payment bookings past their deadline and reports how many moved.
	ExpireOverdue(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo        repository.Booking
	lineRepo    repository.Line
	reservation resService.Reservation
	pricing     pricingService.Pricing
	scheduler   schedulerService.Scheduler
	s3          s3.S3
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Booking,
	lineRepo repository.Line,
	reservation resService.Reservation,
	pricing pricingService.Pricing,
	scheduler schedulerService.Scheduler,
	s3 s3.S3,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:        repo,
		lineRepo:    lineRepo,
		reservation: reservation,
		pricing:     pricing,
		scheduler:   scheduler,
		s3:          s3,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := actor(ctx)
	now := timezone.Now()

	reserveReq, guests, err := req.ToRequest()
	if err != nil {
		return res, err //nolint:wrapcheck
	}

	if err = s.validateStay(reserveReq); err != nil {
		return res, err
	}

	var (
		booking model.Booking
		lines   []model.Line
	)

	_, err = s.reservation.Reserve(ctx, reserveReq, func(ctx context.Context, tx *sqlx.Tx, reservation resModel.Reservation) error {
		booking, lines, err = s.build(ctx, tx, req, reservation, guests, user, now)
		if err != nil {
			return err
		}

		if err := s.repo.InsertTx(ctx, tx, booking); err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}

		if err := s.lineRepo.InsertBulkTx(ctx, tx, lines); err != nil {
			return fmt.Errorf("failed to insert booking lines: %w", err)
		}

		return nil
	})
	if err != nil {
		var fail *failure.Failure
		if errors.As(err, &fail) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Info().Str("booking", booking.ID).Str("status", string(booking.Status)).Str("total", booking.TotalPrice.String()).
		Msg("booking created")

	s.invalidate(ctx, constant.Empty)

	res.FromModel(booking, lines)

	return res, nil
}

func (s *serviceImpl) validateStay(req resModel.Request) error {
	today := timezone.Today()

	for _, line := range req.Lines {
		if line.CheckIn.Before(today) {
			return failure.InvalidRange("check-in cannot be in the past") //nolint:wrapcheck
		}

		if s.cfg.Booking.MaxNights > 0 && calendar.Nights(line.CheckIn, line.CheckOut) > s.cfg.Booking.MaxNights {
			return failure.InvalidRange(fmt.Sprintf("a stay cannot exceed %d nights", s.cfg.Booking.MaxNights)) //nolint:wrapcheck
		}
	}

	return nil
}

// build prices every line from the rules visible to tx, so the charge matches what was reserved.
func (s *serviceImpl) build(
	ctx context.Context,
	tx *sqlx.Tx,
	req dto.CreateBookingRequest,
	reservation resModel.Reservation,
	guests []int,
	user string,
	now time.Time,
) (model.Booking, []model.Line, error) {
	var (
		propertyID string
		tenantID   string
		total      = decimal.Zero
	)

	booking := model.Booking{
		ID:            uuid.NewString(),
		GuestID:       user,
		GuestEmail:    req.GuestEmail,
		GuestName:     req.GuestName,
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Metadata:      gModel.NewMetadata(user, now),
	}

	lines := make([]model.Line, len(reservation.Lines))

	for i, line := range reservation.Lines {
		room := reservation.Rooms[line.RoomID]

		if propertyID == constant.Empty {
			propertyID, tenantID = room.PropertyID, room.TenantID
		} else if room.PropertyID != propertyID {
			return booking, nil, failure.BadRequestFromString("all rooms of a booking must belong to one property") //nolint:wrapcheck
		}

		quote, err := s.pricing.QuoteTx(ctx, tx, room, line.CheckIn, line.CheckOut)
		if err != nil {
			return booking, nil, fmt.Errorf("failed to price room %s: %w", line.RoomID, err)
		}

		subtotal := quote.Total.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		lines[i] = model.Line{
			ID:        uuid.NewString(),
			BookingID: booking.ID,
			RoomID:    line.RoomID,
			Quantity:  line.Quantity,
			CheckIn:   line.CheckIn,
			CheckOut:  line.CheckOut,
			Guests:    guests[i],
			Nights:    quote.Nights,
			Subtotal:  subtotal,
			Metadata:  gModel.NewMetadata(user, now),
		}
	}

	booking.PropertyID = propertyID
	booking.TenantID = tenantID
	booking.CheckIn, booking.CheckOut = resModel.Window(reservation.Lines)
	booking.TotalPrice = total

	switch booking.PaymentMethod {
	case model.PaymentGateway:
		booking.Status = model.StatusWaitingConfirmation
	default:
		deadline := now.Add(time.Duration(s.cfg.Booking.PaymentDeadlineMinutes) * time.Minute)
		booking.Status = model.StatusWaitingPayment
		booking.PaymentDeadline = &deadline
	}

	return booking, lines, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, canView(ctx, res.GuestID, res.TenantID)
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !booking.Exists() {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = canView(ctx, booking.GuestID, booking.TenantID); err != nil {
		return res, err
	}

	lines, err := s.lineRepo.GetByBooking(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking lines")

		return res, fmt.Errorf("failed to get booking lines: %w", err)
	}

	res.FromModel(booking, lines)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UploadProof(ctx context.Context, id string, req dto.UploadProofRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.UploadProof")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if !booking.Exists() {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if err = ownedByGuest(ctx, booking); err != nil {
		return res, err
	}

	if _, _, err = model.Resolve(booking.Status, model.EventUploadProof); err != nil {
		return res, err //nolint:wrapcheck
	}

	// Upload outside the room locks. A transition that loses a race leaves an orphan to clean up.
	bucket := s.cfg.External.S3.BucketName

	url, err := s.s3.UploadFileBytes(ctx, bucket, proofDirectory, id+"-"+req.FileName, constant.Empty, req.Data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload payment proof")

		return res, fmt.Errorf("failed to upload payment proof: %w", err)
	}

	res, err = s.transition(ctx, transitionRequest{
		id:    id,
		event: model.EventUploadProof,
		guard: ownedByGuest,
		proof: url,
	})
	if err != nil {
		go func() {
			c := context.WithoutCancel(ctx)

			if delErr := s.s3.DeleteFile(c, bucket, constant.Empty, s.s3.GetObjectNameFromURL(bucket, url)); delErr != nil {
				log.Error().Err(delErr).Str("url", url).Msg("failed to delete orphaned payment proof")
			}
		}()

		return res, err
	}

	return res, nil
}

func (s *serviceImpl) Accept(ctx context.Context, id string) (dto.BookingResponse, error) {
	return s.transition(ctx, transitionRequest{id: id, event: model.EventAccept, guard: ownedByTenant})
}

func (s *serviceImpl) Reject(ctx context.Context, id string, req dto.RejectRequest) (dto.BookingResponse, error) {
	return s.transition(ctx, transitionRequest{id: id, event: model.EventReject, guard: ownedByTenant, reason: req.Reason})
}

func (s *serviceImpl) CancelByGuest(ctx context.Context, id string) (dto.BookingResponse, error) {
	return s.transition(ctx, transitionRequest{
		id:    id,
		event: model.EventGuestCancel,
		guard: func(ctx context.Context, booking model.Booking) error {
			if err := ownedByGuest(ctx, booking); err != nil {
				return err
			}

			if booking.Status.HoldsInventory() && booking.PaymentProof != constant.Empty {
				return failure.InvalidStateTransition(string(booking.Status), string(model.EventGuestCancel)) //nolint:wrapcheck
			}

			return nil
		},
	})
}

func (s *serviceImpl) CancelByTenant(ctx context.Context, id string) (dto.BookingResponse, error) {
	return s.transition(ctx, transitionRequest{id: id, event: model.EventTenantCancel, guard: ownedByTenant})
}

func (s *serviceImpl) ApplyGatewayStatus(ctx context.Context, id string, event model.Event) (dto.BookingResponse, error) {
	if event != model.EventGatewaySettle && event != model.EventGatewayCancel {
		return dto.BookingResponse{}, failure.BadRequestFromString(fmt.Sprintf("unsupported gateway event %q", event)) //nolint:wrapcheck
	}

	return s.transition(ctx, transitionRequest{id: id, event: event})
}

func (s *serviceImpl) ExpireOverdue(ctx context.Context) (expired int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.ExpireOverdue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	batch := max(1, s.cfg.Booking.ExpirySweepBatch)
	// A booking that keeps failing is listed again on every pass.
	failed := make(map[string]struct{})

	for {
		ids, err := s.repo.OverdueIDs(ctx, timezone.Now(), batch)
		if err != nil {
			log.Error().Err(err).Msg("failed to list overdue bookings")

			return expired, fmt.Errorf("failed to list overdue bookings: %w", err)
		}

		progress := 0

		for _, id := range ids {
			_, err := s.transition(ctx, transitionRequest{id: id, event: model.EventExpire, guard: pastDeadline})

			switch {
			case err == nil:
				progress++
			case failure.Is(err, failure.KindInvalidStateTransition), failure.Is(err, failure.KindNotFound):
				// A guest action won the race for this booking.
				log.Info().Str("booking", id).Msg("booking no longer overdue")
			default:
				failed[id] = struct{}{}

				log.Error().Err(err).Str("booking", id).Msg("failed to expire booking")
			}
		}

		expired += progress

		if len(ids) < batch || progress == 0 {
			break
		}
	}

	log.Info().Int("expired", expired).Int("failed", len(failed)).Msg("expiry sweep finished")

	if len(failed) > 0 {
		return expired, fmt.Errorf("failed to expire %d bookings", len(failed))
	}

	return expired, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetBooking, id))
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

// actor falls back to the system identity for calls made outside an authenticated request.
func actor(ctx context.Context) (userID, role string) {
	userID, role = shared.ActorFromContext(ctx)
	if userID == constant.Empty {
		return constant.RoleSystem, constant.RoleSystem
	}

	return userID, role
}

func canView(ctx context.Context, guestID, tenantID string) error {
	user, role := actor(ctx)

	switch {
	case role == constant.RoleAdmin || role == constant.RoleSystem:
		return nil
	case role == constant.RoleTenant && tenantID == user:
		return nil
	case role == constant.RoleGuest && guestID == user:
		return nil
	default:
		return failure.Unauthorized("booking belongs to someone else") //nolint:wrapcheck
	}
}

func ownedByGuest(ctx context.Context, booking model.Booking) error {
	user, role := actor(ctx)
	if role == constant.RoleAdmin || booking.GuestID == user {
		return nil
	}

	return failure.Unauthorized("booking belongs to another guest") //nolint:wrapcheck
}

func ownedByTenant(ctx context.Context, booking model.Booking) error {
	user, role := actor(ctx)
	if role == constant.RoleAdmin || booking.TenantID == user {
		return nil
	}

	return failure.Unauthorized("booking belongs to another tenant") //nolint:wrapcheck
}

func pastDeadline(_ context.Context, booking model.Booking) error {
	if booking.PaymentDeadline != nil && booking.PaymentDeadline.Before(timezone.Now()) {
		return nil
	}

	return failure.InvalidStateTransition(string(booking.Status), string(model.EventExpire)) //nolint:wrapcheck
}
