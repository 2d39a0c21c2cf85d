package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Room=MockRoomService

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/infras/postgres"
	availModel "stay/internal/domains/availability/model"
	availService "stay/internal/domains/availability/service"
	pricingDto "stay/internal/domains/pricing/model/dto"
	pricingService "stay/internal/domains/pricing/service"
	"stay/internal/domains/room/model"
	"stay/internal/domains/room/model/dto"
	"stay/internal/domains/room/repository"
	"stay/shared"
	"stay/shared/cache"
	"stay/shared/constant"
	"stay/shared/failure"
	"stay/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetRoom = "room:get"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	UpdatePeakRates(ctx context.Context, id string, req pricingDto.ReplacePeakRatesRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Room
	pricing      pricingService.Pricing
	availability availService.Availability
	transactor   postgres.Transactor
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Room,
	pricing pricingService.Pricing,
	availability availService.Availability,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Room {
	return &serviceImpl{
		repo:         repo,
		pricing:      pricing,
		availability: availability,
		transactor:   transactor,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create stores the room, its peak rates and an open availability horizon in one transaction.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.BasePrice.IsNegative() {
		return res, failure.BadRequestFromString("base_price must not be negative") // nolint:wrapcheck
	}

	user, _ := shared.ActorFromContext(ctx)
	now := timezone.Now()
	room := req.ToModel(user, now)

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, room); err != nil {
			return fmt.Errorf("failed to insert room: %w", err)
		}

		if err := s.pricing.ReplacePeakRatesTx(ctx, tx, room.ID, req.PeakRates); err != nil {
			return err //nolint:wrapcheck
		}

		return s.availability.GenerateHorizonTx(ctx, tx, room.ID, now, s.cfg.Booking.AvailabilityHorizonDays) //nolint:wrapcheck
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	rates, err := s.pricing.GetPeakRates(ctx, room.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get peak rates")

		return res, fmt.Errorf("failed to get peak rates: %w", err)
	}

	res.FromModel(room, rates)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRoom, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.getRoom(ctx, id)
	if err != nil {
		return res, err
	}

	rates, err := s.pricing.GetPeakRates(ctx, id)
	if err != nil {
		log.Error().Err(err).Msg("failed to get peak rates")

		return res, fmt.Errorf("failed to get peak rates: %w", err)
	}

	res.FromModel(room, rates)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

// UpdatePeakRates replaces every rule of the room. Booked totals are never repriced.
func (s *serviceImpl) UpdatePeakRates(ctx context.Context, id string, req pricingDto.ReplacePeakRatesRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.UpdatePeakRates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.getRoom(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, room); err != nil {
		return err
	}

	err = s.transactor.WithinTx(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.pricing.ReplacePeakRatesTx(ctx, tx, id, req.PeakRates)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update peak rates")

		return fmt.Errorf("failed to update peak rates: %w", err)
	}

	s.pricing.InvalidateQuotes(ctx, id)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetRoom, id))
	}()

	return nil
}

// Delete hides the room from new reservations. Existing bookings keep their lines.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".room.Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.getRoom(ctx, id)
	if err != nil {
		return err
	}

	if err = s.authorize(ctx, room); err != nil {
		return err
	}

	user, _ := shared.ActorFromContext(ctx)
	now := timezone.Now()

	err = s.repo.Update(ctx, map[string]any{
		model.FieldDeletedAt:     now,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: user,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	s.pricing.InvalidateQuotes(ctx, id)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetRoom, id))
		shared.InvalidateGeneration(c, s.cache, availModel.RemainingGenerationKey(id), availModel.RemainingCacheKey(id))
	}()

	return nil
}

func (s *serviceImpl) getRoom(ctx context.Context, id string) (model.Room, error) {
	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return room, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.Exists() {
		return room, failure.NotFound("room not found") // nolint:wrapcheck
	}

	return room, nil
}

func (s *serviceImpl) authorize(ctx context.Context, room model.Room) error {
	user, role := shared.ActorFromContext(ctx)
	if role == constant.RoleAdmin || room.TenantID == user {
		return nil
	}

	log.Warn().Str("room", room.ID).Str("user", user).Msg("tenant does not own room")

	return failure.Unauthorized("room belongs to another tenant") // nolint:wrapcheck
}
