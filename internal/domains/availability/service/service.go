package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Availability=MockAvailabilityService

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/availability/model"
	"stay/internal/domains/availability/model/dto"
	"stay/internal/domains/availability/repository"
	roomModel "stay/internal/domains/room/model"
	roomRepo "stay/internal/domains/room/repository"
	"stay/shared"
	"stay/shared/cache"
	"stay/shared/calendar"
	"stay/shared/constant"
	"stay/shared/failure"
	gModel "stay/shared/model"
	"stay/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Availability interface {
	// GetRange reports the tenant-controlled status of every day in [start, end).
	GetRange(ctx context.Context, roomID string, start, end time.Time) (dto.RangeResponse, error)
	// SetRange blocks or unblocks days. Existing bookings are not touched.
	SetRange(ctx context.Context, roomID string, req dto.SetRangeRequest) error
	// GenerateHorizonTx opens the days in [from, from+days) that have no row yet.
	GenerateHorizonTx(ctx context.Context, tx *sqlx.Tx, roomID string, from time.Time, days int) error
}

type serviceImpl struct {
	repo       repository.Availability
	roomRepo   roomRepo.Room
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(repo repository.Availability, roomRepo roomRepo.Room, transactor postgres.Transactor, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) GetRange(ctx context.Context, roomID string, start, end time.Time) (res dto.RangeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.GetRange")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = calendar.ValidateRange(start, end); err != nil {
		return res, err //nolint:wrapcheck
	}

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.Exists() {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	rows, err := s.repo.GetRange(ctx, roomID, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability days")

		return res, fmt.Errorf("failed to get availability days: %w", err)
	}

	res.FromModels(roomID, model.StatusRange(rows, start, end))

	return res, nil
}

func (s *serviceImpl) SetRange(ctx context.Context, roomID string, req dto.SetRangeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.SetRange")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	start, end, err := calendar.ParseRange(req.StartDate, req.EndDate)
	if err != nil {
		return err //nolint:wrapcheck
	}

	user, role := shared.ActorFromContext(ctx)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return fmt.Errorf("failed to get room: %w", err)
	}

	if !room.Exists() {
		return failure.NotFound("room not found") // nolint:wrapcheck
	}

	if role != constant.RoleAdmin && room.TenantID != user {
		log.Warn().Str("room", roomID).Str("user", user).Msg("tenant does not own room")

		return failure.Unauthorized("room belongs to another tenant") // nolint:wrapcheck
	}

	rows := req.ToModels(roomID, user, start, end, timezone.Now())

	err = s.transactor.WithinRooms(ctx, []string{roomID}, func(ctx context.Context, tx *sqlx.Tx) error {
		return s.repo.UpsertTx(ctx, tx, rows)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to set availability range")

		return fmt.Errorf("failed to set availability range: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateGeneration(c, s.cache, model.RemainingGenerationKey(roomID), model.RemainingCacheKey(roomID))
	}()

	return nil
}

func (s *serviceImpl) GenerateHorizonTx(ctx context.Context, tx *sqlx.Tx, roomID string, from time.Time, days int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".availability.GenerateHorizonTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if days <= 0 {
		return nil
	}

	user, _ := shared.ActorFromContext(ctx)
	now := timezone.Now()
	start := calendar.Day(from)
	rows := make([]model.AvailabilityDay, 0, days)

	for _, day := range calendar.Days(start, start.AddDate(0, 0, days)) {
		rows = append(rows, model.AvailabilityDay{
			RoomID:   roomID,
			Date:     day,
			Metadata: gModel.NewMetadata(user, now),
		})
	}

	if err = s.repo.InsertMissingTx(ctx, tx, rows); err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to generate availability horizon")

		return fmt.Errorf("failed to generate availability horizon: %w", err)
	}

	return nil
}
