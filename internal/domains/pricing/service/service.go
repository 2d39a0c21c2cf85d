package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Pricing=MockPricingService

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/internal/domains/pricing/model"
	"stay/internal/domains/pricing/model/dto"
	"stay/internal/domains/pricing/repository"
	roomModel "stay/internal/domains/room/model"
	roomRepo "stay/internal/domains/room/repository"
	"stay/shared"
	"stay/shared/cache"
	"stay/shared/calendar"
	"stay/shared/constant"
	"stay/shared/failure"
	"stay/shared/timezone"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type Pricing interface {
	// Quote prices a stay for display. Results are cached per room and range.
	Quote(ctx context.Context, roomID string, start, end time.Time) (dto.QuoteResponse, error)
	// QuoteTx prices a stay from the rules visible to tx, bypassing the cache.
	QuoteTx(ctx context.Context, tx *sqlx.Tx, room roomModel.Room, start, end time.Time) (model.Quote, error)
	GetPeakRates(ctx context.Context, roomID string) ([]dto.PeakRateResponse, error)
	ReplacePeakRatesTx(ctx context.Context, tx *sqlx.Tx, roomID string, reqs []dto.PeakRateRequest) error
	InvalidateQuotes(ctx context.Context, roomID string)
}

type serviceImpl struct {
	repo     repository.PeakRate
	roomRepo roomRepo.Room
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.PeakRate, roomRepo roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Pricing {
	return &serviceImpl{
		repo:     repo,
		roomRepo: roomRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, roomID string, start, end time.Time) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.Quote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = calendar.ValidateRange(start, end); err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := model.QuoteCacheKey(roomID, calendar.Format(start), calendar.Format(end))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for quote")

		return res, nil
	}

	generationKey := model.QuoteGenerationKey(roomID)
	generation := shared.Generation(ctx, s.cache, generationKey)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.Exists() {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	rates, err := s.repo.GetByRoom(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get peak rates")

		return res, fmt.Errorf("failed to get peak rates: %w", err)
	}

	res.FromModel(model.Price(room.ID, room.BasePrice, rates, start, end))

	go shared.SaveAtGeneration(context.WithoutCancel(ctx), s.cache, cacheKey, res, s.cfg.Cache.TTL, generationKey, generation)

	return res, nil
}

func (s *serviceImpl) QuoteTx(ctx context.Context, tx *sqlx.Tx, room roomModel.Room, start, end time.Time) (res model.Quote, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.QuoteTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = calendar.ValidateRange(start, end); err != nil {
		return res, err //nolint:wrapcheck
	}

	rates, err := s.repo.GetByRoomTx(ctx, tx, room.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get peak rates")

		return res, fmt.Errorf("failed to get peak rates: %w", err)
	}

	return model.Price(room.ID, room.BasePrice, rates, start, end), nil
}

func (s *serviceImpl) GetPeakRates(ctx context.Context, roomID string) (res []dto.PeakRateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.GetPeakRates")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rates, err := s.repo.GetByRoom(ctx, roomID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get peak rates")

		return nil, fmt.Errorf("failed to get peak rates: %w", err)
	}

	res = make([]dto.PeakRateResponse, len(rates))
	for i, rate := range rates {
		res[i].FromModel(rate)
	}

	return res, nil
}

func (s *serviceImpl) ReplacePeakRatesTx(ctx context.Context, tx *sqlx.Tx, roomID string, reqs []dto.PeakRateRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".pricing.ReplacePeakRatesTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := shared.ActorFromContext(ctx)

	rates, err := dto.ToModels(roomID, user, timezone.Now(), reqs)
	if err != nil {
		return err
	}

	if err = s.repo.ReplaceTx(ctx, tx, roomID, rates); err != nil {
		log.Error().Err(err).Str("room", roomID).Msg("failed to replace peak rates")

		return fmt.Errorf("failed to replace peak rates: %w", err)
	}

	return nil
}

// InvalidateQuotes drops cached quotes of the room. Call it after the rules change commits.
func (s *serviceImpl) InvalidateQuotes(ctx context.Context, roomID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateGeneration(c, s.cache, model.QuoteGenerationKey(roomID), model.QuoteCacheKey(roomID))
	}()
}
