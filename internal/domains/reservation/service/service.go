package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Reservation=MockReservationService

import (
	"context"
	"fmt"
	"stay/config"
	"stay/infras/otel"
	"stay/infras/postgres"
	availModel "stay/internal/domains/availability/model"
	availRepo "stay/internal/domains/availability/repository"
	"stay/internal/domains/reservation/model"
	"stay/internal/domains/reservation/model/dto"
	"stay/internal/domains/reservation/repository"
	roomModel "stay/internal/domains/room/model"
	roomRepo "stay/internal/domains/room/repository"
	"stay/shared"
	"stay/shared/cache"
	"stay/shared/calendar"
	"stay/shared/constant"
	"stay/shared/failure"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// CommitFunc persists what was reserved. It runs in the same transaction and lock window as the check.
type CommitFunc func(ctx context.Context, tx *sqlx.Tx, res model.Reservation) error

type Reservation interface {
	// Reserve checks every day of every line under the room locks and runs commit when all fit.
	// Any shortage aborts with InsufficientInventory and nothing is written.
	Reserve(ctx context.Context, req model.Request, commit CommitFunc) (model.Reservation, error)
	// CheckTx reports the shortages of req as seen by tx. Callers must hold the room locks.
	CheckTx(ctx context.Context, tx *sqlx.Tx, req model.Request) (model.Reservation, []model.Shortage, error)
	// Remaining reports per-day sellable units. It is served from a cache and never used to reserve.
	Remaining(ctx context.Context, roomID string, start, end time.Time) (dto.RemainingResponse, error)
	// Invalidate drops cached remaining counts. Call it after a capacity-affecting commit.
	Invalidate(ctx context.Context, roomIDs ...string)
}

type serviceImpl struct {
	repo       repository.Usage
	roomRepo   roomRepo.Room
	availRepo  availRepo.Availability
	transactor postgres.Transactor
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Usage,
	roomRepo roomRepo.Room,
	availRepo availRepo.Availability,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Reservation {
	return &serviceImpl{
		repo:       repo,
		roomRepo:   roomRepo,
		availRepo:  availRepo,
		transactor: transactor,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Reserve(ctx context.Context, req model.Request, commit CommitFunc) (res model.Reservation, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Reserve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validate(req); err != nil {
		return res, err
	}

	roomIDs := roomIDs(req.Lines)

	err = s.transactor.WithinRooms(ctx, roomIDs, func(ctx context.Context, tx *sqlx.Tx) error {
		reservation, shortages, err := s.CheckTx(ctx, tx, req)
		if err != nil {
			return err
		}

		if len(shortages) > 0 {
			log.Info().Strs("rooms", roomIDs).Int("shortages", len(shortages)).Msg("reservation rejected")

			return failure.InsufficientInventory("not enough units for the requested dates", shortages) //nolint:wrapcheck
		}

		if err := commit(ctx, tx, reservation); err != nil {
			return err
		}

		res = reservation

		return nil
	})
	if err != nil {
		if failure.Is(err, failure.KindInsufficientInventory) || failure.Is(err, failure.KindNotFound) {
			return res, err
		}

		log.Error().Err(err).Msg("failed to reserve inventory")

		return res, fmt.Errorf("failed to reserve inventory: %w", err)
	}

	s.Invalidate(ctx, roomIDs...)

	return res, nil
}

func (s *serviceImpl) CheckTx(ctx context.Context, tx *sqlx.Tx, req model.Request) (res model.Reservation, shortages []model.Shortage, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.CheckTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = model.Reservation{Lines: req.Lines, Rooms: make(map[string]roomModel.Room)}

	for _, roomID := range roomIDs(req.Lines) {
		lines := linesOf(req.Lines, roomID)

		room, err := s.roomRepo.GetTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get room")

			return res, nil, fmt.Errorf("failed to get room: %w", err)
		}

		if !room.Exists() {
			return res, nil, failure.NotFound(fmt.Sprintf("room %s not found", roomID)) // nolint:wrapcheck
		}

		res.Rooms[roomID] = room
		start, end := model.Window(lines)

		days, err := s.availRepo.GetRangeTx(ctx, tx, roomID, start, end)
		if err != nil {
			log.Error().Err(err).Msg("failed to get availability days")

			return res, nil, fmt.Errorf("failed to get availability days: %w", err)
		}

		usages, err := s.repo.ActiveOverlappingTx(ctx, tx, roomID, start, end)
		if err != nil {
			log.Error().Err(err).Msg("failed to get room usage")

			return res, nil, fmt.Errorf("failed to get room usage: %w", err)
		}

		remaining := make(map[time.Time]int)
		for _, day := range model.Remaining(room.TotalUnits, availModel.StatusRange(days, start, end), model.DailyUsage(usages, start, end)) {
			remaining[day.Date] = day.Remaining
		}

		// Lines of one request compete with each other as well as with stored bookings.
		for _, line := range lines {
			for _, day := range calendar.Days(line.CheckIn, line.CheckOut) {
				if remaining[day] < line.Quantity {
					shortages = append(shortages, model.Shortage{
						RoomID:    roomID,
						Date:      calendar.Format(day),
						Available: remaining[day],
						Requested: line.Quantity,
					})

					continue
				}

				remaining[day] -= line.Quantity
			}
		}
	}

	return res, shortages, nil
}

func (s *serviceImpl) Remaining(ctx context.Context, roomID string, start, end time.Time) (res dto.RemainingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".reservation.Remaining")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = calendar.ValidateRange(start, end); err != nil {
		return res, err //nolint:wrapcheck
	}

	cacheKey := availModel.RemainingCacheKey(roomID, calendar.Format(start), calendar.Format(end))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for remaining units")

		return res, nil
	}

	generationKey := availModel.RemainingGenerationKey(roomID)
	generation := shared.Generation(ctx, s.cache, generationKey)

	room, err := s.roomRepo.Get(ctx, shared.FilterByID(roomID, roomModel.FieldID, roomModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if !room.Exists() {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	days, err := s.availRepo.GetRange(ctx, roomID, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability days")

		return res, fmt.Errorf("failed to get availability days: %w", err)
	}

	usages, err := s.repo.ActiveOverlapping(ctx, roomID, start, end)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room usage")

		return res, fmt.Errorf("failed to get room usage: %w", err)
	}

	statuses := availModel.StatusRange(days, start, end)
	res.FromModels(roomID, room.TotalUnits, model.Remaining(room.TotalUnits, statuses, model.DailyUsage(usages, start, end)))

	go shared.SaveAtGeneration(context.WithoutCancel(ctx), s.cache, cacheKey, res, s.cfg.Cache.TTL, generationKey, generation)

	return res, nil
}

func (s *serviceImpl) Invalidate(ctx context.Context, roomIDs ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range roomIDs {
			shared.InvalidateGeneration(c, s.cache, availModel.RemainingGenerationKey(id), availModel.RemainingCacheKey(id))
		}
	}()
}

func validate(req model.Request) error {
	if len(req.Lines) == 0 {
		return failure.BadRequestFromString("at least one line is required") // nolint:wrapcheck
	}

	for _, line := range req.Lines {
		if line.RoomID == constant.Empty {
			return failure.BadRequestFromString("room_id is required") // nolint:wrapcheck
		}

		if line.Quantity < 1 {
			return failure.BadRequestFromString("quantity must be at least 1") // nolint:wrapcheck
		}

		if err := calendar.ValidateRange(line.CheckIn, line.CheckOut); err != nil {
			return err //nolint:wrapcheck
		}
	}

	return nil
}

func roomIDs(lines []model.Line) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))

	for _, line := range lines {
		if _, ok := seen[line.RoomID]; !ok {
			seen[line.RoomID] = struct{}{}
			ids = append(ids, line.RoomID)
		}
	}

	return ids
}

func linesOf(lines []model.Line, roomID string) []model.Line {
	var out []model.Line

	for _, line := range lines {
		if line.RoomID == roomID {
			out = append(out, line)
		}
	}

	return out
}
