package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/availability/model"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/logger"
	gRepo "stay/shared/repository"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

const (
	argDateStart = "date_start"
	argDateEnd   = "date_end"
)

type Availability interface {
	GetRange(ctx context.Context, roomID string, start, end time.Time) ([]model.AvailabilityDay, error)
	GetRangeTx(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time) ([]model.AvailabilityDay, error)
	// UpsertTx writes every day, overwriting the blocked flag of existing rows.
	UpsertTx(ctx context.Context, tx *sqlx.Tx, days []model.AvailabilityDay) error
	// InsertMissingTx writes only the days that have no row yet.
	InsertMissingTx(ctx context.Context, tx *sqlx.Tx, days []model.AvailabilityDay) error
}

type repositoryImpl struct {
	gRepo.Repository[model.AvailabilityDay]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Availability {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AvailabilityDay](model.EntityName, model.TableName, model.FieldRoomID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func rangeFilter(roomID string, start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldRoomID, Value: roomID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: argDateStart, Field: model.FieldDate, Value: start, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
			gDto.Filter{ArgName: argDateEnd, Field: model.FieldDate, Value: end, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		},
	}
}

var byDate = gDto.QueryParams{SortBy: model.TableName + "." + model.FieldDate, SortDir: gDto.SortDirAsc}

func (r *repositoryImpl) GetRange(ctx context.Context, roomID string, start, end time.Time) ([]model.AvailabilityDay, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.GetRange")
	defer scope.End()

	return r.GetAll(ctx, byDate, rangeFilter(roomID, start, end)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetRangeTx(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time) ([]model.AvailabilityDay, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.GetRangeTx")
	defer scope.End()

	return r.GetAllTx(ctx, tx, byDate, rangeFilter(roomID, start, end)) //nolint:wrapcheck
}

func (r *repositoryImpl) UpsertTx(ctx context.Context, tx *sqlx.Tx, days []model.AvailabilityDay) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.UpsertTx")
	defer scope.End()

	conflict := fmt.Sprintf("ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s, %s = EXCLUDED.%s",
		model.FieldRoomID, model.FieldDate,
		model.FieldBlocked, model.FieldBlocked,
		constant.FieldModifiedAt, constant.FieldModifiedAt,
		constant.FieldModifiedBy, constant.FieldModifiedBy,
	)

	return r.insertDays(ctx, tx, days, conflict)
}

func (r *repositoryImpl) InsertMissingTx(ctx context.Context, tx *sqlx.Tx, days []model.AvailabilityDay) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.InsertMissingTx")
	defer scope.End()

	conflict := fmt.Sprintf("ON CONFLICT (%s, %s) DO NOTHING", model.FieldRoomID, model.FieldDate)

	return r.insertDays(ctx, tx, days, conflict)
}

func (r *repositoryImpl) insertDays(ctx context.Context, tx *sqlx.Tx, days []model.AvailabilityDay, conflict string) error {
	if len(days) == 0 {
		return nil
	}

	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".availability.insertDays")
	defer scope.End()

	placeholders := make([]string, 0, len(r.InsertColumns))
	for _, col := range r.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) %s",
		model.TableName,
		strings.Join(r.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		conflict,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if _, err := tx.NamedExecContext(ctx, query, days); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return fmt.Errorf("failed to write availability days: %w", err)
	}

	return nil
}
