package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/booking/model"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/logger"
	gRepo "stay/shared/repository"
	"time"

	"github.com/jmoiron/sqlx"
)

var overdueQuery = fmt.Sprintf(
	"SELECT %s FROM %s WHERE %s = $1 AND %s IS NOT NULL AND %s < $2 ORDER BY %s ASC LIMIT $3",
	model.FieldID, model.TableName, model.FieldStatus, model.FieldPaymentDeadline, model.FieldPaymentDeadline, model.FieldPaymentDeadline,
)

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetForUpdateTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	// OverdueIDs lists waiting_payment bookings whose deadline passed before now, oldest first.
	OverdueIDs(ctx context.Context, now time.Time, limit int) ([]string, error)
}

type Line interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, lines []model.Line) error
	GetByBooking(ctx context.Context, bookingID string) ([]model.Line, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) OverdueIDs(ctx context.Context, now time.Time, limit int) ([]string, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.OverdueIDs")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, overdueQuery)

	var ids []string

	if err := r.db.Read.SelectContext(ctx, &ids, overdueQuery, model.StatusWaitingPayment, now, limit); err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get overdue bookings: %w", err)
	}

	return ids, nil
}

type lineRepositoryImpl struct {
	gRepo.Repository[model.Line]
	otel otel.Otel
}

func NewLine(db *postgres.Connection, otel otel.Otel) Line {
	return &lineRepositoryImpl{
		Repository: gRepo.NewRepository[model.Line](model.LineEntityName, model.LineTableName, model.FieldLineID, db, otel),
		otel:       otel,
	}
}

func (r *lineRepositoryImpl) GetByBooking(ctx context.Context, bookingID string) ([]model.Line, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking_line.GetByBooking")
	defer scope.End()

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldLineBookingID, Value: bookingID, Operator: gDto.FilterOperatorEq, Table: model.LineTableName},
		},
	}
	params := gDto.QueryParams{SortBy: model.LineTableName + "." + model.FieldCheckIn, SortDir: gDto.SortDirAsc}

	return r.GetAll(ctx, params, filter) //nolint:wrapcheck
}
