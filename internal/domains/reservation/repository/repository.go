package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stay/infras/otel"
	"stay/infras/postgres"
	bookingModel "stay/internal/domains/booking/model"
	"stay/internal/domains/reservation/model"
	"stay/shared/constant"
	"stay/shared/logger"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Lines overlap [start, end) when they check in before end and check out after start.
var activeOverlappingQuery = fmt.Sprintf(`SELECT bl.%s, bl.%s, bl.quantity, bl.%s, bl.%s
FROM %s bl
JOIN %s b ON b.%s = bl.%s
WHERE bl.%s = $1 AND bl.%s < $3 AND bl.%s > $2 AND b.%s = ANY($4)`,
	bookingModel.FieldLineBookingID, bookingModel.FieldLineRoomID, bookingModel.FieldCheckIn, bookingModel.FieldCheckOut,
	bookingModel.LineTableName,
	bookingModel.TableName, bookingModel.FieldID, bookingModel.FieldLineBookingID,
	bookingModel.FieldLineRoomID, bookingModel.FieldCheckIn, bookingModel.FieldCheckOut, bookingModel.FieldStatus,
)

type selecter interface {
	SelectContext(ctx context.Context, dest any, query string, args ...any) error
}

type Usage interface {
	// ActiveOverlapping lists lines of bookings holding inventory that overlap [start, end).
	ActiveOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]model.Usage, error)
	// ActiveOverlappingTx is ActiveOverlapping inside tx.
	ActiveOverlappingTx(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time) ([]model.Usage, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Usage {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (r *repositoryImpl) ActiveOverlapping(ctx context.Context, roomID string, start, end time.Time) ([]model.Usage, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".usage.ActiveOverlapping")
	defer scope.End()

	return r.activeOverlapping(ctx, r.db.Read, roomID, start, end)
}

func (r *repositoryImpl) ActiveOverlappingTx(ctx context.Context, tx *sqlx.Tx, roomID string, start, end time.Time) ([]model.Usage, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".usage.ActiveOverlappingTx")
	defer scope.End()

	return r.activeOverlapping(ctx, tx, roomID, start, end)
}

func (r *repositoryImpl) activeOverlapping(ctx context.Context, sel selecter, roomID string, start, end time.Time) ([]model.Usage, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".usage.activeOverlapping")
	defer scope.End()

	scope.SetAttribute(constant.OtelQueryAttributeKey, activeOverlappingQuery)

	statuses := make([]string, len(bookingModel.ActiveStatuses))
	for i, status := range bookingModel.ActiveStatuses {
		statuses[i] = string(status)
	}

	var usages []model.Usage

	err := sel.SelectContext(ctx, &usages, activeOverlappingQuery, roomID, start, end, pq.Array(statuses))
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get active booking lines: %w", err)
	}

	return usages, nil
}
