package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/pricing/model"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	gRepo "stay/shared/repository"

	"github.com/jmoiron/sqlx"
)

type PeakRate interface {
	GetByRoom(ctx context.Context, roomID string) ([]model.PeakRate, error)
	GetByRoomTx(ctx context.Context, tx *sqlx.Tx, roomID string) ([]model.PeakRate, error)
	// ReplaceTx deletes every rule of the room and inserts rates in their place.
	ReplaceTx(ctx context.Context, tx *sqlx.Tx, roomID string, rates []model.PeakRate) error
}

type repositoryImpl struct {
	gRepo.Repository[model.PeakRate]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) PeakRate {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.PeakRate](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var byID = gDto.QueryParams{SortBy: model.TableName + "." + model.FieldID, SortDir: gDto.SortDirAsc}

func (r *repositoryImpl) GetByRoom(ctx context.Context, roomID string) ([]model.PeakRate, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".peak_rate.GetByRoom")
	defer scope.End()

	return r.GetAll(ctx, byID, shared.FilterByID(roomID, model.FieldRoomID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) GetByRoomTx(ctx context.Context, tx *sqlx.Tx, roomID string) ([]model.PeakRate, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".peak_rate.GetByRoomTx")
	defer scope.End()

	return r.GetAllTx(ctx, tx, byID, shared.FilterByID(roomID, model.FieldRoomID, model.TableName)) //nolint:wrapcheck
}

func (r *repositoryImpl) ReplaceTx(ctx context.Context, tx *sqlx.Tx, roomID string, rates []model.PeakRate) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".peak_rate.ReplaceTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.DeleteTx(ctx, tx, shared.FilterByID(roomID, model.FieldRoomID, model.TableName)); err != nil {
		return fmt.Errorf("failed to delete peak rates: %w", err)
	}

	if err = r.InsertBulkTx(ctx, tx, rates); err != nil {
		return fmt.Errorf("failed to insert peak rates: %w", err)
	}

	return nil
}
