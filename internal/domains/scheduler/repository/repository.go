package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"fmt"
	"stay/infras/otel"
	"stay/infras/postgres"
	"stay/internal/domains/scheduler/model"
	"stay/shared"
	"stay/shared/constant"
	gDto "stay/shared/dto"
	"stay/shared/logger"
	gRepo "stay/shared/repository"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

// claimQuery takes due pending jobs and running jobs whose lease expired. SKIP LOCKED lets
// several workers claim disjoint batches concurrently.
const claimQuery = `UPDATE %[1]s SET %[2]s = $1, %[3]s = %[3]s + 1, %[4]s = $2, %[5]s = $3
WHERE %[6]s IN (
	SELECT %[6]s FROM %[1]s
	WHERE (%[2]s = $4 AND %[7]s <= $3) OR (%[2]s = $1 AND %[4]s < $3)
	ORDER BY %[7]s ASC
	LIMIT $5
	FOR UPDATE SKIP LOCKED
)
RETURNING %[8]s`

type Job interface {
	// Insert stores job unless another job already holds its unique key.
	Insert(ctx context.Context, job model.Job) (bool, error)
	InsertTx(ctx context.Context, tx *sqlx.Tx, job model.Job) (bool, error)
	// ClaimDue leases up to limit due jobs until leaseUntil and marks them running.
	ClaimDue(ctx context.Context, now, leaseUntil time.Time, limit int) ([]model.Job, error)
	MarkDone(ctx context.Context, id string, now time.Time) error
	MarkRetry(ctx context.Context, id string, runAt time.Time, lastError string, now time.Time) error
	MarkFailed(ctx context.Context, id string, lastError string, now time.Time) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Job, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Job]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Job {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Job](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (r *repositoryImpl) insertQuery() string {
	placeholders := make([]string, 0, len(r.InsertColumns))
	for _, col := range r.InsertColumns {
		placeholders = append(placeholders, ":"+col)
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO NOTHING",
		model.TableName,
		strings.Join(r.InsertColumns, ", "),
		strings.Join(placeholders, ", "),
		model.FieldUniqueKey,
	)
}

func (r *repositoryImpl) Insert(ctx context.Context, job model.Job) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".scheduled_job.Insert")
	defer scope.End()

	query := r.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := r.db.Write.NamedExecContext(ctx, query, job)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to insert job: %w", err)
	}

	return inserted(result)
}

func (r *repositoryImpl) InsertTx(ctx context.Context, tx *sqlx.Tx, job model.Job) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".scheduled_job.InsertTx")
	defer scope.End()

	query := r.insertQuery()
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, job)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to insert job: %w", err)
	}

	return inserted(result)
}

func inserted(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read inserted rows: %w", err)
	}

	return rows > 0, nil
}

func (r *repositoryImpl) ClaimDue(ctx context.Context, now, leaseUntil time.Time, limit int) ([]model.Job, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".scheduled_job.ClaimDue")
	defer scope.End()

	query := fmt.Sprintf(claimQuery,
		model.TableName, model.FieldStatus, model.FieldAttempts, model.FieldLockedUntil, constant.FieldModifiedAt,
		model.FieldID, model.FieldRunAt, strings.Join(r.InsertColumns, ", "),
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var jobs []model.Job

	err := r.db.Write.SelectContext(ctx, &jobs, query, model.StatusRunning, leaseUntil, now, model.StatusPending, limit)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to claim due jobs: %w", err)
	}

	return jobs, nil
}

func (r *repositoryImpl) MarkDone(ctx context.Context, id string, now time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".scheduled_job.MarkDone")
	defer scope.End()

	return r.Update(ctx, map[string]any{ //nolint:wrapcheck
		model.FieldStatus:        model.StatusDone,
		model.FieldLockedUntil:   nil,
		constant.FieldModifiedAt: now,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) MarkRetry(ctx context.Context, id string, runAt time.Time, lastError string, now time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".scheduled_job.MarkRetry")
	defer scope.End()

	return r.Update(ctx, map[string]any{ //nolint:wrapcheck
		model.FieldStatus:        model.StatusPending,
		model.FieldRunAt:         runAt,
		model.FieldLastError:     lastError,
		model.FieldLockedUntil:   nil,
		constant.FieldModifiedAt: now,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) MarkFailed(ctx context.Context, id string, lastError string, now time.Time) error {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".scheduled_job.MarkFailed")
	defer scope.End()

	return r.Update(ctx, map[string]any{ //nolint:wrapcheck
		model.FieldStatus:        model.StatusFailed,
		model.FieldLastError:     lastError,
		model.FieldLockedUntil:   nil,
		constant.FieldModifiedAt: now,
	}, shared.FilterByID(id, model.FieldID, model.TableName))
}
