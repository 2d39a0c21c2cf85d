package repository_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	otelMocks "stay/infras/otel/mocks"
	"stay/infras/postgres"
	"stay/shared/dto"
	"stay/shared/failure"
	"stay/shared/repository"
)

type hold struct {
	ID     string `db:"id"`
	RoomID string `db:"room_id"`
	Units  int    `db:"units"`
}

func newRepo(t *testing.T) (repository.Repository[hold], sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")

	return repository.NewRepository[hold]("hold", "holds", "id", &postgres.Connection{Read: sqlxDB, Write: sqlxDB}, otelMocks.NewOtel()), mock
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "holds"},
	}}
}

func TestRepository_InsertColumns(t *testing.T) {
	repo, _ := newRepo(t)

	assert.Equal(t, []string{"id", "room_id", "units"}, repo.InsertColumns)
}

func TestRepository_Insert(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind failure.Kind
	}{
		{name: "ok"},
		{name: "duplicate", err: &pq.Error{Code: "23505"}, wantKind: failure.KindConflict},
		{name: "missing room", err: &pq.Error{Code: "23503"}, wantKind: failure.KindNotFound},
		{name: "out of range", err: &pq.Error{Code: "23514"}, wantKind: failure.KindBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepo(t)

			exec := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO holds (id, room_id, units) VALUES ($1, $2, $3)")).
				WithArgs("h-1", "r-1", 2)
			if tt.err != nil {
				exec.WillReturnError(tt.err)
			} else {
				exec.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Insert(context.Background(), hold{ID: "h-1", RoomID: "r-1", Units: 2})
			if tt.wantKind == "" {
				assert.NoError(t, err)
			} else {
				assert.True(t, failure.Is(err, tt.wantKind))
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_Update(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE holds SET room_id = $1, units = $2")).
		WithArgs("r-2", 3, "h-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), map[string]any{"units": 3, "room_id": "r-2"}, byID("h-1"))
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_RequiresFilter(t *testing.T) {
	repo, mock := newRepo(t)
	ctx := context.Background()

	assert.Error(t, repo.Update(ctx, map[string]any{"units": 0}, dto.FilterGroup{}))
	assert.Error(t, repo.Delete(ctx, dto.FilterGroup{}))

	_, err := repo.Exist(ctx, dto.FilterGroup{})
	assert.Error(t, err)

	assert.NoError(t, repo.Update(ctx, map[string]any{}, byID("h-1")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMissing(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("SELECT holds.id, holds.room_id, holds.units FROM holds")).
		ExpectQuery().
		WithArgs("h-404").
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "units"}))

	got, err := repo.Get(context.Background(), byID("h-404"))
	require.NoError(t, err)
	assert.Equal(t, hold{}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetAllPaged(t *testing.T) {
	repo, mock := newRepo(t)

	mock.ExpectPrepare(regexp.QuoteMeta("ORDER BY holds.units DESC LIMIT $2 OFFSET $3")).
		ExpectQuery().
		WithArgs("h-1", 10, 10).
		WillReturnRows(sqlmock.NewRows([]string{"id", "room_id", "units"}).AddRow("h-1", "r-1", 1))

	got, err := repo.GetAll(context.Background(), dto.QueryParams{Page: 2, Limit: 10, SortBy: "holds.units", SortDir: dto.SortDirDesc}, byID("h-1"))
	require.NoError(t, err)
	assert.Equal(t, []hold{{ID: "h-1", RoomID: "r-1", Units: 1}}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
