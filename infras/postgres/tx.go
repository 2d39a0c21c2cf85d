package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./tx.go -destination=./mocks/tx_mock.go -package=mocks

import (
	"context"
	"fmt"
	"slices"
	"stay/infras/otel"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName       = "postgres"
	otelAttrRooms       = "rooms"
	roomLockKeyPrefix   = "room:"
	advisoryXactLockSQL = "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))"
)

// TxFunc runs inside a transaction owned by a Transactor.
type TxFunc func(ctx context.Context, tx *sqlx.Tx) error

type Transactor interface {
	// WithinTx runs fn in a write transaction, committing when fn returns nil.
	WithinTx(ctx context.Context, fn TxFunc) error
	// WithinRooms is WithinTx holding a transaction-scoped advisory lock for every room.
	// Locks are taken in sorted order so callers locking overlapping sets cannot deadlock.
	WithinRooms(ctx context.Context, roomIDs []string, fn TxFunc) error
}

type transactorImpl struct {
	db   *Connection
	otel otel.Otel
}

func NewTransactor(db *Connection, otel otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otel,
	}
}

func (t *transactorImpl) WithinTx(ctx context.Context, fn TxFunc) (err error) {
	ctx, scope := t.otel.NewScope(ctx, otelScopeName, otelScopeName+".WithinTx")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return t.run(ctx, nil, fn)
}

func (t *transactorImpl) WithinRooms(ctx context.Context, roomIDs []string, fn TxFunc) (err error) {
	ctx, scope := t.otel.NewScope(ctx, otelScopeName, otelScopeName+".WithinRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	rooms := LockOrder(roomIDs)
	scope.SetAttribute(otelAttrRooms, rooms)

	return t.run(ctx, rooms, fn)
}

func (t *transactorImpl) run(ctx context.Context, rooms []string, fn TxFunc) (err error) {
	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()

			panic(p)
		}

		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for _, room := range rooms {
		if _, err = tx.ExecContext(ctx, advisoryXactLockSQL, roomLockKeyPrefix+room); err != nil {
			log.Error().Err(err).Str("room", room).Msg("failed to acquire room lock")

			return fmt.Errorf("failed to acquire room lock: %w", err)
		}
	}

	if err = fn(ctx, tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LockOrder returns the distinct non-empty room ids in ascending order.
func LockOrder(roomIDs []string) []string {
	rooms := make([]string, 0, len(roomIDs))

	for _, id := range roomIDs {
		if id != "" {
			rooms = append(rooms, id)
		}
	}

	slices.Sort(rooms)

	return slices.Compact(rooms)
}
