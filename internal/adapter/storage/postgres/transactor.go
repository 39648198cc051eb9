package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"treasury-ledger/internal/core/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// lockNotAvailable is the SQLSTATE raised when lock_timeout expires.
const lockNotAvailable = "55P03"

// Transactor implements ports.DBTransactor on a Pool. Every transaction it
// starts carries a local lock_timeout so contended FOR UPDATE reads fail
// with ports.ErrLockTimeout instead of queueing indefinitely.
type Transactor struct {
	pool        Pool
	lockTimeout time.Duration
}

// NewTransactor creates a Transactor. A zero lockTimeout keeps the server default.
func NewTransactor(pool Pool, lockTimeout time.Duration) *Transactor {
	return &Transactor{pool: pool, lockTimeout: lockTimeout}
}

// Begin starts a ledger transaction.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if t.lockTimeout <= 0 {
		return tx, nil
	}

	ms := fmt.Sprintf("%dms", t.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`, ms); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("set lock_timeout: %w", err)
	}
	return tx, nil
}

// lockErr tags lock_timeout failures with ports.ErrLockTimeout.
func lockErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == lockNotAvailable {
		return fmt.Errorf("%w: %s", ports.ErrLockTimeout, pgErr.Message)
	}
	return err
}
