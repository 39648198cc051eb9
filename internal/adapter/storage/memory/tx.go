package memory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var errUnsupported = errors.New("memory: operation not supported")

// memTx implements pgx.Tx over a private copy of the store state.
// Only Commit and Rollback carry meaning; the SQL surface is rejected.
type memTx struct {
	store *Store
	work  *state
	done  bool
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.store.publish(t.work)
	t.store.release()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.work = nil
	t.store.release()
	return nil
}

func (t *memTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, errUnsupported }
func (t *memTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, errUnsupported
}
func (t *memTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *memTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *memTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, errUnsupported
}
func (t *memTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, errUnsupported
}
func (t *memTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, errUnsupported
}
func (t *memTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return errRow{}
}
func (t *memTx) Conn() *pgx.Conn { return nil }

type errRow struct{}

func (errRow) Scan(dest ...any) error { return errUnsupported }
