package postgres

import (
	"context"
	"errors"
	"fmt"

	"treasury-ledger/internal/core/ledgermath"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

// NativeLedger implements ports.NativeLedger on the native_balances table.
// An address without a row holds zero.
type NativeLedger struct {
	pool Pool
}

// NewNativeLedger creates a new NativeLedger.
func NewNativeLedger(pool Pool) *NativeLedger {
	return &NativeLedger{pool: pool}
}

// Balance returns the committed balance of addr.
func (l *NativeLedger) Balance(ctx context.Context, addr types.Address) (uint64, error) {
	var bal uint64
	err := l.pool.QueryRow(ctx, `SELECT lamports FROM native_balances WHERE address = $1`, addr).Scan(&bal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get native balance: %w", err)
	}
	return bal, nil
}

// BalanceForUpdate locks the balance row of addr for the rest of tx.
func (l *NativeLedger) BalanceForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (uint64, error) {
	var bal uint64
	err := tx.QueryRow(ctx, `SELECT lamports FROM native_balances WHERE address = $1 FOR UPDATE`, addr).Scan(&bal)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get native balance for update: %w", lockErr(err))
	}
	return bal, nil
}

// Transfer moves amount from one address to another inside tx.
func (l *NativeLedger) Transfer(ctx context.Context, tx pgx.Tx, from, to types.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	bal, err := l.BalanceForUpdate(ctx, tx, from)
	if err != nil {
		return err
	}
	if bal < amount {
		return ports.ErrInsufficientFunds
	}

	_, err = tx.Exec(ctx, `UPDATE native_balances SET lamports = lamports - $1 WHERE address = $2`, amount, from)
	if err != nil {
		return fmt.Errorf("debit native balance: %w", err)
	}
	return l.Credit(ctx, tx, to, amount)
}

// Credit adds amount to addr, creating its row when needed.
func (l *NativeLedger) Credit(ctx context.Context, tx pgx.Tx, addr types.Address, amount uint64) error {
	bal, err := l.BalanceForUpdate(ctx, tx, addr)
	if err != nil {
		return err
	}
	if _, err := ledgermath.Add(bal, amount); err != nil {
		return fmt.Errorf("credit native balance: %w", err)
	}

	query := `INSERT INTO native_balances (address, lamports) VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET lamports = native_balances.lamports + EXCLUDED.lamports`
	if _, err := tx.Exec(ctx, query, addr, amount); err != nil {
		return fmt.Errorf("credit native balance: %w", err)
	}
	return nil
}
