package postgres

import (
	"context"
	"errors"
	"fmt"

	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

// TokenLedger implements ports.TokenLedger on the token_balances table.
type TokenLedger struct {
	pool Pool
}

// NewTokenLedger creates a new TokenLedger.
func NewTokenLedger(pool Pool) *TokenLedger {
	return &TokenLedger{pool: pool}
}

// MintTo credits amount of mint to owner inside tx.
func (l *TokenLedger) MintTo(ctx context.Context, tx pgx.Tx, mint, owner types.Address, amount uint64) error {
	query := `INSERT INTO token_balances (mint, owner, amount) VALUES ($1, $2, $3)
		ON CONFLICT (mint, owner) DO UPDATE SET amount = token_balances.amount + EXCLUDED.amount`

	if _, err := tx.Exec(ctx, query, mint, owner, amount); err != nil {
		return fmt.Errorf("mint tokens: %w", err)
	}
	return nil
}

// Balance returns the VAL balance owner holds of mint.
func (l *TokenLedger) Balance(ctx context.Context, mint, owner types.Address) (uint64, error) {
	var amount uint64
	err := l.pool.QueryRow(ctx, `SELECT amount FROM token_balances WHERE mint = $1 AND owner = $2`, mint, owner).Scan(&amount)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get token balance: %w", err)
	}
	return amount, nil
}
