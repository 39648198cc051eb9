package memory

import (
	"context"
	"fmt"

	"treasury-ledger/internal/core/ledgermath"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

// NativeLedger implements ports.NativeLedger.
type NativeLedger struct{ store *Store }

// NewNativeLedger creates a NativeLedger backed by store.
func NewNativeLedger(store *Store) *NativeLedger { return &NativeLedger{store: store} }

func (l *NativeLedger) Balance(ctx context.Context, addr types.Address) (uint64, error) {
	var bal uint64
	l.store.read(func(st *state) { bal = st.native[addr] })
	return bal, nil
}

func (l *NativeLedger) BalanceForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (uint64, error) {
	st, err := l.store.working(tx)
	if err != nil {
		return 0, err
	}
	return st.native[addr], nil
}

func (l *NativeLedger) Transfer(ctx context.Context, tx pgx.Tx, from, to types.Address, amount uint64) error {
	st, err := l.store.working(tx)
	if err != nil {
		return err
	}
	if st.native[from] < amount {
		return ports.ErrInsufficientFunds
	}
	if from == to {
		return nil
	}
	credited, err := ledgermath.Add(st.native[to], amount)
	if err != nil {
		return fmt.Errorf("credit native balance: %w", err)
	}
	st.native[from] -= amount
	st.native[to] = credited
	return nil
}

func (l *NativeLedger) Credit(ctx context.Context, tx pgx.Tx, addr types.Address, amount uint64) error {
	st, err := l.store.working(tx)
	if err != nil {
		return err
	}
	credited, err := ledgermath.Add(st.native[addr], amount)
	if err != nil {
		return fmt.Errorf("credit native balance: %w", err)
	}
	st.native[addr] = credited
	return nil
}

// TokenLedger implements ports.TokenLedger.
type TokenLedger struct{ store *Store }

// NewTokenLedger creates a TokenLedger backed by store.
func NewTokenLedger(store *Store) *TokenLedger { return &TokenLedger{store: store} }

func (l *TokenLedger) MintTo(ctx context.Context, tx pgx.Tx, mint, owner types.Address, amount uint64) error {
	st, err := l.store.working(tx)
	if err != nil {
		return err
	}
	key := tokenKey{mint: mint, owner: owner}
	credited, err := ledgermath.Add(st.tokens[key], amount)
	if err != nil {
		return fmt.Errorf("mint tokens: %w", err)
	}
	st.tokens[key] = credited
	return nil
}

func (l *TokenLedger) Balance(ctx context.Context, mint, owner types.Address) (uint64, error) {
	var bal uint64
	l.store.read(func(st *state) { bal = st.tokens[tokenKey{mint: mint, owner: owner}] })
	return bal, nil
}
