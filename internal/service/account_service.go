package service

import (
	"context"
	"fmt"

	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/types"

	"github.com/rs/zerolog"
)

// AccountServiceImpl implements ports.AccountService.
type AccountServiceImpl struct {
	native     ports.NativeLedger
	transactor ports.DBTransactor
	log        zerolog.Logger
}

// NewAccountService creates a new AccountServiceImpl.
func NewAccountService(native ports.NativeLedger, transactor ports.DBTransactor, log zerolog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{native: native, transactor: transactor, log: log}
}

// Balance returns the native balance of addr.
func (s *AccountServiceImpl) Balance(ctx context.Context, addr types.Address) (uint64, error) {
	bal, err := s.native.Balance(ctx, addr)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get native balance: %w", err))
	}
	return bal, nil
}

// Faucet credits addr out of thin air and returns the new balance.
// The router only mounts it in development setups.
func (s *AccountServiceImpl) Faucet(ctx context.Context, addr types.Address, amount uint64) (uint64, error) {
	if amount == 0 {
		return 0, apperror.ErrInvalidAmount()
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.native.Credit(ctx, dbTx, addr, amount); err != nil {
		return 0, transferErr(err, apperror.ErrInvalidAmount())
	}
	bal, err := s.native.BalanceForUpdate(ctx, dbTx, addr)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get native balance: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return 0, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	s.log.Info().
		Str("address", addr.String()).
		Uint64("amount", amount).
		Uint64("balance", bal).
		Msg("faucet credit processed successfully")

	return bal, nil
}
