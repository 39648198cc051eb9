package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/exchange"
	"treasury-ledger/internal/core/ledgermath"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Repositories bundles the storage ports every ledger service works against.
// The postgres and memory adapters both provide a full set.
type Repositories struct {
	Vaults     ports.VaultRepository
	Children   ports.ChildAccountRepository
	Payouts    ports.PayoutRepository
	Mints      ports.MintRepository
	Events     ports.EventRepository
	Native     ports.NativeLedger
	Tokens     ports.TokenLedger
	Transactor ports.DBTransactor
}

// ledger is the state shared by the vault, deposit, payout and exchange services.
type ledger struct {
	repos    Repositories
	deriver  domain.Deriver
	notifier ports.Notifier
	now      func() time.Time
	log      zerolog.Logger
}

func newLedger(repos Repositories, deriver domain.Deriver, notifier ports.Notifier, log zerolog.Logger) ledger {
	return ledger{
		repos:    repos,
		deriver:  deriver,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		log:      log,
	}
}

func (l *ledger) begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := l.repos.Transactor.Begin(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperror.ErrLockTimeout(err)
		}
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	return tx, nil
}

// commit commits tx and hands the recorded events to the notifier.
func (l *ledger) commit(ctx context.Context, tx pgx.Tx, events ...*domain.LedgerEvent) error {
	if err := tx.Commit(ctx); err != nil {
		return apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}
	for _, e := range events {
		l.notifier.Notify(ctx, e)
	}
	return nil
}

func (l *ledger) record(ctx context.Context, tx pgx.Tx, e *domain.LedgerEvent) error {
	if err := l.repos.Events.Create(ctx, tx, e); err != nil {
		return apperror.InternalError(fmt.Errorf("record event: %w", err))
	}
	return nil
}

func (l *ledger) vault(ctx context.Context, addr types.Address) (*domain.Vault, error) {
	v, err := l.repos.Vaults.GetByAddress(ctx, addr)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get vault: %w", err))
	}
	if v == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	return v, nil
}

func (l *ledger) vaultForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.Vault, error) {
	v, err := l.repos.Vaults.GetForUpdate(ctx, tx, addr)
	if err != nil {
		return nil, lockErr("vault", err)
	}
	if v == nil {
		return nil, apperror.ErrNotFound("vault")
	}
	return v, nil
}

// adminVaultForUpdate locks the vault and checks that caller is its admin.
func (l *ledger) adminVaultForUpdate(ctx context.Context, tx pgx.Tx, caller, addr types.Address) (*domain.Vault, error) {
	v, err := l.vaultForUpdate(ctx, tx, addr)
	if err != nil {
		return nil, err
	}
	if !v.IsAdmin(caller) {
		return nil, apperror.ErrUnauthorized()
	}
	return v, nil
}

// lockErr maps a failed ForUpdate read: lock contention is retryable, anything else is internal.
func lockErr(what string, err error) error {
	if errors.Is(err, ports.ErrLockTimeout) {
		return apperror.ErrLockTimeout(err)
	}
	return apperror.InternalError(fmt.Errorf("lock %s: %w", what, err))
}

func mathErr(err error) error {
	if errors.Is(err, ledgermath.ErrOverflow) || errors.Is(err, ledgermath.ErrDivideByZero) {
		return apperror.ErrMathOverflow(err)
	}
	return apperror.InternalError(err)
}

func exchangeErr(err error) error {
	switch {
	case errors.Is(err, exchange.ErrInvalidAmount):
		return apperror.ErrInvalidAmount()
	case errors.Is(err, exchange.ErrInvalidNumerator):
		return apperror.ErrInvalidNumerator()
	case errors.Is(err, exchange.ErrInvalidDenominator):
		return apperror.ErrInvalidDenominator()
	case errors.Is(err, exchange.ErrExceedsMaxSupply):
		return apperror.ErrExceedsMaxSupply()
	case errors.Is(err, exchange.ErrOverflow):
		return apperror.ErrMathOverflow(err)
	}
	return apperror.InternalError(err)
}

func createErr(entity string, err error) error {
	if errors.Is(err, ports.ErrAlreadyExists) {
		return apperror.ErrAlreadyExists(entity)
	}
	return apperror.InternalError(fmt.Errorf("create %s: %w", entity, err))
}

func deriveErr(err error) error {
	return apperror.InternalError(fmt.Errorf("derive address: %w", err))
}
