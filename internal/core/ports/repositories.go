package ports

import (
	"context"
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

// Repository methods accepting pgx.Tx run inside the caller's transaction;
// ForUpdate variants take a pessimistic row lock. Getters return (nil, nil)
// when the record does not exist.

// VaultRepository persists vaults keyed by derived address.
type VaultRepository interface {
	Create(ctx context.Context, tx pgx.Tx, vault *domain.Vault) error
	GetByAddress(ctx context.Context, addr types.Address) (*domain.Vault, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.Vault, error)
	// Update persists the mutable fields: rate and running totals.
	Update(ctx context.Context, tx pgx.Tx, vault *domain.Vault) error
}

// ChildAccountRepository persists per-depositor child accounts.
type ChildAccountRepository interface {
	Create(ctx context.Context, tx pgx.Tx, child *domain.ChildAccount) error
	GetByAddress(ctx context.Context, addr types.Address) (*domain.ChildAccount, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.ChildAccount, error)
	ListByVault(ctx context.Context, vault types.Address) ([]domain.ChildAccount, error)
	ListByAuthority(ctx context.Context, authority types.Address) ([]domain.ChildAccount, error)
	UpdateTotals(ctx context.Context, tx pgx.Tx, child *domain.ChildAccount) error
}

// PayoutRepository persists pending payouts.
type PayoutRepository interface {
	Create(ctx context.Context, tx pgx.Tx, payout *domain.PendingPayout) error
	GetByAddress(ctx context.Context, addr types.Address) (*domain.PendingPayout, error)
	GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.PendingPayout, error)
	ListByChild(ctx context.Context, vault, child types.Address) ([]domain.PendingPayout, error)
	MarkExecuted(ctx context.Context, tx pgx.Tx, addr types.Address, executedAt time.Time) error
}

// MintRepository persists the per-vault VAL mint.
type MintRepository interface {
	Create(ctx context.Context, tx pgx.Tx, mint *domain.ValMint) error
	GetByVault(ctx context.Context, vault types.Address) (*domain.ValMint, error)
	GetByVaultForUpdate(ctx context.Context, tx pgx.Tx, vault types.Address) (*domain.ValMint, error)
	UpdateSupply(ctx context.Context, tx pgx.Tx, addr types.Address, supply uint64) error
}

// EventRepository persists ledger events in the operation's transaction.
type EventRepository interface {
	Create(ctx context.Context, tx pgx.Tx, event *domain.LedgerEvent) error
	ListByVault(ctx context.Context, vault types.Address, limit int) ([]domain.LedgerEvent, error)
}

// NativeLedger holds native-currency balances and moves funds between addresses.
type NativeLedger interface {
	Balance(ctx context.Context, addr types.Address) (uint64, error)
	BalanceForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (uint64, error)
	// Transfer fails with ErrInsufficientFunds and leaves both balances untouched
	// when from cannot cover amount.
	Transfer(ctx context.Context, tx pgx.Tx, from, to types.Address, amount uint64) error
	Credit(ctx context.Context, tx pgx.Tx, addr types.Address, amount uint64) error
}

// TokenLedger holds VAL balances per (mint, owner).
type TokenLedger interface {
	MintTo(ctx context.Context, tx pgx.Tx, mint, owner types.Address, amount uint64) error
	Balance(ctx context.Context, mint, owner types.Address) (uint64, error)
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
