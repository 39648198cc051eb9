package postgres

import (
	"context"
	"errors"
	"fmt"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

const vaultColumns = `address, admin_authority, admin_destination, exchange_numerator, exchange_denominator,
		max_supply, total_minted, total_deposited, total_withdrawn, created_at,
		vault_bump, treasury_address, treasury_bump`

// VaultRepo implements ports.VaultRepository.
type VaultRepo struct {
	pool Pool
}

// NewVaultRepo creates a new VaultRepo.
func NewVaultRepo(pool Pool) *VaultRepo {
	return &VaultRepo{pool: pool}
}

// Create inserts a vault. An existing row at the same address yields ports.ErrAlreadyExists.
func (r *VaultRepo) Create(ctx context.Context, tx pgx.Tx, v *domain.Vault) error {
	query := `INSERT INTO vaults (` + vaultColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		v.Address, v.AdminAuthority, v.AdminDestination, v.ExchangeNumerator, v.ExchangeDenominator,
		v.MaxSupply, v.TotalMinted, v.TotalDeposited, v.TotalWithdrawn, v.CreatedAt,
		v.VaultBump, v.TreasuryAddress, v.TreasuryBump,
	)
	if err != nil {
		return fmt.Errorf("insert vault: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrAlreadyExists
	}
	return nil
}

// GetByAddress fetches a vault without locking.
func (r *VaultRepo) GetByAddress(ctx context.Context, addr types.Address) (*domain.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE address = $1`

	v, err := scanVault(r.pool.QueryRow(ctx, query, addr))
	if err != nil {
		return nil, fmt.Errorf("get vault by address: %w", err)
	}
	return v, nil
}

// GetForUpdate fetches a vault with pessimistic locking.
// This MUST be called within a transaction.
func (r *VaultRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.Vault, error) {
	query := `SELECT ` + vaultColumns + ` FROM vaults WHERE address = $1 FOR UPDATE`

	v, err := scanVault(tx.QueryRow(ctx, query, addr))
	if err != nil {
		return nil, fmt.Errorf("get vault for update: %w", err)
	}
	return v, nil
}

// Update persists the exchange rate and running totals.
func (r *VaultRepo) Update(ctx context.Context, tx pgx.Tx, v *domain.Vault) error {
	query := `UPDATE vaults SET exchange_numerator = $1, exchange_denominator = $2,
		total_minted = $3, total_deposited = $4, total_withdrawn = $5
		WHERE address = $6`

	tag, err := tx.Exec(ctx, query,
		v.ExchangeNumerator, v.ExchangeDenominator,
		v.TotalMinted, v.TotalDeposited, v.TotalWithdrawn, v.Address,
	)
	if err != nil {
		return fmt.Errorf("update vault: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vault not found: %s", v.Address)
	}
	return nil
}

func scanVault(row pgx.Row) (*domain.Vault, error) {
	v := &domain.Vault{}
	err := row.Scan(
		&v.Address, &v.AdminAuthority, &v.AdminDestination, &v.ExchangeNumerator, &v.ExchangeDenominator,
		&v.MaxSupply, &v.TotalMinted, &v.TotalDeposited, &v.TotalWithdrawn, &v.CreatedAt,
		&v.VaultBump, &v.TreasuryAddress, &v.TreasuryBump,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, lockErr(err)
	}
	return v, nil
}
