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

const mintColumns = `address, vault, mint_authority, authority_bump, mint_bump, decimals, supply, created_at`

// MintRepo implements ports.MintRepository.
type MintRepo struct {
	pool Pool
}

// NewMintRepo creates a new MintRepo.
func NewMintRepo(pool Pool) *MintRepo {
	return &MintRepo{pool: pool}
}

// Create inserts the vault's VAL mint. A second mint for the same vault
// yields ports.ErrAlreadyExists.
func (r *MintRepo) Create(ctx context.Context, tx pgx.Tx, m *domain.ValMint) error {
	query := `INSERT INTO val_mints (` + mintColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		m.Address, m.Vault, m.MintAuthority, m.AuthorityBump, m.MintBump, m.Decimals, m.Supply, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert val mint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrAlreadyExists
	}
	return nil
}

// GetByVault fetches the mint belonging to vault.
func (r *MintRepo) GetByVault(ctx context.Context, vault types.Address) (*domain.ValMint, error) {
	query := `SELECT ` + mintColumns + ` FROM val_mints WHERE vault = $1`

	m, err := scanMint(r.pool.QueryRow(ctx, query, vault))
	if err != nil {
		return nil, fmt.Errorf("get val mint: %w", err)
	}
	return m, nil
}

// GetByVaultForUpdate fetches the mint with pessimistic locking.
func (r *MintRepo) GetByVaultForUpdate(ctx context.Context, tx pgx.Tx, vault types.Address) (*domain.ValMint, error) {
	query := `SELECT ` + mintColumns + ` FROM val_mints WHERE vault = $1 FOR UPDATE`

	m, err := scanMint(tx.QueryRow(ctx, query, vault))
	if err != nil {
		return nil, fmt.Errorf("get val mint for update: %w", err)
	}
	return m, nil
}

// UpdateSupply sets the circulating supply of the mint.
func (r *MintRepo) UpdateSupply(ctx context.Context, tx pgx.Tx, addr types.Address, supply uint64) error {
	tag, err := tx.Exec(ctx, `UPDATE val_mints SET supply = $1 WHERE address = $2`, supply, addr)
	if err != nil {
		return fmt.Errorf("update mint supply: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("val mint not found: %s", addr)
	}
	return nil
}

func scanMint(row pgx.Row) (*domain.ValMint, error) {
	m := &domain.ValMint{}
	err := row.Scan(&m.Address, &m.Vault, &m.MintAuthority, &m.AuthorityBump, &m.MintBump, &m.Decimals, &m.Supply, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, lockErr(err)
	}
	return m, nil
}
