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

const childColumns = `address, vault, authority, total_deposited, total_paid_out, created_at, bump`

// ChildAccountRepo implements ports.ChildAccountRepository.
type ChildAccountRepo struct {
	pool Pool
}

// NewChildAccountRepo creates a new ChildAccountRepo.
func NewChildAccountRepo(pool Pool) *ChildAccountRepo {
	return &ChildAccountRepo{pool: pool}
}

// Create inserts a child account. An existing row yields ports.ErrAlreadyExists.
func (r *ChildAccountRepo) Create(ctx context.Context, tx pgx.Tx, c *domain.ChildAccount) error {
	query := `INSERT INTO child_accounts (` + childColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		c.Address, c.Vault, c.Authority, c.TotalDeposited, c.TotalPaidOut, c.CreatedAt, c.Bump,
	)
	if err != nil {
		return fmt.Errorf("insert child account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrAlreadyExists
	}
	return nil
}

// GetByAddress fetches a child account without locking.
func (r *ChildAccountRepo) GetByAddress(ctx context.Context, addr types.Address) (*domain.ChildAccount, error) {
	query := `SELECT ` + childColumns + ` FROM child_accounts WHERE address = $1`

	c, err := scanChild(r.pool.QueryRow(ctx, query, addr))
	if err != nil {
		return nil, fmt.Errorf("get child account: %w", err)
	}
	return c, nil
}

// GetForUpdate fetches a child account with pessimistic locking.
func (r *ChildAccountRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.ChildAccount, error) {
	query := `SELECT ` + childColumns + ` FROM child_accounts WHERE address = $1 FOR UPDATE`

	c, err := scanChild(tx.QueryRow(ctx, query, addr))
	if err != nil {
		return nil, fmt.Errorf("get child account for update: %w", err)
	}
	return c, nil
}

// ListByVault returns every child registered under vault, oldest first.
func (r *ChildAccountRepo) ListByVault(ctx context.Context, vault types.Address) ([]domain.ChildAccount, error) {
	query := `SELECT ` + childColumns + ` FROM child_accounts WHERE vault = $1 ORDER BY created_at, address`
	return r.list(ctx, query, vault)
}

// ListByAuthority returns every child owned by authority across vaults.
func (r *ChildAccountRepo) ListByAuthority(ctx context.Context, authority types.Address) ([]domain.ChildAccount, error) {
	query := `SELECT ` + childColumns + ` FROM child_accounts WHERE authority = $1 ORDER BY created_at, address`
	return r.list(ctx, query, authority)
}

// UpdateTotals persists the deposited and paid-out counters.
func (r *ChildAccountRepo) UpdateTotals(ctx context.Context, tx pgx.Tx, c *domain.ChildAccount) error {
	query := `UPDATE child_accounts SET total_deposited = $1, total_paid_out = $2 WHERE address = $3`

	tag, err := tx.Exec(ctx, query, c.TotalDeposited, c.TotalPaidOut, c.Address)
	if err != nil {
		return fmt.Errorf("update child totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("child account not found: %s", c.Address)
	}
	return nil
}

func (r *ChildAccountRepo) list(ctx context.Context, query string, arg types.Address) ([]domain.ChildAccount, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list child accounts: %w", err)
	}
	defer rows.Close()

	children := []domain.ChildAccount{}
	for rows.Next() {
		c := domain.ChildAccount{}
		if err := rows.Scan(
			&c.Address, &c.Vault, &c.Authority, &c.TotalDeposited, &c.TotalPaidOut, &c.CreatedAt, &c.Bump,
		); err != nil {
			return nil, fmt.Errorf("scan child account: %w", err)
		}
		children = append(children, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate child account rows: %w", err)
	}
	return children, nil
}

func scanChild(row pgx.Row) (*domain.ChildAccount, error) {
	c := &domain.ChildAccount{}
	err := row.Scan(&c.Address, &c.Vault, &c.Authority, &c.TotalDeposited, &c.TotalPaidOut, &c.CreatedAt, &c.Bump)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, lockErr(err)
	}
	return c, nil
}
