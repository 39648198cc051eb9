package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

const payoutColumns = `address, vault, child, nonce, amount, requested_at, executed, executed_at, bump`

// PayoutRepo implements ports.PayoutRepository.
type PayoutRepo struct {
	pool Pool
}

// NewPayoutRepo creates a new PayoutRepo.
func NewPayoutRepo(pool Pool) *PayoutRepo {
	return &PayoutRepo{pool: pool}
}

// Create inserts a pending payout. Reusing a (vault, child, nonce) address
// yields ports.ErrAlreadyExists.
func (r *PayoutRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.PendingPayout) error {
	query := `INSERT INTO pending_payouts (` + payoutColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT DO NOTHING`

	tag, err := tx.Exec(ctx, query,
		p.Address, p.Vault, p.Child, p.Nonce, p.Amount, p.RequestedAt, p.Executed, p.ExecutedAt, p.Bump,
	)
	if err != nil {
		return fmt.Errorf("insert pending payout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ports.ErrAlreadyExists
	}
	return nil
}

// GetByAddress fetches a payout without locking.
func (r *PayoutRepo) GetByAddress(ctx context.Context, addr types.Address) (*domain.PendingPayout, error) {
	query := `SELECT ` + payoutColumns + ` FROM pending_payouts WHERE address = $1`

	p, err := scanPayout(r.pool.QueryRow(ctx, query, addr))
	if err != nil {
		return nil, fmt.Errorf("get pending payout: %w", err)
	}
	return p, nil
}

// GetForUpdate fetches a payout with pessimistic locking.
func (r *PayoutRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.PendingPayout, error) {
	query := `SELECT ` + payoutColumns + ` FROM pending_payouts WHERE address = $1 FOR UPDATE`

	p, err := scanPayout(tx.QueryRow(ctx, query, addr))
	if err != nil {
		return nil, fmt.Errorf("get pending payout for update: %w", err)
	}
	return p, nil
}

// ListByChild returns payouts for child in vault ordered by nonce.
func (r *PayoutRepo) ListByChild(ctx context.Context, vault, child types.Address) ([]domain.PendingPayout, error) {
	query := `SELECT ` + payoutColumns + ` FROM pending_payouts WHERE vault = $1 AND child = $2 ORDER BY nonce`

	rows, err := r.pool.Query(ctx, query, vault, child)
	if err != nil {
		return nil, fmt.Errorf("list pending payouts: %w", err)
	}
	defer rows.Close()

	payouts := []domain.PendingPayout{}
	for rows.Next() {
		p := domain.PendingPayout{}
		if err := rows.Scan(
			&p.Address, &p.Vault, &p.Child, &p.Nonce, &p.Amount, &p.RequestedAt, &p.Executed, &p.ExecutedAt, &p.Bump,
		); err != nil {
			return nil, fmt.Errorf("scan pending payout: %w", err)
		}
		payouts = append(payouts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pending payout rows: %w", err)
	}
	return payouts, nil
}

// MarkExecuted flips the executed flag. The WHERE clause refuses a second flip.
func (r *PayoutRepo) MarkExecuted(ctx context.Context, tx pgx.Tx, addr types.Address, executedAt time.Time) error {
	query := `UPDATE pending_payouts SET executed = TRUE, executed_at = $1 WHERE address = $2 AND executed = FALSE`

	tag, err := tx.Exec(ctx, query, executedAt, addr)
	if err != nil {
		return fmt.Errorf("mark payout executed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending payout not found or already executed: %s", addr)
	}
	return nil
}

func scanPayout(row pgx.Row) (*domain.PendingPayout, error) {
	p := &domain.PendingPayout{}
	err := row.Scan(&p.Address, &p.Vault, &p.Child, &p.Nonce, &p.Amount, &p.RequestedAt, &p.Executed, &p.ExecutedAt, &p.Bump)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, lockErr(err)
	}
	return p, nil
}
