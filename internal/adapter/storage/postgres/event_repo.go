package postgres

import (
	"context"
	"fmt"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

// EventRepo implements ports.EventRepository. Rows are append-only.
type EventRepo struct {
	pool Pool
}

// NewEventRepo creates a new EventRepo.
func NewEventRepo(pool Pool) *EventRepo {
	return &EventRepo{pool: pool}
}

// Create appends an event within the operation's transaction.
func (r *EventRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEvent) error {
	query := `INSERT INTO ledger_events (id, kind, actor, vault, subject, amount, running_total, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.Exec(ctx, query,
		e.ID, string(e.Kind), e.Actor, e.Vault, e.Subject, e.Amount, e.RunningTotal, e.Details, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger event: %w", err)
	}
	return nil
}

// ListByVault returns the newest events of vault, at most limit.
func (r *EventRepo) ListByVault(ctx context.Context, vault types.Address, limit int) ([]domain.LedgerEvent, error) {
	query := `SELECT id, kind, actor, vault, subject, amount, running_total, details, created_at
		FROM ledger_events WHERE vault = $1
		ORDER BY created_at DESC, id
		LIMIT $2`

	rows, err := r.pool.Query(ctx, query, vault, limit)
	if err != nil {
		return nil, fmt.Errorf("list ledger events: %w", err)
	}
	defer rows.Close()

	events := []domain.LedgerEvent{}
	for rows.Next() {
		var (
			e    domain.LedgerEvent
			kind string
		)
		if err := rows.Scan(
			&e.ID, &kind, &e.Actor, &e.Vault, &e.Subject, &e.Amount, &e.RunningTotal, &e.Details, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		e.Kind = domain.EventKind(kind)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ledger event rows: %w", err)
	}
	return events, nil
}
