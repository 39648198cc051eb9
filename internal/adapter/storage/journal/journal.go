package journal

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/pkg/types"
)

var prefixEvents = []byte("ev/")

// Journal implements ports.EventJournal. Events are keyed by
// vault || inverted timestamp || id so a prefix walk yields newest first.
type Journal struct {
	db DB
}

// New wraps db as an event journal.
func New(db DB) *Journal {
	return &Journal{db: db}
}

func vaultPrefix(vault types.Address) []byte {
	p := make([]byte, 0, len(prefixEvents)+types.AddressSize)
	p = append(p, prefixEvents...)
	return append(p, vault[:]...)
}

func eventKey(e *domain.LedgerEvent) []byte {
	key := vaultPrefix(e.Vault)
	key = binary.BigEndian.AppendUint64(key, math.MaxUint64-uint64(e.CreatedAt.UnixNano()))
	return append(key, e.ID[:]...)
}

// Publish appends event to the journal.
func (j *Journal) Publish(ctx context.Context, event *domain.LedgerEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal journal event: %w", err)
	}
	if err := j.db.Put(eventKey(event), value); err != nil {
		return fmt.Errorf("append journal event: %w", err)
	}
	return nil
}

// ListByVault returns up to limit events of vault, newest first.
// A non-positive limit returns every event.
func (j *Journal) ListByVault(ctx context.Context, vault types.Address, limit int) ([]domain.LedgerEvent, error) {
	events := []domain.LedgerEvent{}
	err := j.db.ForEach(vaultPrefix(vault), func(_, value []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		var e domain.LedgerEvent
		if err := json.Unmarshal(value, &e); err != nil {
			return fmt.Errorf("decode journal event: %w", err)
		}
		events = append(events, e)
		if limit > 0 && len(events) >= limit {
			return ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list journal events: %w", err)
	}
	return events, nil
}

// Name returns the sink name.
func (j *Journal) Name() string {
	return "journal"
}

// Close closes the underlying store.
func (j *Journal) Close() error {
	return j.db.Close()
}
