// Package memory is a process-local ledger store. Transactions are
// serialized: Begin takes the single writer slot and works on a private
// copy of the state that Commit publishes atomically.
package memory

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

// ErrForeignTx is returned when a repository receives a transaction that
// was not started by its Store.
var ErrForeignTx = errors.New("memory: transaction does not belong to this store")

type tokenKey struct {
	mint  types.Address
	owner types.Address
}

type state struct {
	vaults   map[types.Address]domain.Vault
	children map[types.Address]domain.ChildAccount
	payouts  map[types.Address]domain.PendingPayout
	mints    map[types.Address]domain.ValMint // keyed by vault
	native   map[types.Address]uint64
	tokens   map[tokenKey]uint64
	events   []domain.LedgerEvent
}

func newState() *state {
	return &state{
		vaults:   make(map[types.Address]domain.Vault),
		children: make(map[types.Address]domain.ChildAccount),
		payouts:  make(map[types.Address]domain.PendingPayout),
		mints:    make(map[types.Address]domain.ValMint),
		native:   make(map[types.Address]uint64),
		tokens:   make(map[tokenKey]uint64),
	}
}

func (s *state) clone() *state {
	return &state{
		vaults:   maps.Clone(s.vaults),
		children: maps.Clone(s.children),
		payouts:  maps.Clone(s.payouts),
		mints:    maps.Clone(s.mints),
		native:   maps.Clone(s.native),
		tokens:   maps.Clone(s.tokens),
		events:   append([]domain.LedgerEvent(nil), s.events...),
	}
}

// Store holds the committed ledger state and implements ports.DBTransactor.
type Store struct {
	writer chan struct{}

	mu    sync.RWMutex
	state *state
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		writer: make(chan struct{}, 1),
		state:  newState(),
	}
}

// Begin waits for the writer slot and starts a transaction.
// A cancelled context aborts the wait.
func (s *Store) Begin(ctx context.Context) (pgx.Tx, error) {
	select {
	case s.writer <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("begin memory transaction: %w", ctx.Err())
	}

	s.mu.RLock()
	work := s.state.clone()
	s.mu.RUnlock()

	return &memTx{store: s, work: work}, nil
}

// Ping implements ports.HealthChecker.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Name returns the dependency name.
func (s *Store) Name() string {
	return "memory"
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

func (s *Store) publish(work *state) {
	s.mu.Lock()
	s.state = work
	s.mu.Unlock()
}

func (s *Store) release() {
	<-s.writer
}

// working returns the private state of an open transaction.
func (s *Store) working(tx pgx.Tx) (*state, error) {
	mt, ok := tx.(*memTx)
	if !ok || mt.store != s {
		return nil, ErrForeignTx
	}
	if mt.done {
		return nil, pgx.ErrTxClosed
	}
	return mt.work, nil
}
