package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
)

// VaultRepo implements ports.VaultRepository.
type VaultRepo struct{ store *Store }

// NewVaultRepo creates a VaultRepo backed by store.
func NewVaultRepo(store *Store) *VaultRepo { return &VaultRepo{store: store} }

func (r *VaultRepo) Create(ctx context.Context, tx pgx.Tx, v *domain.Vault) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	if _, ok := st.vaults[v.Address]; ok {
		return ports.ErrAlreadyExists
	}
	for _, existing := range st.vaults {
		if existing.AdminAuthority == v.AdminAuthority {
			return ports.ErrAlreadyExists
		}
	}
	st.vaults[v.Address] = *v
	return nil
}

func (r *VaultRepo) GetByAddress(ctx context.Context, addr types.Address) (*domain.Vault, error) {
	var out *domain.Vault
	r.store.read(func(st *state) {
		if v, ok := st.vaults[addr]; ok {
			out = &v
		}
	})
	return out, nil
}

func (r *VaultRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.Vault, error) {
	st, err := r.store.working(tx)
	if err != nil {
		return nil, err
	}
	v, ok := st.vaults[addr]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *VaultRepo) Update(ctx context.Context, tx pgx.Tx, v *domain.Vault) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	cur, ok := st.vaults[v.Address]
	if !ok {
		return fmt.Errorf("vault not found: %s", v.Address)
	}
	cur.ExchangeNumerator = v.ExchangeNumerator
	cur.ExchangeDenominator = v.ExchangeDenominator
	cur.TotalMinted = v.TotalMinted
	cur.TotalDeposited = v.TotalDeposited
	cur.TotalWithdrawn = v.TotalWithdrawn
	st.vaults[v.Address] = cur
	return nil
}

// ChildAccountRepo implements ports.ChildAccountRepository.
type ChildAccountRepo struct{ store *Store }

// NewChildAccountRepo creates a ChildAccountRepo backed by store.
func NewChildAccountRepo(store *Store) *ChildAccountRepo { return &ChildAccountRepo{store: store} }

func (r *ChildAccountRepo) Create(ctx context.Context, tx pgx.Tx, c *domain.ChildAccount) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	if _, ok := st.children[c.Address]; ok {
		return ports.ErrAlreadyExists
	}
	st.children[c.Address] = *c
	return nil
}

func (r *ChildAccountRepo) GetByAddress(ctx context.Context, addr types.Address) (*domain.ChildAccount, error) {
	var out *domain.ChildAccount
	r.store.read(func(st *state) {
		if c, ok := st.children[addr]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *ChildAccountRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.ChildAccount, error) {
	st, err := r.store.working(tx)
	if err != nil {
		return nil, err
	}
	c, ok := st.children[addr]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *ChildAccountRepo) ListByVault(ctx context.Context, vault types.Address) ([]domain.ChildAccount, error) {
	return r.filter(func(c domain.ChildAccount) bool { return c.Vault == vault }), nil
}

func (r *ChildAccountRepo) ListByAuthority(ctx context.Context, authority types.Address) ([]domain.ChildAccount, error) {
	return r.filter(func(c domain.ChildAccount) bool { return c.Authority == authority }), nil
}

func (r *ChildAccountRepo) UpdateTotals(ctx context.Context, tx pgx.Tx, c *domain.ChildAccount) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	cur, ok := st.children[c.Address]
	if !ok {
		return fmt.Errorf("child account not found: %s", c.Address)
	}
	cur.TotalDeposited = c.TotalDeposited
	cur.TotalPaidOut = c.TotalPaidOut
	st.children[c.Address] = cur
	return nil
}

func (r *ChildAccountRepo) filter(keep func(domain.ChildAccount) bool) []domain.ChildAccount {
	out := []domain.ChildAccount{}
	r.store.read(func(st *state) {
		for _, c := range st.children {
			if keep(c) {
				out = append(out, c)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.ChildAccount) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Address.String(), b.Address.String())
	})
	return out
}

// PayoutRepo implements ports.PayoutRepository.
type PayoutRepo struct{ store *Store }

// NewPayoutRepo creates a PayoutRepo backed by store.
func NewPayoutRepo(store *Store) *PayoutRepo { return &PayoutRepo{store: store} }

func (r *PayoutRepo) Create(ctx context.Context, tx pgx.Tx, p *domain.PendingPayout) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	if _, ok := st.payouts[p.Address]; ok {
		return ports.ErrAlreadyExists
	}
	st.payouts[p.Address] = *p
	return nil
}

func (r *PayoutRepo) GetByAddress(ctx context.Context, addr types.Address) (*domain.PendingPayout, error) {
	var out *domain.PendingPayout
	r.store.read(func(st *state) {
		if p, ok := st.payouts[addr]; ok {
			out = &p
		}
	})
	return out, nil
}

func (r *PayoutRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, addr types.Address) (*domain.PendingPayout, error) {
	st, err := r.store.working(tx)
	if err != nil {
		return nil, err
	}
	p, ok := st.payouts[addr]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *PayoutRepo) ListByChild(ctx context.Context, vault, child types.Address) ([]domain.PendingPayout, error) {
	out := []domain.PendingPayout{}
	r.store.read(func(st *state) {
		for _, p := range st.payouts {
			if p.BelongsTo(vault, child) {
				out = append(out, p)
			}
		}
	})
	slices.SortFunc(out, func(a, b domain.PendingPayout) int {
		switch {
		case a.Nonce < b.Nonce:
			return -1
		case a.Nonce > b.Nonce:
			return 1
		}
		return 0
	})
	return out, nil
}

func (r *PayoutRepo) MarkExecuted(ctx context.Context, tx pgx.Tx, addr types.Address, executedAt time.Time) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	p, ok := st.payouts[addr]
	if !ok || p.Executed {
		return fmt.Errorf("pending payout not found or already executed: %s", addr)
	}
	p.Executed = true
	p.ExecutedAt = &executedAt
	st.payouts[addr] = p
	return nil
}

// MintRepo implements ports.MintRepository.
type MintRepo struct{ store *Store }

// NewMintRepo creates a MintRepo backed by store.
func NewMintRepo(store *Store) *MintRepo { return &MintRepo{store: store} }

func (r *MintRepo) Create(ctx context.Context, tx pgx.Tx, m *domain.ValMint) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	if _, ok := st.mints[m.Vault]; ok {
		return ports.ErrAlreadyExists
	}
	st.mints[m.Vault] = *m
	return nil
}

func (r *MintRepo) GetByVault(ctx context.Context, vault types.Address) (*domain.ValMint, error) {
	var out *domain.ValMint
	r.store.read(func(st *state) {
		if m, ok := st.mints[vault]; ok {
			out = &m
		}
	})
	return out, nil
}

func (r *MintRepo) GetByVaultForUpdate(ctx context.Context, tx pgx.Tx, vault types.Address) (*domain.ValMint, error) {
	st, err := r.store.working(tx)
	if err != nil {
		return nil, err
	}
	m, ok := st.mints[vault]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

func (r *MintRepo) UpdateSupply(ctx context.Context, tx pgx.Tx, addr types.Address, supply uint64) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	for vault, m := range st.mints {
		if m.Address == addr {
			m.Supply = supply
			st.mints[vault] = m
			return nil
		}
	}
	return fmt.Errorf("val mint not found: %s", addr)
}

// EventRepo implements ports.EventRepository.
type EventRepo struct{ store *Store }

// NewEventRepo creates an EventRepo backed by store.
func NewEventRepo(store *Store) *EventRepo { return &EventRepo{store: store} }

func (r *EventRepo) Create(ctx context.Context, tx pgx.Tx, e *domain.LedgerEvent) error {
	st, err := r.store.working(tx)
	if err != nil {
		return err
	}
	st.events = append(st.events, *e)
	return nil
}

// ListByVault returns the newest events of vault first, at most limit.
func (r *EventRepo) ListByVault(ctx context.Context, vault types.Address, limit int) ([]domain.LedgerEvent, error) {
	out := []domain.LedgerEvent{}
	r.store.read(func(st *state) {
		for i := len(st.events) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
			if st.events[i].Vault == vault {
				out = append(out, st.events[i])
			}
		}
	})
	return out, nil
}
