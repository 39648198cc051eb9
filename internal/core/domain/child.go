package domain

import (
	"time"

	"treasury-ledger/internal/core/ledgermath"
	"treasury-ledger/pkg/types"
)

// ChildAccount tracks one depositor's contributions to one vault and
// what has been paid back out. Created on first deposit.
type ChildAccount struct {
	Address        types.Address `json:"address"`
	Vault          types.Address `json:"vault"`
	Authority      types.Address `json:"authority"`
	TotalDeposited uint64        `json:"total_deposited"`
	TotalPaidOut   uint64        `json:"total_paid_out"`
	CreatedAt      time.Time     `json:"created_at"`
	Bump           uint8         `json:"bump"`
}

// NewChildAccount returns a zero-balance child for authority in vault.
func NewChildAccount(addr, vault, authority types.Address, bump uint8, now time.Time) *ChildAccount {
	return &ChildAccount{
		Address:   addr,
		Vault:     vault,
		Authority: authority,
		CreatedAt: now,
		Bump:      bump,
	}
}

// Remaining returns TotalDeposited - TotalPaidOut, the most that can still be paid out.
func (c *ChildAccount) Remaining() (uint64, error) {
	return ledgermath.Sub(c.TotalDeposited, c.TotalPaidOut)
}

// BelongsTo reports whether the child is registered under vault.
func (c *ChildAccount) BelongsTo(vault types.Address) bool {
	return c.Vault == vault
}
