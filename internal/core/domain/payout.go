package domain

import (
	"time"

	"treasury-ledger/pkg/types"
)

// PayoutStatus represents the lifecycle state of a pending payout.
type PayoutStatus string

const (
	PayoutStatusRequested PayoutStatus = "REQUESTED"
	PayoutStatusExecuted  PayoutStatus = "EXECUTED"
)

// PendingPayout is an admin-approved payout awaiting execution.
// Executed flips false -> true exactly once.
type PendingPayout struct {
	Address     types.Address `json:"address"`
	Vault       types.Address `json:"vault"`
	Child       types.Address `json:"child"`
	Nonce       uint64        `json:"nonce"`
	Amount      uint64        `json:"amount"`
	RequestedAt time.Time     `json:"requested_at"`
	Executed    bool          `json:"executed"`
	ExecutedAt  *time.Time    `json:"executed_at,omitempty"`
	Bump        uint8         `json:"bump"`
}

// Status derives the lifecycle state from the executed flag.
func (p *PendingPayout) Status() PayoutStatus {
	if p.Executed {
		return PayoutStatusExecuted
	}
	return PayoutStatusRequested
}

// BelongsTo reports whether the payout was requested for child in vault.
func (p *PendingPayout) BelongsTo(vault, child types.Address) bool {
	return p.Vault == vault && p.Child == child
}
