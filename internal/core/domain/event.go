package domain

import (
	"time"

	"treasury-ledger/pkg/types"

	"github.com/google/uuid"
)

// EventKind names a successful ledger operation.
type EventKind string

const (
	EventVaultInitialized   EventKind = "VAULT_INITIALIZED"
	EventDepositMade        EventKind = "DEPOSIT_MADE"
	EventChildDepositMade   EventKind = "CHILD_DEPOSIT_MADE"
	EventPayoutRequested    EventKind = "PAYOUT_REQUESTED"
	EventPayoutExecuted     EventKind = "PAYOUT_EXECUTED"
	EventAdminWithdrawal    EventKind = "ADMIN_WITHDRAWAL"
	EventValMintInitialized EventKind = "VAL_MINT_INITIALIZED"
	EventValPurchased       EventKind = "VAL_PURCHASED"
	EventRateUpdated        EventKind = "RATE_UPDATED"
)

// LedgerEvent is the structured record emitted after each successful operation.
// Subject is the record the operation acted on (child, payout, mint) and is
// zero when the vault itself is the subject. RunningTotal carries the counter
// the operation advanced.
type LedgerEvent struct {
	ID           uuid.UUID         `json:"id"`
	Kind         EventKind         `json:"kind"`
	Actor        types.Address     `json:"actor"`
	Vault        types.Address     `json:"vault"`
	Subject      types.Address     `json:"subject"`
	Amount       uint64            `json:"amount"`
	RunningTotal uint64            `json:"running_total"`
	Details      map[string]string `json:"details,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewLedgerEvent stamps a new event with an ID and creation time.
func NewLedgerEvent(kind EventKind, actor, vault, subject types.Address, now time.Time) *LedgerEvent {
	return &LedgerEvent{
		ID:        uuid.New(),
		Kind:      kind,
		Actor:     actor,
		Vault:     vault,
		Subject:   subject,
		CreatedAt: now,
	}
}
