package ports

import (
	"context"
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/pkg/types"
)

// SignatureService verifies caller signatures over the canonical request string.
type SignatureService interface {
	BuildCanonicalString(method, path string, timestamp int64, nonce string, body string) string
	// Verify checks signature over payload and returns the signer's address.
	Verify(publicKey []byte, payload string, signature []byte) (types.Address, bool)
}

// PayloadSigner signs outbound payloads (webhooks) with a shared secret.
type PayloadSigner interface {
	Sign(secretKey string, payload string) string
	Verify(secretKey string, payload string, signature string) bool
}

// TokenService handles session JWTs issued to verified signers.
type TokenService interface {
	Generate(subject types.Address) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject types.Address
}

// NonceStore manages nonce uniqueness for replay attack prevention.
type NonceStore interface {
	// CheckAndSet atomically checks if nonce exists, sets it if not.
	// Returns true if nonce is new (valid), false if already used.
	CheckAndSet(ctx context.Context, signer string, nonce string, ttl time.Duration) (bool, error)
}

// EventSink receives committed ledger events. Sinks are best-effort.
type EventSink interface {
	Publish(ctx context.Context, event *domain.LedgerEvent) error
	Name() string
}

// EventJournal is an append-only local copy of ledger events.
type EventJournal interface {
	EventSink
	ListByVault(ctx context.Context, vault types.Address, limit int) ([]domain.LedgerEvent, error)
}

// Notifier fans committed events out to every configured sink.
type Notifier interface {
	Notify(ctx context.Context, event *domain.LedgerEvent)
}

// --- Service Ports (Business Logic) ---

// VaultService covers the vault lifecycle and admin operations.
type VaultService interface {
	Initialize(ctx context.Context, req InitializeVaultRequest) (*domain.Vault, error)
	Deposit(ctx context.Context, req DepositRequest) (*domain.Vault, error)
	AdminWithdraw(ctx context.Context, req WithdrawRequest) (*domain.Vault, error)
	UpdateExchangeRate(ctx context.Context, req UpdateRateRequest) (*domain.Vault, error)
	GetVault(ctx context.Context, vault types.Address) (*VaultView, error)
	ListEvents(ctx context.Context, vault types.Address, limit int) ([]domain.LedgerEvent, error)
}

// InitializeVaultRequest holds validated input for vault creation.
type InitializeVaultRequest struct {
	Admin            types.Address
	AdminDestination types.Address
	Rate             domain.ExchangeRate
	MaxSupply        uint64
}

// DepositRequest is shared by the registered and unregistered deposit paths.
type DepositRequest struct {
	Depositor types.Address
	Vault     types.Address
	Amount    uint64
}

// WithdrawRequest holds input for an admin withdrawal.
type WithdrawRequest struct {
	Caller types.Address
	Vault  types.Address
	Amount uint64
}

// UpdateRateRequest holds input for an exchange rate change.
type UpdateRateRequest struct {
	Caller types.Address
	Vault  types.Address
	Rate   domain.ExchangeRate
}

// VaultView is a vault together with its live treasury balance.
type VaultView struct {
	Vault           *domain.Vault
	TreasuryBalance uint64
}

// DepositService registers depositors and records their contributions.
type DepositService interface {
	DepositAndAutoRegister(ctx context.Context, req DepositRequest) (*domain.ChildAccount, error)
	GetChild(ctx context.Context, vault, child types.Address) (*domain.ChildAccount, error)
	ListChildren(ctx context.Context, vault types.Address) ([]domain.ChildAccount, error)
	ListChildrenByAuthority(ctx context.Context, authority types.Address) ([]domain.ChildAccount, error)
}

// PayoutService implements the two-phase payout.
type PayoutService interface {
	RequestPayout(ctx context.Context, req RequestPayoutRequest) (*domain.PendingPayout, error)
	ExecutePayout(ctx context.Context, req ExecutePayoutRequest) (*domain.PendingPayout, error)
	GetPayout(ctx context.Context, vault, payout types.Address) (*domain.PendingPayout, error)
	ListPayouts(ctx context.Context, vault, child types.Address) ([]domain.PendingPayout, error)
}

// RequestPayoutRequest holds input for the request phase.
type RequestPayoutRequest struct {
	Caller types.Address
	Vault  types.Address
	Child  types.Address
	Amount uint64
	Nonce  uint64
}

// ExecutePayoutRequest holds input for the execute phase.
type ExecutePayoutRequest struct {
	Caller    types.Address
	Vault     types.Address
	Child     types.Address
	Payout    types.Address
	Recipient types.Address
}

// ExchangeService sells VAL tokens against native currency.
type ExchangeService interface {
	InitializeValMint(ctx context.Context, caller, vault types.Address) (*domain.ValMint, error)
	BuyVal(ctx context.Context, req BuyValRequest) (*PurchaseResult, error)
	QuoteVal(ctx context.Context, vault types.Address, solAmount uint64) (*PurchaseResult, error)
	TokenBalance(ctx context.Context, vault, owner types.Address) (uint64, error)
}

// BuyValRequest holds input for a token purchase.
type BuyValRequest struct {
	Buyer     types.Address
	Vault     types.Address
	SolAmount uint64
}

// PurchaseResult describes a completed or quoted purchase.
type PurchaseResult struct {
	Mint        types.Address
	SolAmount   uint64
	ValAmount   uint64
	TotalMinted uint64
}

// AccountService exposes native balances and the development faucet.
type AccountService interface {
	Balance(ctx context.Context, addr types.Address) (uint64, error)
	Faucet(ctx context.Context, addr types.Address, amount uint64) (uint64, error)
}
