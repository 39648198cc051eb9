package dto

import (
	"time"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/types"
)

// Amounts are plain JSON numbers in base units. Zero amounts pass binding
// so the ledger can reject them with its own error codes.

// InitializeVaultRequest is the request body for vault creation.
type InitializeVaultRequest struct {
	AdminDestination string `json:"admin_destination" binding:"required,hexaddr"`
	Numerator        uint64 `json:"exchange_numerator"`
	Denominator      uint64 `json:"exchange_denominator"`
	MaxSupply        uint64 `json:"max_supply"`
}

// AmountRequest is the request body for contributions, deposits and withdrawals.
type AmountRequest struct {
	Amount uint64 `json:"amount"`
}

// RequestPayoutRequest is the request body for the payout request phase.
type RequestPayoutRequest struct {
	Child  string `json:"child" binding:"required,hexaddr"`
	Amount uint64 `json:"amount"`
	Nonce  uint64 `json:"nonce"`
}

// ExecutePayoutRequest is the request body for the payout execute phase.
type ExecutePayoutRequest struct {
	Child     string `json:"child" binding:"required,hexaddr"`
	Recipient string `json:"recipient" binding:"required,hexaddr"`
}

// BuyValRequest is the request body for a VAL purchase.
type BuyValRequest struct {
	SolAmount uint64 `json:"sol_amount"`
}

// UpdateRateRequest is the request body for an exchange rate change.
type UpdateRateRequest struct {
	Numerator   uint64 `json:"exchange_numerator"`
	Denominator uint64 `json:"exchange_denominator"`
}

// FaucetRequest is the request body for the development faucet.
type FaucetRequest struct {
	Amount uint64 `json:"amount"`
}

// VaultResponse is the response body for a vault.
type VaultResponse struct {
	Address             types.Address `json:"address"`
	AdminAuthority      types.Address `json:"admin_authority"`
	AdminDestination    types.Address `json:"admin_destination"`
	ExchangeNumerator   uint64        `json:"exchange_numerator"`
	ExchangeDenominator uint64        `json:"exchange_denominator"`
	MaxSupply           uint64        `json:"max_supply"`
	TotalMinted         uint64        `json:"total_minted"`
	TotalDeposited      uint64        `json:"total_deposited"`
	TotalWithdrawn      uint64        `json:"total_withdrawn"`
	TreasuryAddress     types.Address `json:"treasury_address"`
	TreasuryBalance     *uint64       `json:"treasury_balance,omitempty"`
	CreatedAt           string        `json:"created_at"`
}

// ChildResponse is the response body for a child account.
type ChildResponse struct {
	Address        types.Address `json:"address"`
	Vault          types.Address `json:"vault"`
	Authority      types.Address `json:"authority"`
	TotalDeposited uint64        `json:"total_deposited"`
	TotalPaidOut   uint64        `json:"total_paid_out"`
	Remaining      uint64        `json:"remaining"`
	CreatedAt      string        `json:"created_at"`
}

// PayoutResponse is the response body for a pending payout.
type PayoutResponse struct {
	Address     types.Address `json:"address"`
	Vault       types.Address `json:"vault"`
	Child       types.Address `json:"child"`
	Nonce       uint64        `json:"nonce"`
	Amount      uint64        `json:"amount"`
	Status      string        `json:"status"`
	RequestedAt string        `json:"requested_at"`
	ExecutedAt  *string       `json:"executed_at,omitempty"`
}

// MintResponse is the response body for a VAL mint.
type MintResponse struct {
	Address       types.Address `json:"address"`
	Vault         types.Address `json:"vault"`
	MintAuthority types.Address `json:"mint_authority"`
	Decimals      uint8         `json:"decimals"`
	Supply        uint64        `json:"supply"`
	CreatedAt     string        `json:"created_at"`
}

// PurchaseResponse is the response body for a purchase or a quote.
type PurchaseResponse struct {
	Mint        *types.Address `json:"mint,omitempty"`
	SolAmount   uint64         `json:"sol_amount"`
	ValAmount   uint64         `json:"val_amount"`
	TotalMinted uint64         `json:"total_minted"`
}

// BalanceResponse is the response body for a native or VAL balance.
type BalanceResponse struct {
	Address types.Address `json:"address"`
	Balance uint64        `json:"balance"`
}

// SessionResponse is the response body for an issued session token.
type SessionResponse struct {
	Token     string        `json:"token"`
	Subject   types.Address `json:"subject"`
	ExpiresAt string        `json:"expires_at"`
}

// ToVaultResponse converts a vault to its DTO.
func ToVaultResponse(v *domain.Vault) VaultResponse {
	return VaultResponse{
		Address:             v.Address,
		AdminAuthority:      v.AdminAuthority,
		AdminDestination:    v.AdminDestination,
		ExchangeNumerator:   v.ExchangeNumerator,
		ExchangeDenominator: v.ExchangeDenominator,
		MaxSupply:           v.MaxSupply,
		TotalMinted:         v.TotalMinted,
		TotalDeposited:      v.TotalDeposited,
		TotalWithdrawn:      v.TotalWithdrawn,
		TreasuryAddress:     v.TreasuryAddress,
		CreatedAt:           formatTime(v.CreatedAt),
	}
}

// ToVaultViewResponse converts a vault view, including the live treasury balance.
func ToVaultViewResponse(view *ports.VaultView) VaultResponse {
	resp := ToVaultResponse(view.Vault)
	balance := view.TreasuryBalance
	resp.TreasuryBalance = &balance
	return resp
}

// ToChildResponse converts a child account to its DTO.
func ToChildResponse(c *domain.ChildAccount) ChildResponse {
	remaining, _ := c.Remaining()
	return ChildResponse{
		Address:        c.Address,
		Vault:          c.Vault,
		Authority:      c.Authority,
		TotalDeposited: c.TotalDeposited,
		TotalPaidOut:   c.TotalPaidOut,
		Remaining:      remaining,
		CreatedAt:      formatTime(c.CreatedAt),
	}
}

// ToChildResponses converts a list of child accounts.
func ToChildResponses(children []domain.ChildAccount) []ChildResponse {
	out := make([]ChildResponse, 0, len(children))
	for i := range children {
		out = append(out, ToChildResponse(&children[i]))
	}
	return out
}

// ToPayoutResponse converts a pending payout to its DTO.
func ToPayoutResponse(p *domain.PendingPayout) PayoutResponse {
	resp := PayoutResponse{
		Address:     p.Address,
		Vault:       p.Vault,
		Child:       p.Child,
		Nonce:       p.Nonce,
		Amount:      p.Amount,
		Status:      string(p.Status()),
		RequestedAt: formatTime(p.RequestedAt),
	}
	if p.ExecutedAt != nil {
		s := formatTime(*p.ExecutedAt)
		resp.ExecutedAt = &s
	}
	return resp
}

// ToPayoutResponses converts a list of payouts.
func ToPayoutResponses(payouts []domain.PendingPayout) []PayoutResponse {
	out := make([]PayoutResponse, 0, len(payouts))
	for i := range payouts {
		out = append(out, ToPayoutResponse(&payouts[i]))
	}
	return out
}

// ToMintResponse converts a VAL mint to its DTO.
func ToMintResponse(m *domain.ValMint) MintResponse {
	return MintResponse{
		Address:       m.Address,
		Vault:         m.Vault,
		MintAuthority: m.MintAuthority,
		Decimals:      m.Decimals,
		Supply:        m.Supply,
		CreatedAt:     formatTime(m.CreatedAt),
	}
}

// ToPurchaseResponse converts a purchase result. The mint is omitted
// from quotes taken before the mint exists.
func ToPurchaseResponse(r *ports.PurchaseResult) PurchaseResponse {
	resp := PurchaseResponse{
		SolAmount:   r.SolAmount,
		ValAmount:   r.ValAmount,
		TotalMinted: r.TotalMinted,
	}
	if !r.Mint.IsZero() {
		mint := r.Mint
		resp.Mint = &mint
	}
	return resp
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
