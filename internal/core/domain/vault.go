package domain

import (
	"time"

	"treasury-ledger/pkg/types"
)

// Vault is the per-admin treasury record. It is created once per admin
// and its address is derived from ("vault", admin).
type Vault struct {
	Address             types.Address `json:"address"`
	AdminAuthority      types.Address `json:"admin_authority"`
	AdminDestination    types.Address `json:"admin_destination"`
	ExchangeNumerator   uint64        `json:"exchange_numerator"`
	ExchangeDenominator uint64        `json:"exchange_denominator"`
	MaxSupply           uint64        `json:"max_supply"`
	TotalMinted         uint64        `json:"total_minted"`
	TotalDeposited      uint64        `json:"total_deposited"`
	TotalWithdrawn      uint64        `json:"total_withdrawn"`
	CreatedAt           time.Time     `json:"created_at"`
	VaultBump           uint8         `json:"vault_bump"`
	TreasuryAddress     types.Address `json:"treasury_address"`
	TreasuryBump        uint8         `json:"treasury_bump"`
}

// IsAdmin reports whether addr is the vault's admin authority.
func (v *Vault) IsAdmin(addr types.Address) bool {
	return v.AdminAuthority == addr
}

// Rate returns the current exchange rate.
func (v *Vault) Rate() ExchangeRate {
	return ExchangeRate{Numerator: v.ExchangeNumerator, Denominator: v.ExchangeDenominator}
}

// ExchangeRate is a rational price: tokens = floor(native * Numerator / Denominator).
type ExchangeRate struct {
	Numerator   uint64 `json:"numerator"`
	Denominator uint64 `json:"denominator"`
}

// Valid reports whether both components are positive.
func (r ExchangeRate) Valid() bool {
	return r.Numerator > 0 && r.Denominator > 0
}
