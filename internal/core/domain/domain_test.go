package domain

import (
	"testing"
	"time"

	"treasury-ledger/internal/core/ledgermath"
	"treasury-ledger/pkg/crypto"
	"treasury-ledger/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addr(label string) types.Address {
	return types.Address(crypto.Hash([]byte(label)))
}

func TestVault_IsAdmin(t *testing.T) {
	v := &Vault{AdminAuthority: addr("admin")}
	assert.True(t, v.IsAdmin(addr("admin")))
	assert.False(t, v.IsAdmin(addr("mallory")))
}

func TestExchangeRate_Valid(t *testing.T) {
	tests := []struct {
		name string
		rate ExchangeRate
		want bool
	}{
		{"positive", ExchangeRate{2, 1}, true},
		{"zero numerator", ExchangeRate{0, 1}, false},
		{"zero denominator", ExchangeRate{1, 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rate.Valid())
		})
	}
}

func TestChildAccount_Remaining(t *testing.T) {
	tests := []struct {
		name      string
		deposited uint64
		paid      uint64
		want      uint64
		wantErr   error
	}{
		{"nothing paid", 500, 0, 500, nil},
		{"partially paid", 500, 200, 300, nil},
		{"fully paid", 500, 500, 0, nil},
		{"corrupt counters", 100, 200, 0, ledgermath.ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &ChildAccount{TotalDeposited: tt.deposited, TotalPaidOut: tt.paid}
			got, err := c.Remaining()
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewChildAccount_ZeroCounters(t *testing.T) {
	now := time.Now().UTC()
	c := NewChildAccount(addr("child"), addr("vault"), addr("user"), 254, now)
	assert.Zero(t, c.TotalDeposited)
	assert.Zero(t, c.TotalPaidOut)
	assert.True(t, c.BelongsTo(addr("vault")))
	assert.False(t, c.BelongsTo(addr("other")))
	assert.Equal(t, uint8(254), c.Bump)
}

func TestPendingPayout_Status(t *testing.T) {
	p := &PendingPayout{Vault: addr("vault"), Child: addr("child")}
	assert.Equal(t, PayoutStatusRequested, p.Status())
	p.Executed = true
	assert.Equal(t, PayoutStatusExecuted, p.Status())

	assert.True(t, p.BelongsTo(addr("vault"), addr("child")))
	assert.False(t, p.BelongsTo(addr("vault"), addr("other")))
}

func TestDeriver_Addresses(t *testing.T) {
	d := NewDeriver(addr("program"))
	admin := addr("admin")

	vault, vaultBump, err := d.Vault(admin)
	require.NoError(t, err)
	require.NoError(t, crypto.VerifyDerived(d.Program(), vault, vaultBump, []byte(SeedVault), admin[:]))

	treasury, _, err := d.Treasury(vault)
	require.NoError(t, err)
	assert.NotEqual(t, vault, treasury)

	child, _, err := d.Child(vault, addr("depositor"))
	require.NoError(t, err)
	other, _, err := d.Child(vault, addr("depositor-2"))
	require.NoError(t, err)
	assert.NotEqual(t, child, other)

	p1, _, err := d.Payout(vault, child, 1)
	require.NoError(t, err)
	p1again, _, err := d.Payout(vault, child, 1)
	require.NoError(t, err)
	p2, _, err := d.Payout(vault, child, 2)
	require.NoError(t, err)
	assert.Equal(t, p1, p1again)
	assert.NotEqual(t, p1, p2)

	mint, _, err := d.ValMint(vault)
	require.NoError(t, err)
	authority, _, err := d.MintAuthority(vault)
	require.NoError(t, err)
	assert.NotEqual(t, mint, authority)
}

func TestNewLedgerEvent(t *testing.T) {
	now := time.Now().UTC()
	e := NewLedgerEvent(EventPayoutExecuted, addr("admin"), addr("vault"), addr("payout"), now)
	assert.NotEqual(t, [16]byte{}, [16]byte(e.ID))
	assert.Equal(t, EventPayoutExecuted, e.Kind)
	assert.Equal(t, now, e.CreatedAt)
}
