package domain

import (
	"encoding/binary"

	"treasury-ledger/pkg/crypto"
	"treasury-ledger/pkg/types"
)

// Seed prefixes for every derived record.
const (
	SeedVault         = "vault"
	SeedTreasury      = "treasury"
	SeedChild         = "child"
	SeedPayout        = "payout"
	SeedValMint       = "val_mint"
	SeedMintAuthority = "mint_authority"
)

// Deriver computes record addresses under one program ID.
type Deriver struct {
	program types.Address
}

// NewDeriver creates a Deriver scoped to program.
func NewDeriver(program types.Address) Deriver {
	return Deriver{program: program}
}

// Program returns the program ID.
func (d Deriver) Program() types.Address {
	return d.program
}

func (d Deriver) Vault(admin types.Address) (types.Address, uint8, error) {
	return crypto.DeriveAddress(d.program, []byte(SeedVault), admin[:])
}

func (d Deriver) Treasury(vault types.Address) (types.Address, uint8, error) {
	return crypto.DeriveAddress(d.program, []byte(SeedTreasury), vault[:])
}

func (d Deriver) Child(vault, depositor types.Address) (types.Address, uint8, error) {
	return crypto.DeriveAddress(d.program, []byte(SeedChild), vault[:], depositor[:])
}

// Payout derives from the nonce encoded as 8 little-endian bytes.
func (d Deriver) Payout(vault, child types.Address, nonce uint64) (types.Address, uint8, error) {
	n := nonceSeed(nonce)
	return crypto.DeriveAddress(d.program, []byte(SeedPayout), vault[:], child[:], n[:])
}

// VerifyChild checks that c is stored at the address its vault, authority and bump derive.
func (d Deriver) VerifyChild(c *ChildAccount) error {
	return crypto.VerifyDerived(d.program, c.Address, c.Bump, []byte(SeedChild), c.Vault[:], c.Authority[:])
}

// VerifyPayout checks that p is stored at the address its vault, child, nonce and bump derive.
func (d Deriver) VerifyPayout(p *PendingPayout) error {
	n := nonceSeed(p.Nonce)
	return crypto.VerifyDerived(d.program, p.Address, p.Bump, []byte(SeedPayout), p.Vault[:], p.Child[:], n[:])
}

func nonceSeed(nonce uint64) [8]byte {
	var n [8]byte
	binary.LittleEndian.PutUint64(n[:], nonce)
	return n
}

func (d Deriver) ValMint(vault types.Address) (types.Address, uint8, error) {
	return crypto.DeriveAddress(d.program, []byte(SeedValMint), vault[:])
}

func (d Deriver) MintAuthority(vault types.Address) (types.Address, uint8, error) {
	return crypto.DeriveAddress(d.program, []byte(SeedMintAuthority), vault[:])
}
