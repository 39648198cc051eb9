package domain

import (
	"time"

	"treasury-ledger/pkg/types"
)

// ValTokenDecimals is the decimal precision of the VAL token.
const ValTokenDecimals uint8 = 9

// ValMint is the fungible token mint owned by a vault. The mint authority
// is a derived address, so only the ledger can mint.
type ValMint struct {
	Address       types.Address `json:"address"`
	Vault         types.Address `json:"vault"`
	MintAuthority types.Address `json:"mint_authority"`
	AuthorityBump uint8         `json:"authority_bump"`
	MintBump      uint8         `json:"mint_bump"`
	Decimals      uint8         `json:"decimals"`
	Supply        uint64        `json:"supply"`
	CreatedAt     time.Time     `json:"created_at"`
}
