// Package crypto provides the hashing, address derivation and signature
// primitives used to identify ledger records and authenticate callers.
package crypto

import (
	"treasury-ledger/pkg/types"

	"github.com/zeebo/blake3"
)

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) types.Hash {
	return blake3.Sum256(data)
}

// HashParts hashes the concatenation of parts without building an intermediate buffer.
func HashParts(parts ...[]byte) types.Hash {
	h := blake3.New()
	for _, p := range parts {
		_, _ = h.Write(p)
	}
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out
}

// AddressFromPubKey derives a user address from a compressed public key.
// Address = BLAKE3(compressed_pubkey).
func AddressFromPubKey(pubKey []byte) types.Address {
	return types.Address(Hash(pubKey))
}
