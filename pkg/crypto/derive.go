package crypto

import (
	"errors"
	"fmt"

	"treasury-ledger/pkg/types"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// MaxSeeds is the maximum number of seeds accepted by DeriveAddress.
	MaxSeeds = 16
	// MaxSeedLen is the maximum length of a single seed in bytes.
	MaxSeedLen = 32

	derivationMarker = "ProgramDerivedAddress"
)

var (
	ErrMaxSeedLengthExceeded = errors.New("seed exceeds maximum length")
	ErrTooManySeeds          = errors.New("too many seeds")
	ErrNoViableBump          = errors.New("unable to find a viable bump")
	ErrOnCurve               = errors.New("derived address is a valid public key")
)

// CreateAddress hashes seeds, the bump byte and the program ID into a
// candidate address. It fails with ErrOnCurve when the candidate could be
// controlled by a private key.
func CreateAddress(programID types.Address, bump uint8, seeds ...[]byte) (types.Address, error) {
	if len(seeds) > MaxSeeds-1 {
		return types.Address{}, ErrTooManySeeds
	}
	parts := make([][]byte, 0, len(seeds)+3)
	for _, s := range seeds {
		if len(s) > MaxSeedLen {
			return types.Address{}, ErrMaxSeedLengthExceeded
		}
		parts = append(parts, s)
	}
	parts = append(parts, []byte{bump}, programID[:], []byte(derivationMarker))

	candidate := types.Address(HashParts(parts...))
	if IsOnCurve(candidate) {
		return types.Address{}, ErrOnCurve
	}
	return candidate, nil
}

// DeriveAddress searches bumps from 255 down to 0 and returns the first
// off-curve address together with its bump. The result is a pure function
// of programID and seeds.
func DeriveAddress(programID types.Address, seeds ...[]byte) (types.Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr, err := CreateAddress(programID, uint8(bump), seeds...)
		if errors.Is(err, ErrOnCurve) {
			continue
		}
		if err != nil {
			return types.Address{}, 0, err
		}
		return addr, uint8(bump), nil
	}
	return types.Address{}, 0, ErrNoViableBump
}

// VerifyDerived checks that addr was produced from seeds with the stored bump.
func VerifyDerived(programID, addr types.Address, bump uint8, seeds ...[]byte) error {
	expected, err := CreateAddress(programID, bump, seeds...)
	if err != nil {
		return fmt.Errorf("recreate derived address: %w", err)
	}
	if expected != addr {
		return fmt.Errorf("derived address mismatch: have %s, want %s", addr, expected)
	}
	return nil
}

// IsOnCurve reports whether addr is the x-coordinate of a secp256k1 point,
// i.e. whether some private key could sign for it.
func IsOnCurve(addr types.Address) bool {
	var compressed [secp256k1.PubKeyBytesLenCompressed]byte
	compressed[0] = secp256k1.PubKeyFormatCompressedEven
	copy(compressed[1:], addr[:])
	_, err := secp256k1.ParsePubKey(compressed[:])
	return err == nil
}
