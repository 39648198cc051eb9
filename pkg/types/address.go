package types

import (
	"database/sql/driver"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// AddressSize is the length of an address in bytes.
const AddressSize = 32

// Address identifies a user, a derived ledger record or a program.
// User addresses are BLAKE3(compressed public key); record addresses are
// derived from seeds and never correspond to a signing key.
type Address [AddressSize]byte

// ZeroAddress is the all-zero address.
var ZeroAddress Address

// IsZero returns true if the address is all zeros.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// String returns the lowercase hex form of the address.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// Bytes returns a copy of the address as a byte slice.
func (a Address) Bytes() []byte {
	b := make([]byte, AddressSize)
	copy(b, a[:])
	return b
}

// ParseAddress decodes a 64-character hex string, with or without a 0x prefix.
func ParseAddress(s string) (Address, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address hex: %w", err)
	}
	if len(b) != AddressSize {
		return Address{}, fmt.Errorf("address must be %d bytes, got %d", AddressSize, len(b))
	}
	var a Address
	copy(a[:], b)
	return a, nil
}

// MustParseAddress is ParseAddress that panics on error. Intended for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// MarshalJSON encodes the address as a hex string.
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

// UnmarshalJSON decodes a hex string into an address.
func (a *Address) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Value implements driver.Valuer; addresses are stored as hex text.
func (a Address) Value() (driver.Value, error) {
	return a.String(), nil
}

// Scan implements sql.Scanner.
func (a *Address) Scan(src any) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseAddress(v)
		if err != nil {
			return err
		}
		*a = parsed
	case []byte:
		parsed, err := ParseAddress(string(v))
		if err != nil {
			return err
		}
		*a = parsed
	case Address:
		*a = v
	case nil:
		*a = Address{}
	default:
		return fmt.Errorf("cannot scan %T into Address", src)
	}
	return nil
}
