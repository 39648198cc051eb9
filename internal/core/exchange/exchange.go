// Package exchange prices VAL purchases and enforces the supply cap.
// It is pure arithmetic: no state is read or written here.
package exchange

import (
	"errors"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ledgermath"
)

var (
	ErrInvalidAmount      = errors.New("purchase amount must be greater than zero")
	ErrInvalidNumerator   = errors.New("exchange rate numerator must be greater than zero")
	ErrInvalidDenominator = errors.New("exchange rate denominator must be greater than zero")
	ErrOverflow           = errors.New("token amount overflows")
	ErrExceedsMaxSupply   = errors.New("purchase exceeds maximum supply")
)

// Quote converts solAmount native units into floor(solAmount*num/den) tokens.
func Quote(solAmount uint64, rate domain.ExchangeRate) (uint64, error) {
	if solAmount == 0 {
		return 0, ErrInvalidAmount
	}
	if rate.Denominator == 0 {
		return 0, ErrInvalidDenominator
	}
	val, err := ledgermath.MulDiv(solAmount, rate.Numerator, rate.Denominator)
	if err != nil {
		return 0, ErrOverflow
	}
	return val, nil
}

// CheckSupply returns totalMinted+val, failing when the sum overflows or
// exceeds maxSupply. A total exactly equal to maxSupply is accepted.
func CheckSupply(totalMinted, val, maxSupply uint64) (uint64, error) {
	newTotal, err := ledgermath.Add(totalMinted, val)
	if err != nil {
		return 0, ErrOverflow
	}
	if newTotal > maxSupply {
		return 0, ErrExceedsMaxSupply
	}
	return newTotal, nil
}

// ValidateRate checks a proposed exchange rate.
func ValidateRate(rate domain.ExchangeRate) error {
	if rate.Numerator == 0 {
		return ErrInvalidNumerator
	}
	if rate.Denominator == 0 {
		return ErrInvalidDenominator
	}
	return nil
}
