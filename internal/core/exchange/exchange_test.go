package exchange

import (
	"math"
	"testing"

	"treasury-ledger/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestQuote(t *testing.T) {
	tests := []struct {
		name    string
		sol     uint64
		rate    domain.ExchangeRate
		want    uint64
		wantErr error
	}{
		{"two for one", 100, domain.ExchangeRate{Numerator: 2, Denominator: 1}, 200, nil},
		{"rounds down", 7, domain.ExchangeRate{Numerator: 3, Denominator: 2}, 10, nil},
		{"rounds to zero", 1, domain.ExchangeRate{Numerator: 1, Denominator: 3}, 0, nil},
		{"wide product", math.MaxUint64, domain.ExchangeRate{Numerator: 3, Denominator: 4}, 3<<62 - 1, nil},
		{"zero amount", 0, domain.ExchangeRate{Numerator: 2, Denominator: 1}, 0, ErrInvalidAmount},
		{"zero denominator", 10, domain.ExchangeRate{Numerator: 2, Denominator: 0}, 0, ErrInvalidDenominator},
		{"result overflow", math.MaxUint64, domain.ExchangeRate{Numerator: 2, Denominator: 1}, 0, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Quote(tt.sol, tt.rate)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCheckSupply(t *testing.T) {
	tests := []struct {
		name    string
		minted  uint64
		val     uint64
		max     uint64
		want    uint64
		wantErr error
	}{
		{"under cap", 0, 200, 1000, 200, nil},
		{"exactly at cap", 800, 200, 1000, 1000, nil},
		{"one over cap", 801, 200, 1000, 0, ErrExceedsMaxSupply},
		{"overflow", math.MaxUint64, 1, math.MaxUint64, 0, ErrOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CheckSupply(tt.minted, tt.val, tt.max)
			assert.Equal(t, tt.wantErr, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateRate(t *testing.T) {
	assert.NoError(t, ValidateRate(domain.ExchangeRate{Numerator: 1, Denominator: 1}))
	assert.Equal(t, ErrInvalidNumerator, ValidateRate(domain.ExchangeRate{Numerator: 0, Denominator: 1}))
	assert.Equal(t, ErrInvalidDenominator, ValidateRate(domain.ExchangeRate{Numerator: 1, Denominator: 0}))
}
