// Package ledgermath implements checked uint64 arithmetic for ledger counters.
// Every operation reports overflow, underflow or division by zero as an error
// instead of wrapping.
package ledgermath

import (
	"errors"
	"math/bits"
)

var (
	ErrOverflow     = errors.New("arithmetic overflow")
	ErrDivideByZero = errors.New("division by zero")
)

// Add returns a+b or ErrOverflow.
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b or ErrOverflow when b > a.
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}
	return diff, nil
}

// Mul returns a*b or ErrOverflow.
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// Div returns floor(a/b) or ErrDivideByZero.
func Div(a, b uint64) (uint64, error) {
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

// MulDiv returns floor(a*b/d) computed with a 128-bit intermediate, so the
// product may exceed 64 bits as long as the quotient fits.
func MulDiv(a, b, d uint64) (uint64, error) {
	if d == 0 {
		return 0, ErrDivideByZero
	}
	hi, lo := bits.Mul64(a, b)
	if hi >= d {
		return 0, ErrOverflow
	}
	quo, _ := bits.Div64(hi, lo, d)
	return quo, nil
}
