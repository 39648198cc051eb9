package ports

import "errors"

var (
	// ErrAlreadyExists is returned by Create methods when a record already
	// occupies the derived address.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrInsufficientFunds is returned by NativeLedger.Transfer when the
	// source balance cannot cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrLockTimeout is returned by ForUpdate reads when the row lock could
	// not be acquired within the store's lock timeout.
	ErrLockTimeout = errors.New("lock wait timed out")
)
