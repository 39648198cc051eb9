package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // Wrapped internal error (not exposed to client)
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Error codes. Exported so callers and tests can compare without string literals.
const (
	CodeUnauthorized          = "AUTH_001"
	CodeInvalidToken          = "AUTH_002"
	CodeInvalidPublicKey      = "SEC_001"
	CodeInvalidSignature      = "SEC_002"
	CodeTimestampExpired      = "SEC_003"
	CodeNonceUsed             = "SEC_004"
	CodeInvalidAmount         = "VLT_001"
	CodeInvalidDepositAmount  = "VLT_002"
	CodeInvalidWithdrawAmount = "VLT_003"
	CodeInvalidNumerator      = "VLT_004"
	CodeInvalidDenominator    = "VLT_005"
	CodeInsufficientBalance   = "VLT_006"
	CodeInsufficientFunds     = "VLT_007"
	CodeAlreadyExists         = "VLT_008"
	CodeNotFound              = "VLT_009"
	CodeExceedsAllowedPayout  = "PAY_001"
	CodeAlreadyExecuted       = "PAY_002"
	CodeExceedsMaxSupply      = "MNT_001"
	CodeMintNotInitialized    = "MNT_002"
	CodeMathOverflow          = "MTH_001"
	CodeRateLimitExceeded     = "RATE_001"
	CodeInternal              = "SYS_001"
	CodeLockTimeout           = "SYS_002"
	CodeFeatureDisabled       = "SYS_003"
)

// ---- Authorization (AUTH) ----

func ErrUnauthorized() *AppError {
	return New(CodeUnauthorized, "Caller is not authorized for this operation", http.StatusForbidden)
}

func ErrInvalidToken() *AppError {
	return New(CodeInvalidToken, "Invalid or expired token", http.StatusUnauthorized)
}

// ---- Request Authentication (SEC) ----

func ErrInvalidPublicKey() *AppError {
	return New(CodeInvalidPublicKey, "Missing or invalid public key", http.StatusUnauthorized)
}

func ErrInvalidSignature() *AppError {
	return New(CodeInvalidSignature, "Invalid signature", http.StatusUnauthorized)
}

func ErrTimestampExpired() *AppError {
	return New(CodeTimestampExpired, "Request timestamp expired", http.StatusForbidden)
}

func ErrNonceUsed() *AppError {
	return New(CodeNonceUsed, "Nonce has already been used", http.StatusForbidden)
}

// ---- Vault & Treasury (VLT) ----

func ErrInvalidAmount() *AppError {
	return New(CodeInvalidAmount, "Invalid amount", http.StatusBadRequest)
}

func ErrInvalidDepositAmount() *AppError {
	return New(CodeInvalidDepositAmount, "Deposit amount must be greater than zero", http.StatusBadRequest)
}

func ErrInvalidWithdrawAmount() *AppError {
	return New(CodeInvalidWithdrawAmount, "Withdraw amount must be greater than zero", http.StatusBadRequest)
}

func ErrInvalidNumerator() *AppError {
	return New(CodeInvalidNumerator, "Exchange rate numerator must be greater than zero", http.StatusBadRequest)
}

func ErrInvalidDenominator() *AppError {
	return New(CodeInvalidDenominator, "Exchange rate denominator must be greater than zero", http.StatusBadRequest)
}

func ErrInsufficientBalance() *AppError {
	return New(CodeInsufficientBalance, "Insufficient balance in vault", http.StatusUnprocessableEntity)
}

func ErrInsufficientFunds() *AppError {
	return New(CodeInsufficientFunds, "Insufficient funds", http.StatusPaymentRequired)
}

func ErrAlreadyExists(entity string) *AppError {
	return New(CodeAlreadyExists, fmt.Sprintf("%s already exists", entity), http.StatusConflict)
}

func ErrNotFound(entity string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- Payouts (PAY) ----

func ErrExceedsAllowedPayout() *AppError {
	return New(CodeExceedsAllowedPayout, "Payout exceeds remaining deposited amount", http.StatusUnprocessableEntity)
}

func ErrAlreadyExecuted() *AppError {
	return New(CodeAlreadyExecuted, "Payout has already been executed", http.StatusConflict)
}

// ---- Token Mint (MNT) ----

func ErrExceedsMaxSupply() *AppError {
	return New(CodeExceedsMaxSupply, "Purchase exceeds maximum token supply", http.StatusUnprocessableEntity)
}

func ErrMintNotInitialized() *AppError {
	return New(CodeMintNotInitialized, "Token mint has not been initialized for this vault", http.StatusConflict)
}

// ---- Arithmetic (MTH) ----

func ErrMathOverflow(err error) *AppError {
	return Wrap(CodeMathOverflow, "Arithmetic overflow", http.StatusUnprocessableEntity, err)
}

// ---- Rate Limiting (RATE) ----

func ErrRateLimitExceeded() *AppError {
	return New(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests)
}

// ---- System & Infrastructure (SYS) ----

func ErrDatabaseError(err error) *AppError {
	return Wrap(CodeInternal, "Internal database error", http.StatusInternalServerError, err)
}

func ErrLockTimeout(err error) *AppError {
	return Wrap(CodeLockTimeout, "Lock acquisition timeout", http.StatusServiceUnavailable, err)
}

func ErrFeatureDisabled(feature string) *AppError {
	return New(CodeFeatureDisabled, fmt.Sprintf("%s is disabled", feature), http.StatusNotFound)
}

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap(CodeInternal, "Internal server error", http.StatusInternalServerError, err)
}

// Validation returns a VLT_001-style validation error.
func Validation(message string) *AppError {
	return New(CodeInvalidAmount, message, http.StatusBadRequest)
}
