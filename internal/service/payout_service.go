package service

import (
	"context"
	"fmt"
	"strconv"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ledgermath"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/types"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// PayoutServiceImpl implements ports.PayoutService.
//
// Requests are checked against the settled allowance only; outstanding
// requests are not reserved. Execution re-checks the allowance, so
// over-committed requests fail at settlement instead of over-paying.
type PayoutServiceImpl struct {
	ledger
}

// NewPayoutService creates a new PayoutServiceImpl.
func NewPayoutService(repos Repositories, deriver domain.Deriver, notifier ports.Notifier, log zerolog.Logger) *PayoutServiceImpl {
	return &PayoutServiceImpl{ledger: newLedger(repos, deriver, notifier, log)}
}

// RequestPayout approves a payout from a child's allowance without moving funds.
func (s *PayoutServiceImpl) RequestPayout(ctx context.Context, req ports.RequestPayoutRequest) (*domain.PendingPayout, error) {
	dbTx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.adminVaultForUpdate(ctx, dbTx, req.Caller, req.Vault)
	if err != nil {
		return nil, err
	}
	child, err := s.childForUpdate(ctx, dbTx, vault.Address, req.Child)
	if err != nil {
		return nil, err
	}

	remaining, err := child.Remaining()
	if err != nil {
		return nil, mathErr(err)
	}
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	if req.Amount > remaining {
		return nil, apperror.ErrExceedsAllowedPayout()
	}

	payoutAddr, bump, err := s.deriver.Payout(vault.Address, child.Address, req.Nonce)
	if err != nil {
		return nil, deriveErr(err)
	}

	payout := &domain.PendingPayout{
		Address:     payoutAddr,
		Vault:       vault.Address,
		Child:       child.Address,
		Nonce:       req.Nonce,
		Amount:      req.Amount,
		RequestedAt: s.now(),
		Bump:        bump,
	}
	if err := s.repos.Payouts.Create(ctx, dbTx, payout); err != nil {
		return nil, createErr("payout", err)
	}

	event := domain.NewLedgerEvent(domain.EventPayoutRequested, req.Caller, vault.Address, payoutAddr, payout.RequestedAt)
	event.Amount = req.Amount
	event.RunningTotal = child.TotalPaidOut
	event.Details = map[string]string{
		"child": child.Address.String(),
		"nonce": strconv.FormatUint(req.Nonce, 10),
	}
	if err := s.record(ctx, dbTx, event); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, dbTx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("admin", req.Caller.String()).
		Str("vault", vault.Address.String()).
		Str("child", child.Address.String()).
		Str("payout", payoutAddr.String()).
		Uint64("nonce", req.Nonce).
		Uint64("amount", req.Amount).
		Msg("payout requested successfully")

	return payout, nil
}

// ExecutePayout settles a requested payout to the child's authority.
func (s *PayoutServiceImpl) ExecutePayout(ctx context.Context, req ports.ExecutePayoutRequest) (*domain.PendingPayout, error) {
	dbTx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.adminVaultForUpdate(ctx, dbTx, req.Caller, req.Vault)
	if err != nil {
		return nil, err
	}
	child, err := s.childForUpdate(ctx, dbTx, vault.Address, req.Child)
	if err != nil {
		return nil, err
	}

	payout, err := s.repos.Payouts.GetForUpdate(ctx, dbTx, req.Payout)
	if err != nil {
		return nil, lockErr("payout", err)
	}
	if payout == nil {
		return nil, apperror.ErrNotFound("payout")
	}
	if !payout.BelongsTo(vault.Address, child.Address) {
		return nil, apperror.ErrUnauthorized()
	}
	if err := s.deriver.VerifyPayout(payout); err != nil {
		s.log.Warn().Err(err).Str("payout", payout.Address.String()).Msg("payout record does not match its derived address")
		return nil, apperror.ErrUnauthorized()
	}
	if req.Recipient != child.Authority {
		return nil, apperror.ErrUnauthorized()
	}
	if payout.Executed {
		return nil, apperror.ErrAlreadyExecuted()
	}

	remaining, err := child.Remaining()
	if err != nil {
		return nil, mathErr(err)
	}
	if payout.Amount > remaining {
		return nil, apperror.ErrExceedsAllowedPayout()
	}

	balance, err := s.repos.Native.BalanceForUpdate(ctx, dbTx, vault.TreasuryAddress)
	if err != nil {
		return nil, lockErr("treasury", err)
	}
	if balance < payout.Amount {
		return nil, apperror.ErrInvalidAmount()
	}

	paidOut, err := ledgermath.Add(child.TotalPaidOut, payout.Amount)
	if err != nil {
		return nil, mathErr(err)
	}
	withdrawn, err := ledgermath.Add(vault.TotalWithdrawn, payout.Amount)
	if err != nil {
		return nil, mathErr(err)
	}

	if err := s.repos.Native.Transfer(ctx, dbTx, vault.TreasuryAddress, req.Recipient, payout.Amount); err != nil {
		return nil, transferErr(err, apperror.ErrInvalidAmount())
	}

	child.TotalPaidOut = paidOut
	if err := s.repos.Children.UpdateTotals(ctx, dbTx, child); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update child account: %w", err))
	}
	vault.TotalWithdrawn = withdrawn
	if err := s.repos.Vaults.Update(ctx, dbTx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vault: %w", err))
	}

	executedAt := s.now()
	if err := s.repos.Payouts.MarkExecuted(ctx, dbTx, payout.Address, executedAt); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark payout executed: %w", err))
	}
	payout.Executed = true
	payout.ExecutedAt = &executedAt

	event := domain.NewLedgerEvent(domain.EventPayoutExecuted, req.Caller, vault.Address, payout.Address, executedAt)
	event.Amount = payout.Amount
	event.RunningTotal = paidOut
	event.Details = map[string]string{
		"child":     child.Address.String(),
		"recipient": req.Recipient.String(),
		"nonce":     strconv.FormatUint(payout.Nonce, 10),
	}
	if err := s.record(ctx, dbTx, event); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, dbTx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("admin", req.Caller.String()).
		Str("vault", vault.Address.String()).
		Str("child", child.Address.String()).
		Str("recipient", req.Recipient.String()).
		Uint64("amount", payout.Amount).
		Uint64("child_total_paid_out", paidOut).
		Msg("payout executed successfully")

	return payout, nil
}

// GetPayout returns a payout of vault.
func (s *PayoutServiceImpl) GetPayout(ctx context.Context, vault, addr types.Address) (*domain.PendingPayout, error) {
	payout, err := s.repos.Payouts.GetByAddress(ctx, addr)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get payout: %w", err))
	}
	if payout == nil || payout.Vault != vault {
		return nil, apperror.ErrNotFound("payout")
	}
	return payout, nil
}

// ListPayouts returns every payout requested for child, ordered by nonce.
func (s *PayoutServiceImpl) ListPayouts(ctx context.Context, vault, child types.Address) ([]domain.PendingPayout, error) {
	payouts, err := s.repos.Payouts.ListByChild(ctx, vault, child)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list payouts: %w", err))
	}
	return payouts, nil
}

func (s *PayoutServiceImpl) childForUpdate(ctx context.Context, tx pgx.Tx, vault, addr types.Address) (*domain.ChildAccount, error) {
	child, err := s.repos.Children.GetForUpdate(ctx, tx, addr)
	if err != nil {
		return nil, lockErr("child account", err)
	}
	if child == nil {
		return nil, apperror.ErrNotFound("child account")
	}
	if !child.BelongsTo(vault) {
		return nil, apperror.ErrUnauthorized()
	}
	if err := s.deriver.VerifyChild(child); err != nil {
		s.log.Warn().Err(err).Str("child", child.Address.String()).Msg("child account does not match its derived address")
		return nil, apperror.ErrUnauthorized()
	}
	return child, nil
}
