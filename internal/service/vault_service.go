package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/exchange"
	"treasury-ledger/internal/core/ledgermath"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/types"

	"github.com/rs/zerolog"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 500
)

// VaultServiceImpl implements ports.VaultService.
type VaultServiceImpl struct {
	ledger
}

// NewVaultService creates a new VaultServiceImpl.
func NewVaultService(repos Repositories, deriver domain.Deriver, notifier ports.Notifier, log zerolog.Logger) *VaultServiceImpl {
	return &VaultServiceImpl{ledger: newLedger(repos, deriver, notifier, log)}
}

// Initialize creates the admin's vault and binds its treasury address.
func (s *VaultServiceImpl) Initialize(ctx context.Context, req ports.InitializeVaultRequest) (*domain.Vault, error) {
	if err := exchange.ValidateRate(req.Rate); err != nil {
		return nil, exchangeErr(err)
	}

	vaultAddr, vaultBump, err := s.deriver.Vault(req.Admin)
	if err != nil {
		return nil, deriveErr(err)
	}
	treasuryAddr, treasuryBump, err := s.deriver.Treasury(vaultAddr)
	if err != nil {
		return nil, deriveErr(err)
	}

	vault := &domain.Vault{
		Address:             vaultAddr,
		AdminAuthority:      req.Admin,
		AdminDestination:    req.AdminDestination,
		ExchangeNumerator:   req.Rate.Numerator,
		ExchangeDenominator: req.Rate.Denominator,
		MaxSupply:           req.MaxSupply,
		CreatedAt:           s.now(),
		VaultBump:           vaultBump,
		TreasuryAddress:     treasuryAddr,
		TreasuryBump:        treasuryBump,
	}

	dbTx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := s.repos.Vaults.Create(ctx, dbTx, vault); err != nil {
		return nil, createErr("vault", err)
	}

	event := domain.NewLedgerEvent(domain.EventVaultInitialized, req.Admin, vaultAddr, vaultAddr, vault.CreatedAt)
	event.Details = map[string]string{
		"admin_destination": req.AdminDestination.String(),
		"numerator":         strconv.FormatUint(req.Rate.Numerator, 10),
		"denominator":       strconv.FormatUint(req.Rate.Denominator, 10),
		"max_supply":        strconv.FormatUint(req.MaxSupply, 10),
	}
	if err := s.record(ctx, dbTx, event); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, dbTx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("admin", req.Admin.String()).
		Str("vault", vaultAddr.String()).
		Str("treasury", treasuryAddr.String()).
		Uint64("max_supply", req.MaxSupply).
		Msg("vault initialized successfully")

	return vault, nil
}

// Deposit moves native funds into the treasury without registering a child
// account. Only the vault-wide deposit counter grows.
func (s *VaultServiceImpl) Deposit(ctx context.Context, req ports.DepositRequest) (*domain.Vault, error) {
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidDepositAmount()
	}

	dbTx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.vaultForUpdate(ctx, dbTx, req.Vault)
	if err != nil {
		return nil, err
	}

	newTotal, err := ledgermath.Add(vault.TotalDeposited, req.Amount)
	if err != nil {
		return nil, mathErr(err)
	}

	if err := s.repos.Native.Transfer(ctx, dbTx, req.Depositor, vault.TreasuryAddress, req.Amount); err != nil {
		return nil, transferErr(err, apperror.ErrInsufficientBalance())
	}

	vault.TotalDeposited = newTotal
	if err := s.repos.Vaults.Update(ctx, dbTx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vault: %w", err))
	}

	event := domain.NewLedgerEvent(domain.EventDepositMade, req.Depositor, vault.Address, vault.TreasuryAddress, s.now())
	event.Amount = req.Amount
	event.RunningTotal = newTotal
	if err := s.record(ctx, dbTx, event); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, dbTx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("depositor", req.Depositor.String()).
		Str("vault", vault.Address.String()).
		Uint64("amount", req.Amount).
		Uint64("total_deposited", newTotal).
		Msg("deposit processed successfully")

	return vault, nil
}

// AdminWithdraw moves treasury funds to the vault's fixed admin destination.
func (s *VaultServiceImpl) AdminWithdraw(ctx context.Context, req ports.WithdrawRequest) (*domain.Vault, error) {
	dbTx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.adminVaultForUpdate(ctx, dbTx, req.Caller, req.Vault)
	if err != nil {
		return nil, err
	}
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidWithdrawAmount()
	}

	balance, err := s.repos.Native.BalanceForUpdate(ctx, dbTx, vault.TreasuryAddress)
	if err != nil {
		return nil, lockErr("treasury", err)
	}
	if balance < req.Amount {
		return nil, apperror.ErrInsufficientFunds()
	}

	newTotal, err := ledgermath.Add(vault.TotalWithdrawn, req.Amount)
	if err != nil {
		return nil, mathErr(err)
	}

	if err := s.repos.Native.Transfer(ctx, dbTx, vault.TreasuryAddress, vault.AdminDestination, req.Amount); err != nil {
		return nil, transferErr(err, apperror.ErrInsufficientFunds())
	}

	vault.TotalWithdrawn = newTotal
	if err := s.repos.Vaults.Update(ctx, dbTx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vault: %w", err))
	}

	event := domain.NewLedgerEvent(domain.EventAdminWithdrawal, req.Caller, vault.Address, vault.AdminDestination, s.now())
	event.Amount = req.Amount
	event.RunningTotal = newTotal
	if err := s.record(ctx, dbTx, event); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, dbTx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("admin", req.Caller.String()).
		Str("vault", vault.Address.String()).
		Str("destination", vault.AdminDestination.String()).
		Uint64("amount", req.Amount).
		Uint64("total_withdrawn", newTotal).
		Msg("admin withdrawal processed successfully")

	return vault, nil
}

// UpdateExchangeRate replaces the VAL-per-native rate. Past purchases are unaffected.
func (s *VaultServiceImpl) UpdateExchangeRate(ctx context.Context, req ports.UpdateRateRequest) (*domain.Vault, error) {
	dbTx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.adminVaultForUpdate(ctx, dbTx, req.Caller, req.Vault)
	if err != nil {
		return nil, err
	}
	if err := exchange.ValidateRate(req.Rate); err != nil {
		return nil, exchangeErr(err)
	}

	old := vault.Rate()
	vault.ExchangeNumerator = req.Rate.Numerator
	vault.ExchangeDenominator = req.Rate.Denominator
	if err := s.repos.Vaults.Update(ctx, dbTx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vault: %w", err))
	}

	event := domain.NewLedgerEvent(domain.EventRateUpdated, req.Caller, vault.Address, vault.Address, s.now())
	event.Details = map[string]string{
		"old_numerator":   strconv.FormatUint(old.Numerator, 10),
		"old_denominator": strconv.FormatUint(old.Denominator, 10),
		"new_numerator":   strconv.FormatUint(req.Rate.Numerator, 10),
		"new_denominator": strconv.FormatUint(req.Rate.Denominator, 10),
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
		Uint64("numerator", req.Rate.Numerator).
		Uint64("denominator", req.Rate.Denominator).
		Msg("exchange rate updated successfully")

	return vault, nil
}

// GetVault returns the vault and its live treasury balance.
func (s *VaultServiceImpl) GetVault(ctx context.Context, addr types.Address) (*ports.VaultView, error) {
	vault, err := s.vault(ctx, addr)
	if err != nil {
		return nil, err
	}
	balance, err := s.repos.Native.Balance(ctx, vault.TreasuryAddress)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get treasury balance: %w", err))
	}
	return &ports.VaultView{Vault: vault, TreasuryBalance: balance}, nil
}

// ListEvents returns the vault's newest events. Limits outside (0, 500] fall back to 50.
func (s *VaultServiceImpl) ListEvents(ctx context.Context, addr types.Address, limit int) ([]domain.LedgerEvent, error) {
	if limit <= 0 || limit > maxEventLimit {
		limit = defaultEventLimit
	}
	if _, err := s.vault(ctx, addr); err != nil {
		return nil, err
	}
	events, err := s.repos.Events.ListByVault(ctx, addr, limit)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list events: %w", err))
	}
	return events, nil
}

// transferErr maps a failed native transfer. Insufficient funds become short.
func transferErr(err error, short *apperror.AppError) error {
	if errors.Is(err, ports.ErrInsufficientFunds) {
		return short
	}
	if errors.Is(err, ledgermath.ErrOverflow) {
		return apperror.ErrMathOverflow(err)
	}
	if errors.Is(err, ports.ErrLockTimeout) {
		return apperror.ErrLockTimeout(err)
	}
	return apperror.InternalError(fmt.Errorf("transfer: %w", err))
}
