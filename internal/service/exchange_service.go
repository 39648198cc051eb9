package service

import (
	"context"
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

// ExchangeServiceImpl implements ports.ExchangeService.
type ExchangeServiceImpl struct {
	ledger
}

// NewExchangeService creates a new ExchangeServiceImpl.
func NewExchangeService(repos Repositories, deriver domain.Deriver, notifier ports.Notifier, log zerolog.Logger) *ExchangeServiceImpl {
	return &ExchangeServiceImpl{ledger: newLedger(repos, deriver, notifier, log)}
}

// InitializeValMint creates the vault's VAL mint and its mint authority.
func (s *ExchangeServiceImpl) InitializeValMint(ctx context.Context, caller, vaultAddr types.Address) (*domain.ValMint, error) {
	dbTx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.adminVaultForUpdate(ctx, dbTx, caller, vaultAddr)
	if err != nil {
		return nil, err
	}

	mintAddr, mintBump, err := s.deriver.ValMint(vault.Address)
	if err != nil {
		return nil, deriveErr(err)
	}
	authority, authorityBump, err := s.deriver.MintAuthority(vault.Address)
	if err != nil {
		return nil, deriveErr(err)
	}

	mint := &domain.ValMint{
		Address:       mintAddr,
		Vault:         vault.Address,
		MintAuthority: authority,
		AuthorityBump: authorityBump,
		MintBump:      mintBump,
		Decimals:      domain.ValTokenDecimals,
		CreatedAt:     s.now(),
	}
	if err := s.repos.Mints.Create(ctx, dbTx, mint); err != nil {
		return nil, createErr("val mint", err)
	}

	event := domain.NewLedgerEvent(domain.EventValMintInitialized, caller, vault.Address, mintAddr, mint.CreatedAt)
	event.Details = map[string]string{
		"mint_authority": authority.String(),
		"decimals":       strconv.Itoa(int(mint.Decimals)),
	}
	if err := s.record(ctx, dbTx, event); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, dbTx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("admin", caller.String()).
		Str("vault", vault.Address.String()).
		Str("mint", mintAddr.String()).
		Msg("val mint initialized successfully")

	return mint, nil
}

// BuyVal sells VAL at the vault's current rate. The quote and the supply
// cap are checked before any funds move.
func (s *ExchangeServiceImpl) BuyVal(ctx context.Context, req ports.BuyValRequest) (*ports.PurchaseResult, error) {
	dbTx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	vault, err := s.vaultForUpdate(ctx, dbTx, req.Vault)
	if err != nil {
		return nil, err
	}
	mint, err := s.repos.Mints.GetByVaultForUpdate(ctx, dbTx, vault.Address)
	if err != nil {
		return nil, lockErr("val mint", err)
	}
	if mint == nil {
		return nil, apperror.ErrMintNotInitialized()
	}

	val, err := exchange.Quote(req.SolAmount, vault.Rate())
	if err != nil {
		return nil, exchangeErr(err)
	}
	// A purchase that floors to zero tokens would take lamports for nothing.
	if val == 0 {
		return nil, apperror.ErrInvalidAmount()
	}
	newTotal, err := exchange.CheckSupply(vault.TotalMinted, val, vault.MaxSupply)
	if err != nil {
		return nil, exchangeErr(err)
	}
	newSupply, err := ledgermath.Add(mint.Supply, val)
	if err != nil {
		return nil, mathErr(err)
	}

	if err := s.repos.Native.Transfer(ctx, dbTx, req.Buyer, vault.TreasuryAddress, req.SolAmount); err != nil {
		return nil, transferErr(err, apperror.ErrInsufficientBalance())
	}
	if err := s.repos.Tokens.MintTo(ctx, dbTx, mint.Address, req.Buyer, val); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mint val: %w", err))
	}

	vault.TotalMinted = newTotal
	if err := s.repos.Vaults.Update(ctx, dbTx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vault: %w", err))
	}
	if err := s.repos.Mints.UpdateSupply(ctx, dbTx, mint.Address, newSupply); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update mint supply: %w", err))
	}

	event := domain.NewLedgerEvent(domain.EventValPurchased, req.Buyer, vault.Address, mint.Address, s.now())
	event.Amount = val
	event.RunningTotal = newTotal
	event.Details = map[string]string{"sol_amount": strconv.FormatUint(req.SolAmount, 10)}
	if err := s.record(ctx, dbTx, event); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, dbTx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("buyer", req.Buyer.String()).
		Str("vault", vault.Address.String()).
		Uint64("sol_amount", req.SolAmount).
		Uint64("val_amount", val).
		Uint64("total_minted", newTotal).
		Msg("val purchase processed successfully")

	return &ports.PurchaseResult{
		Mint:        mint.Address,
		SolAmount:   req.SolAmount,
		ValAmount:   val,
		TotalMinted: newTotal,
	}, nil
}

// QuoteVal previews a purchase at the current rate without changing state.
func (s *ExchangeServiceImpl) QuoteVal(ctx context.Context, vaultAddr types.Address, solAmount uint64) (*ports.PurchaseResult, error) {
	vault, err := s.vault(ctx, vaultAddr)
	if err != nil {
		return nil, err
	}
	val, err := exchange.Quote(solAmount, vault.Rate())
	if err != nil {
		return nil, exchangeErr(err)
	}
	newTotal, err := exchange.CheckSupply(vault.TotalMinted, val, vault.MaxSupply)
	if err != nil {
		return nil, exchangeErr(err)
	}

	result := &ports.PurchaseResult{SolAmount: solAmount, ValAmount: val, TotalMinted: newTotal}
	mint, err := s.repos.Mints.GetByVault(ctx, vault.Address)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get val mint: %w", err))
	}
	if mint != nil {
		result.Mint = mint.Address
	}
	return result, nil
}

// TokenBalance returns owner's VAL balance in the vault's mint.
func (s *ExchangeServiceImpl) TokenBalance(ctx context.Context, vaultAddr, owner types.Address) (uint64, error) {
	mint, err := s.repos.Mints.GetByVault(ctx, vaultAddr)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get val mint: %w", err))
	}
	if mint == nil {
		return 0, apperror.ErrMintNotInitialized()
	}
	bal, err := s.repos.Tokens.Balance(ctx, mint.Address, owner)
	if err != nil {
		return 0, apperror.InternalError(fmt.Errorf("get token balance: %w", err))
	}
	return bal, nil
}
