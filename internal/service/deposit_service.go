package service

import (
	"context"
	"fmt"

	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ledgermath"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/types"

	"github.com/rs/zerolog"
)

// DepositServiceImpl implements ports.DepositService.
type DepositServiceImpl struct {
	ledger
}

// NewDepositService creates a new DepositServiceImpl.
func NewDepositService(repos Repositories, deriver domain.Deriver, notifier ports.Notifier, log zerolog.Logger) *DepositServiceImpl {
	return &DepositServiceImpl{ledger: newLedger(repos, deriver, notifier, log)}
}

// DepositAndAutoRegister records a contribution against the depositor's child
// account, creating the account on first touch.
func (s *DepositServiceImpl) DepositAndAutoRegister(ctx context.Context, req ports.DepositRequest) (*domain.ChildAccount, error) {
	if req.Amount == 0 {
		return nil, apperror.ErrInvalidDepositAmount()
	}

	childAddr, childBump, err := s.deriver.Child(req.Vault, req.Depositor)
	if err != nil {
		return nil, deriveErr(err)
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

	child, err := s.repos.Children.GetForUpdate(ctx, dbTx, childAddr)
	if err != nil {
		return nil, lockErr("child account", err)
	}
	created := child == nil
	if created {
		child = domain.NewChildAccount(childAddr, vault.Address, req.Depositor, childBump, s.now())
	}

	childTotal, err := ledgermath.Add(child.TotalDeposited, req.Amount)
	if err != nil {
		return nil, mathErr(err)
	}
	vaultTotal, err := ledgermath.Add(vault.TotalDeposited, req.Amount)
	if err != nil {
		return nil, mathErr(err)
	}

	if err := s.repos.Native.Transfer(ctx, dbTx, req.Depositor, vault.TreasuryAddress, req.Amount); err != nil {
		return nil, transferErr(err, apperror.ErrInsufficientBalance())
	}

	child.TotalDeposited = childTotal
	vault.TotalDeposited = vaultTotal
	if created {
		if err := s.repos.Children.Create(ctx, dbTx, child); err != nil {
			return nil, createErr("child account", err)
		}
	} else if err := s.repos.Children.UpdateTotals(ctx, dbTx, child); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update child account: %w", err))
	}
	if err := s.repos.Vaults.Update(ctx, dbTx, vault); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("update vault: %w", err))
	}

	event := domain.NewLedgerEvent(domain.EventChildDepositMade, req.Depositor, vault.Address, child.Address, s.now())
	event.Amount = req.Amount
	event.RunningTotal = childTotal
	if created {
		event.Details = map[string]string{"registered": "true"}
	}
	if err := s.record(ctx, dbTx, event); err != nil {
		return nil, err
	}
	if err := s.commit(ctx, dbTx, event); err != nil {
		return nil, err
	}

	s.log.Info().
		Str("depositor", req.Depositor.String()).
		Str("vault", vault.Address.String()).
		Str("child", child.Address.String()).
		Bool("registered", created).
		Uint64("amount", req.Amount).
		Uint64("child_total_deposited", childTotal).
		Msg("child deposit processed successfully")

	return child, nil
}

// GetChild returns a child account of vault.
func (s *DepositServiceImpl) GetChild(ctx context.Context, vault, childAddr types.Address) (*domain.ChildAccount, error) {
	child, err := s.repos.Children.GetByAddress(ctx, childAddr)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get child account: %w", err))
	}
	if child == nil || !child.BelongsTo(vault) {
		return nil, apperror.ErrNotFound("child account")
	}
	return child, nil
}

// ListChildren returns every child account registered under vault.
func (s *DepositServiceImpl) ListChildren(ctx context.Context, vault types.Address) ([]domain.ChildAccount, error) {
	if _, err := s.vault(ctx, vault); err != nil {
		return nil, err
	}
	children, err := s.repos.Children.ListByVault(ctx, vault)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list child accounts: %w", err))
	}
	return children, nil
}

// ListChildrenByAuthority returns the child accounts a depositor owns across vaults.
func (s *DepositServiceImpl) ListChildrenByAuthority(ctx context.Context, authority types.Address) ([]domain.ChildAccount, error) {
	children, err := s.repos.Children.ListByAuthority(ctx, authority)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("list child accounts: %w", err))
	}
	return children, nil
}
