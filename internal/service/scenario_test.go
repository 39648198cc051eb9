package service

import (
	"context"
	"testing"

	"treasury-ledger/internal/adapter/storage/memory"
	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/crypto"
	"treasury-ledger/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLedger struct {
	store    *memory.Store
	repos    Repositories
	vaults   *VaultServiceImpl
	deposits *DepositServiceImpl
	payouts  *PayoutServiceImpl
	exchange *ExchangeServiceImpl
	accounts *AccountServiceImpl
}

func newTestLedger(t *testing.T) *testLedger {
	t.Helper()
	store := memory.NewStore()
	repos := Repositories{
		Vaults:     memory.NewVaultRepo(store),
		Children:   memory.NewChildAccountRepo(store),
		Payouts:    memory.NewPayoutRepo(store),
		Mints:      memory.NewMintRepo(store),
		Events:     memory.NewEventRepo(store),
		Native:     memory.NewNativeLedger(store),
		Tokens:     memory.NewTokenLedger(store),
		Transactor: store,
	}
	deriver := domain.NewDeriver(types.Address(crypto.Hash([]byte("treasury-ledger/test"))))
	notifier := NewEventNotifier(newTestLogger())
	log := newTestLogger()

	return &testLedger{
		store:    store,
		repos:    repos,
		vaults:   NewVaultService(repos, deriver, notifier, log),
		deposits: NewDepositService(repos, deriver, notifier, log),
		payouts:  NewPayoutService(repos, deriver, notifier, log),
		exchange: NewExchangeService(repos, deriver, notifier, log),
		accounts: NewAccountService(repos.Native, store, log),
	}
}

func user(t *testing.T) types.Address {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return key.Address()
}

func (l *testLedger) fund(t *testing.T, addr types.Address, amount uint64) {
	t.Helper()
	_, err := l.accounts.Faucet(context.Background(), addr, amount)
	require.NoError(t, err)
}

func (l *testLedger) balance(t *testing.T, addr types.Address) uint64 {
	t.Helper()
	bal, err := l.accounts.Balance(context.Background(), addr)
	require.NoError(t, err)
	return bal
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperror.CodeOf(err), "unexpected error: %v", err)
}

func (l *testLedger) initVault(t *testing.T, admin, dest types.Address, num, den, maxSupply uint64) *domain.Vault {
	t.Helper()
	v, err := l.vaults.Initialize(context.Background(), ports.InitializeVaultRequest{
		Admin:            admin,
		AdminDestination: dest,
		Rate:             domain.ExchangeRate{Numerator: num, Denominator: den},
		MaxSupply:        maxSupply,
	})
	require.NoError(t, err)
	return v
}

func TestScenario_EndToEnd(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, dest, buyer, depositor := user(t), user(t), user(t), user(t)

	vault := l.initVault(t, admin, dest, 2, 1, 1000)
	_, err := l.exchange.InitializeValMint(ctx, admin, vault.Address)
	require.NoError(t, err)

	l.fund(t, buyer, 1_000)
	l.fund(t, depositor, 1_000)

	// Buyer sends 100 lamports at 2/1.
	purchase, err := l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 100})
	require.NoError(t, err)
	assert.Equal(t, uint64(200), purchase.ValAmount)
	assert.Equal(t, uint64(200), purchase.TotalMinted)

	tokens, err := l.exchange.TokenBalance(ctx, vault.Address, buyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), tokens)

	// Depositor deposits 500.
	child, err := l.deposits.DepositAndAutoRegister(ctx, ports.DepositRequest{Depositor: depositor, Vault: vault.Address, Amount: 500})
	require.NoError(t, err)
	assert.Equal(t, uint64(500), child.TotalDeposited)
	assert.Equal(t, depositor, child.Authority)

	// Payout of 500 at nonce 1 fits the allowance.
	first, err := l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{
		Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 500, Nonce: 1,
	})
	require.NoError(t, err)

	// A second request is checked against settled payouts only.
	second, err := l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{
		Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 1, Nonce: 2,
	})
	require.NoError(t, err)

	// Executing the first settles exactly 500 to the depositor.
	before := l.balance(t, depositor)
	executed, err := l.payouts.ExecutePayout(ctx, ports.ExecutePayoutRequest{
		Caller: admin, Vault: vault.Address, Child: child.Address, Payout: first.Address, Recipient: depositor,
	})
	require.NoError(t, err)
	assert.True(t, executed.Executed)
	assert.Equal(t, before+500, l.balance(t, depositor))

	// Re-executing fails and moves nothing.
	_, err = l.payouts.ExecutePayout(ctx, ports.ExecutePayoutRequest{
		Caller: admin, Vault: vault.Address, Child: child.Address, Payout: first.Address, Recipient: depositor,
	})
	assertCode(t, err, apperror.CodeAlreadyExecuted)
	assert.Equal(t, before+500, l.balance(t, depositor))

	// The over-committed second request fails at settlement.
	_, err = l.payouts.ExecutePayout(ctx, ports.ExecutePayoutRequest{
		Caller: admin, Vault: vault.Address, Child: child.Address, Payout: second.Address, Recipient: depositor,
	})
	assertCode(t, err, apperror.CodeExceedsAllowedPayout)

	// And a fresh request now sees remaining == 0.
	_, err = l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{
		Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 1, Nonce: 3,
	})
	assertCode(t, err, apperror.CodeExceedsAllowedPayout)

	got, err := l.deposits.GetChild(ctx, vault.Address, child.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(500), got.TotalPaidOut)
	assert.LessOrEqual(t, got.TotalPaidOut, got.TotalDeposited)

	view, err := l.vaults.GetVault(ctx, vault.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(200), view.Vault.TotalMinted)
	assert.Equal(t, uint64(500), view.Vault.TotalDeposited)
	assert.Equal(t, uint64(500), view.Vault.TotalWithdrawn)
	assert.Equal(t, uint64(100), view.TreasuryBalance)

	events, err := l.vaults.ListEvents(ctx, vault.Address, 0)
	require.NoError(t, err)
	require.Len(t, events, 7)
	assert.Equal(t, domain.EventPayoutExecuted, events[0].Kind)
	assert.Equal(t, domain.EventVaultInitialized, events[len(events)-1].Kind)
}

func TestScenario_InitializeTwiceFails(t *testing.T) {
	l := newTestLedger(t)
	admin, dest := user(t), user(t)

	first := l.initVault(t, admin, dest, 1, 1, 10)

	_, err := l.vaults.Initialize(context.Background(), ports.InitializeVaultRequest{
		Admin: admin, AdminDestination: user(t), Rate: domain.ExchangeRate{Numerator: 5, Denominator: 1}, MaxSupply: 99,
	})
	assertCode(t, err, apperror.CodeAlreadyExists)

	view, err := l.vaults.GetVault(context.Background(), first.Address)
	require.NoError(t, err)
	assert.Equal(t, dest, view.Vault.AdminDestination, "existing vault must not be overwritten")
	assert.Equal(t, uint64(10), view.Vault.MaxSupply)
}

func TestScenario_InitializeRejectsZeroRate(t *testing.T) {
	l := newTestLedger(t)

	_, err := l.vaults.Initialize(context.Background(), ports.InitializeVaultRequest{
		Admin: user(t), Rate: domain.ExchangeRate{Numerator: 0, Denominator: 1},
	})
	assertCode(t, err, apperror.CodeInvalidNumerator)

	_, err = l.vaults.Initialize(context.Background(), ports.InitializeVaultRequest{
		Admin: user(t), Rate: domain.ExchangeRate{Numerator: 1, Denominator: 0},
	})
	assertCode(t, err, apperror.CodeInvalidDenominator)
}

func TestScenario_MaxSupplyBoundary(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, buyer := user(t), user(t)

	vault := l.initVault(t, admin, admin, 2, 1, 1000)
	_, err := l.exchange.InitializeValMint(ctx, admin, vault.Address)
	require.NoError(t, err)
	l.fund(t, buyer, 10_000)

	res, err := l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 500})
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), res.TotalMinted, "reaching the cap exactly succeeds")

	buyerBefore := l.balance(t, buyer)
	_, err = l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 1})
	assertCode(t, err, apperror.CodeExceedsMaxSupply)
	assert.Equal(t, buyerBefore, l.balance(t, buyer), "rejected purchase moves no funds")

	_, err = l.exchange.QuoteVal(ctx, vault.Address, 1)
	assertCode(t, err, apperror.CodeExceedsMaxSupply)
}

func TestScenario_FlooredQuote(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, buyer := user(t), user(t)

	vault := l.initVault(t, admin, admin, 3, 2, 1_000_000)

	quote, err := l.exchange.QuoteVal(ctx, vault.Address, 7)
	require.NoError(t, err)
	assert.Equal(t, uint64(10), quote.ValAmount)
	assert.True(t, quote.Mint.IsZero())

	_, err = l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 7})
	assertCode(t, err, apperror.CodeMintNotInitialized)

	mint, err := l.exchange.InitializeValMint(ctx, admin, vault.Address)
	require.NoError(t, err)
	assert.Equal(t, domain.ValTokenDecimals, mint.Decimals)

	_, err = l.exchange.InitializeValMint(ctx, admin, vault.Address)
	assertCode(t, err, apperror.CodeAlreadyExists)

	l.fund(t, buyer, 7)
	res, err := l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 7})
	require.NoError(t, err)
	assert.Equal(t, uint64(10), res.ValAmount)
	assert.Equal(t, mint.Address, res.Mint)
}

func TestScenario_AdminOnlyOperations(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, dest, intruder, depositor := user(t), user(t), user(t), user(t)

	vault := l.initVault(t, admin, dest, 1, 1, 100)
	l.fund(t, depositor, 100)
	child, err := l.deposits.DepositAndAutoRegister(ctx, ports.DepositRequest{Depositor: depositor, Vault: vault.Address, Amount: 50})
	require.NoError(t, err)

	_, err = l.vaults.AdminWithdraw(ctx, ports.WithdrawRequest{Caller: intruder, Vault: vault.Address, Amount: 10})
	assertCode(t, err, apperror.CodeUnauthorized)

	_, err = l.vaults.UpdateExchangeRate(ctx, ports.UpdateRateRequest{Caller: intruder, Vault: vault.Address, Rate: domain.ExchangeRate{Numerator: 9, Denominator: 1}})
	assertCode(t, err, apperror.CodeUnauthorized)

	_, err = l.exchange.InitializeValMint(ctx, intruder, vault.Address)
	assertCode(t, err, apperror.CodeUnauthorized)

	_, err = l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{Caller: intruder, Vault: vault.Address, Child: child.Address, Amount: 10, Nonce: 1})
	assertCode(t, err, apperror.CodeUnauthorized)

	p, err := l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 10, Nonce: 1})
	require.NoError(t, err)

	_, err = l.payouts.ExecutePayout(ctx, ports.ExecutePayoutRequest{Caller: intruder, Vault: vault.Address, Child: child.Address, Payout: p.Address, Recipient: depositor})
	assertCode(t, err, apperror.CodeUnauthorized)

	// Funds may only go to the child's authority.
	_, err = l.payouts.ExecutePayout(ctx, ports.ExecutePayoutRequest{Caller: admin, Vault: vault.Address, Child: child.Address, Payout: p.Address, Recipient: intruder})
	assertCode(t, err, apperror.CodeUnauthorized)

	view, err := l.vaults.GetVault(ctx, vault.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), view.Vault.ExchangeNumerator)
	assert.Equal(t, uint64(50), view.TreasuryBalance)
}

func TestScenario_PayoutValidation(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, depositor := user(t), user(t)

	vault := l.initVault(t, admin, admin, 1, 1, 100)
	other := l.initVault(t, user(t), admin, 1, 1, 100)
	l.fund(t, depositor, 100)
	child, err := l.deposits.DepositAndAutoRegister(ctx, ports.DepositRequest{Depositor: depositor, Vault: vault.Address, Amount: 40})
	require.NoError(t, err)

	_, err = l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 0, Nonce: 1})
	assertCode(t, err, apperror.CodeInvalidAmount)

	_, err = l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 41, Nonce: 1})
	assertCode(t, err, apperror.CodeExceedsAllowedPayout)

	_, err = l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 40, Nonce: 7})
	require.NoError(t, err)

	_, err = l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 1, Nonce: 7})
	assertCode(t, err, apperror.CodeAlreadyExists)

	// A child of another vault cannot be targeted.
	otherChild, err := l.deposits.DepositAndAutoRegister(ctx, ports.DepositRequest{Depositor: depositor, Vault: other.Address, Amount: 10})
	require.NoError(t, err)
	_, err = l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{Caller: admin, Vault: vault.Address, Child: otherChild.Address, Amount: 1, Nonce: 1})
	assertCode(t, err, apperror.CodeUnauthorized)

	list, err := l.payouts.ListPayouts(ctx, vault.Address, child.Address)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	mine, err := l.deposits.ListChildrenByAuthority(ctx, depositor)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestScenario_ExecuteNeedsTreasuryFunds(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, dest, depositor := user(t), user(t), user(t)

	vault := l.initVault(t, admin, dest, 1, 1, 100)
	l.fund(t, depositor, 100)
	child, err := l.deposits.DepositAndAutoRegister(ctx, ports.DepositRequest{Depositor: depositor, Vault: vault.Address, Amount: 100})
	require.NoError(t, err)

	p, err := l.payouts.RequestPayout(ctx, ports.RequestPayoutRequest{Caller: admin, Vault: vault.Address, Child: child.Address, Amount: 80, Nonce: 1})
	require.NoError(t, err)

	// The admin drains the treasury to the destination first.
	_, err = l.vaults.AdminWithdraw(ctx, ports.WithdrawRequest{Caller: admin, Vault: vault.Address, Amount: 50})
	require.NoError(t, err)
	assert.Equal(t, uint64(50), l.balance(t, dest))

	_, err = l.payouts.ExecutePayout(ctx, ports.ExecutePayoutRequest{Caller: admin, Vault: vault.Address, Child: child.Address, Payout: p.Address, Recipient: depositor})
	assertCode(t, err, apperror.CodeInvalidAmount)

	got, err := l.payouts.GetPayout(ctx, vault.Address, p.Address)
	require.NoError(t, err)
	assert.False(t, got.Executed)
}

func TestScenario_AdminWithdraw(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, dest, donor := user(t), user(t), user(t)

	vault := l.initVault(t, admin, dest, 1, 1, 100)
	l.fund(t, donor, 300)

	_, err := l.vaults.Deposit(ctx, ports.DepositRequest{Depositor: donor, Vault: vault.Address, Amount: 0})
	assertCode(t, err, apperror.CodeInvalidDepositAmount)

	updated, err := l.vaults.Deposit(ctx, ports.DepositRequest{Depositor: donor, Vault: vault.Address, Amount: 200})
	require.NoError(t, err)
	assert.Equal(t, uint64(200), updated.TotalDeposited)

	children, err := l.deposits.ListChildren(ctx, vault.Address)
	require.NoError(t, err)
	assert.Empty(t, children, "plain deposits register no child account")

	_, err = l.vaults.AdminWithdraw(ctx, ports.WithdrawRequest{Caller: admin, Vault: vault.Address, Amount: 0})
	assertCode(t, err, apperror.CodeInvalidWithdrawAmount)

	_, err = l.vaults.AdminWithdraw(ctx, ports.WithdrawRequest{Caller: admin, Vault: vault.Address, Amount: 201})
	assertCode(t, err, apperror.CodeInsufficientFunds)

	v, err := l.vaults.AdminWithdraw(ctx, ports.WithdrawRequest{Caller: admin, Vault: vault.Address, Amount: 200})
	require.NoError(t, err)
	assert.Equal(t, uint64(200), v.TotalWithdrawn)
	assert.Equal(t, uint64(200), l.balance(t, dest))
	assert.Zero(t, l.balance(t, admin), "funds never go to the admin identity")
}

func TestScenario_DepositShortfallRollsBack(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, depositor := user(t), user(t)

	vault := l.initVault(t, admin, admin, 1, 1, 100)
	l.fund(t, depositor, 10)

	_, err := l.deposits.DepositAndAutoRegister(ctx, ports.DepositRequest{Depositor: depositor, Vault: vault.Address, Amount: 11})
	assertCode(t, err, apperror.CodeInsufficientBalance)

	children, err := l.deposits.ListChildren(ctx, vault.Address)
	require.NoError(t, err)
	assert.Empty(t, children, "failed first deposit must not register the child")

	_, err = l.deposits.DepositAndAutoRegister(ctx, ports.DepositRequest{Depositor: depositor, Vault: user(t), Amount: 1})
	assertCode(t, err, apperror.CodeNotFound)

	_, err = l.deposits.DepositAndAutoRegister(ctx, ports.DepositRequest{Depositor: depositor, Vault: vault.Address, Amount: 0})
	assertCode(t, err, apperror.CodeInvalidDepositAmount)
}

func TestScenario_RateUpdateAffectsLaterPurchases(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, buyer := user(t), user(t)

	vault := l.initVault(t, admin, admin, 1, 1, 1_000)
	_, err := l.exchange.InitializeValMint(ctx, admin, vault.Address)
	require.NoError(t, err)
	l.fund(t, buyer, 100)

	_, err = l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 10})
	require.NoError(t, err)

	_, err = l.vaults.UpdateExchangeRate(ctx, ports.UpdateRateRequest{Caller: admin, Vault: vault.Address, Rate: domain.ExchangeRate{Numerator: 0, Denominator: 1}})
	assertCode(t, err, apperror.CodeInvalidNumerator)

	_, err = l.vaults.UpdateExchangeRate(ctx, ports.UpdateRateRequest{Caller: admin, Vault: vault.Address, Rate: domain.ExchangeRate{Numerator: 5, Denominator: 1}})
	require.NoError(t, err)

	res, err := l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 10})
	require.NoError(t, err)
	assert.Equal(t, uint64(50), res.ValAmount)
	assert.Equal(t, uint64(60), res.TotalMinted)

	events, err := l.vaults.ListEvents(ctx, vault.Address, 10)
	require.NoError(t, err)
	rate := events[1]
	require.Equal(t, domain.EventRateUpdated, rate.Kind)
	assert.Equal(t, "1", rate.Details["old_numerator"])
	assert.Equal(t, "5", rate.Details["new_numerator"])
}

func TestScenario_PurchaseFlooringToZeroRejected(t *testing.T) {
	ctx := context.Background()
	l := newTestLedger(t)
	admin, buyer := user(t), user(t)

	vault := l.initVault(t, admin, admin, 1, 2, 1_000)
	_, err := l.exchange.InitializeValMint(ctx, admin, vault.Address)
	require.NoError(t, err)
	l.fund(t, buyer, 10)

	quote, err := l.exchange.QuoteVal(ctx, vault.Address, 1)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), quote.ValAmount)

	_, err = l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 1})
	assertCode(t, err, apperror.CodeInvalidAmount)
	assert.Equal(t, uint64(10), l.balance(t, buyer))
	assert.Equal(t, uint64(0), l.balance(t, vault.TreasuryAddress))

	res, err := l.exchange.BuyVal(ctx, ports.BuyValRequest{Buyer: buyer, Vault: vault.Address, SolAmount: 2})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), res.ValAmount)
	assert.Equal(t, uint64(8), l.balance(t, buyer))
}
