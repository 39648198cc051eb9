package handler

import (
	"treasury-ledger/internal/adapter/http/dto"
	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// VaultHandler handles the vault lifecycle and admin endpoints.
type VaultHandler struct {
	vaultSvc ports.VaultService
	journal  ports.EventJournal
}

// NewVaultHandler creates a new VaultHandler. journal may be nil.
func NewVaultHandler(vaultSvc ports.VaultService, journal ports.EventJournal) *VaultHandler {
	return &VaultHandler{vaultSvc: vaultSvc, journal: journal}
}

// Initialize handles POST /api/v1/vaults. The signer becomes the admin.
func (h *VaultHandler) Initialize(c *gin.Context) {
	admin, ok := signer(c)
	if !ok {
		return
	}

	var req dto.InitializeVaultRequest
	if !bindJSON(c, &req) {
		return
	}

	vault, err := h.vaultSvc.Initialize(c.Request.Context(), ports.InitializeVaultRequest{
		Admin:            admin,
		AdminDestination: dto.ParseAddress(req.AdminDestination),
		Rate:             domain.ExchangeRate{Numerator: req.Numerator, Denominator: req.Denominator},
		MaxSupply:        req.MaxSupply,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToVaultResponse(vault))
}

// Get handles GET /api/v1/vaults/:vault.
func (h *VaultHandler) Get(c *gin.Context) {
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	view, err := h.vaultSvc.GetVault(c.Request.Context(), vaultAddr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToVaultViewResponse(view))
}

// Contribute handles POST /api/v1/vaults/:vault/contributions, a deposit
// that registers no child account.
func (h *VaultHandler) Contribute(c *gin.Context) {
	depositor, ok := signer(c)
	if !ok {
		return
	}
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	var req dto.AmountRequest
	if !bindJSON(c, &req) {
		return
	}

	vault, err := h.vaultSvc.Deposit(c.Request.Context(), ports.DepositRequest{
		Depositor: depositor,
		Vault:     vaultAddr,
		Amount:    req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToVaultResponse(vault))
}

// Withdraw handles POST /api/v1/vaults/:vault/withdrawals.
func (h *VaultHandler) Withdraw(c *gin.Context) {
	caller, ok := signer(c)
	if !ok {
		return
	}
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	var req dto.AmountRequest
	if !bindJSON(c, &req) {
		return
	}

	vault, err := h.vaultSvc.AdminWithdraw(c.Request.Context(), ports.WithdrawRequest{
		Caller: caller,
		Vault:  vaultAddr,
		Amount: req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToVaultResponse(vault))
}

// UpdateRate handles PUT /api/v1/vaults/:vault/exchange-rate.
func (h *VaultHandler) UpdateRate(c *gin.Context) {
	caller, ok := signer(c)
	if !ok {
		return
	}
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	var req dto.UpdateRateRequest
	if !bindJSON(c, &req) {
		return
	}

	vault, err := h.vaultSvc.UpdateExchangeRate(c.Request.Context(), ports.UpdateRateRequest{
		Caller: caller,
		Vault:  vaultAddr,
		Rate:   domain.ExchangeRate{Numerator: req.Numerator, Denominator: req.Denominator},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToVaultResponse(vault))
}

// ListEvents handles GET /api/v1/vaults/:vault/events?limit=.
func (h *VaultHandler) ListEvents(c *gin.Context) {
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	events, err := h.vaultSvc.ListEvents(c.Request.Context(), vaultAddr, queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, events, len(events))
}

// Journal handles GET /api/v1/vaults/:vault/journal?limit=, reading the
// local event journal instead of the database.
func (h *VaultHandler) Journal(c *gin.Context) {
	if h.journal == nil {
		response.Error(c, apperror.ErrFeatureDisabled("event journal"))
		return
	}
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	events, err := h.journal.ListByVault(c.Request.Context(), vaultAddr, queryInt(c, "limit", 0))
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.List(c, events, len(events))
}
