package handler

import (
	"treasury-ledger/internal/adapter/http/dto"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// PayoutHandler handles the two-phase payout endpoints.
type PayoutHandler struct {
	payoutSvc ports.PayoutService
}

// NewPayoutHandler creates a new PayoutHandler.
func NewPayoutHandler(payoutSvc ports.PayoutService) *PayoutHandler {
	return &PayoutHandler{payoutSvc: payoutSvc}
}

// Request handles POST /api/v1/vaults/:vault/payouts.
func (h *PayoutHandler) Request(c *gin.Context) {
	caller, ok := signer(c)
	if !ok {
		return
	}
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	var req dto.RequestPayoutRequest
	if !bindJSON(c, &req) {
		return
	}

	payout, err := h.payoutSvc.RequestPayout(c.Request.Context(), ports.RequestPayoutRequest{
		Caller: caller,
		Vault:  vaultAddr,
		Child:  dto.ParseAddress(req.Child),
		Amount: req.Amount,
		Nonce:  req.Nonce,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToPayoutResponse(payout))
}

// Execute handles POST /api/v1/vaults/:vault/payouts/:payout/execute.
func (h *PayoutHandler) Execute(c *gin.Context) {
	caller, ok := signer(c)
	if !ok {
		return
	}
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}
	payoutAddr, ok := pathAddress(c, "payout")
	if !ok {
		return
	}

	var req dto.ExecutePayoutRequest
	if !bindJSON(c, &req) {
		return
	}

	payout, err := h.payoutSvc.ExecutePayout(c.Request.Context(), ports.ExecutePayoutRequest{
		Caller:    caller,
		Vault:     vaultAddr,
		Child:     dto.ParseAddress(req.Child),
		Payout:    payoutAddr,
		Recipient: dto.ParseAddress(req.Recipient),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPayoutResponse(payout))
}

// Get handles GET /api/v1/vaults/:vault/payouts/:payout.
func (h *PayoutHandler) Get(c *gin.Context) {
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}
	payoutAddr, ok := pathAddress(c, "payout")
	if !ok {
		return
	}

	payout, err := h.payoutSvc.GetPayout(c.Request.Context(), vaultAddr, payoutAddr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPayoutResponse(payout))
}

// ListByChild handles GET /api/v1/vaults/:vault/children/:child/payouts.
func (h *PayoutHandler) ListByChild(c *gin.Context) {
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}
	childAddr, ok := pathAddress(c, "child")
	if !ok {
		return
	}

	payouts, err := h.payoutSvc.ListPayouts(c.Request.Context(), vaultAddr, childAddr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, dto.ToPayoutResponses(payouts), len(payouts))
}
