package handler

import (
	"strconv"

	"treasury-ledger/internal/adapter/http/dto"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// ExchangeHandler handles the VAL mint and purchase endpoints.
type ExchangeHandler struct {
	exchangeSvc ports.ExchangeService
}

// NewExchangeHandler creates a new ExchangeHandler.
func NewExchangeHandler(exchangeSvc ports.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{exchangeSvc: exchangeSvc}
}

// InitializeMint handles POST /api/v1/vaults/:vault/mint.
func (h *ExchangeHandler) InitializeMint(c *gin.Context) {
	caller, ok := signer(c)
	if !ok {
		return
	}
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	mint, err := h.exchangeSvc.InitializeValMint(c.Request.Context(), caller, vaultAddr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToMintResponse(mint))
}

// Buy handles POST /api/v1/vaults/:vault/purchases.
func (h *ExchangeHandler) Buy(c *gin.Context) {
	buyer, ok := signer(c)
	if !ok {
		return
	}
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	var req dto.BuyValRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.exchangeSvc.BuyVal(c.Request.Context(), ports.BuyValRequest{
		Buyer:     buyer,
		Vault:     vaultAddr,
		SolAmount: req.SolAmount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.ToPurchaseResponse(result))
}

// Quote handles GET /api/v1/vaults/:vault/quote?sol_amount=.
func (h *ExchangeHandler) Quote(c *gin.Context) {
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}
	solAmount, err := strconv.ParseUint(c.Query("sol_amount"), 10, 64)
	if err != nil {
		response.Error(c, apperror.Validation("sol_amount must be an unsigned integer"))
		return
	}

	result, err := h.exchangeSvc.QuoteVal(c.Request.Context(), vaultAddr, solAmount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToPurchaseResponse(result))
}

// TokenBalance handles GET /api/v1/vaults/:vault/tokens/:owner.
func (h *ExchangeHandler) TokenBalance(c *gin.Context) {
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}
	owner, ok := pathAddress(c, "owner")
	if !ok {
		return
	}

	balance, err := h.exchangeSvc.TokenBalance(c.Request.Context(), vaultAddr, owner)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Address: owner, Balance: balance})
}
