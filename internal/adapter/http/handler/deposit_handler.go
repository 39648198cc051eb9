package handler

import (
	"treasury-ledger/internal/adapter/http/dto"
	"treasury-ledger/internal/adapter/http/middleware"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// DepositHandler handles registered deposits and child account reads.
type DepositHandler struct {
	depositSvc ports.DepositService
}

// NewDepositHandler creates a new DepositHandler.
func NewDepositHandler(depositSvc ports.DepositService) *DepositHandler {
	return &DepositHandler{depositSvc: depositSvc}
}

// Deposit handles POST /api/v1/vaults/:vault/deposits. The signer's child
// account is created on first deposit.
func (h *DepositHandler) Deposit(c *gin.Context) {
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

	child, err := h.depositSvc.DepositAndAutoRegister(c.Request.Context(), ports.DepositRequest{
		Depositor: depositor,
		Vault:     vaultAddr,
		Amount:    req.Amount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToChildResponse(child))
}

// GetChild handles GET /api/v1/vaults/:vault/children/:child.
func (h *DepositHandler) GetChild(c *gin.Context) {
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}
	childAddr, ok := pathAddress(c, "child")
	if !ok {
		return
	}

	child, err := h.depositSvc.GetChild(c.Request.Context(), vaultAddr, childAddr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ToChildResponse(child))
}

// ListChildren handles GET /api/v1/vaults/:vault/children.
func (h *DepositHandler) ListChildren(c *gin.Context) {
	vaultAddr, ok := pathAddress(c, "vault")
	if !ok {
		return
	}

	children, err := h.depositSvc.ListChildren(c.Request.Context(), vaultAddr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, dto.ToChildResponses(children), len(children))
}

// MyChildren handles GET /api/v1/me/children for the session subject.
func (h *DepositHandler) MyChildren(c *gin.Context) {
	subject, ok := middleware.Subject(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	children, err := h.depositSvc.ListChildrenByAuthority(c.Request.Context(), subject)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.List(c, dto.ToChildResponses(children), len(children))
}
