package handler

import (
	"net/http"
	"time"

	"treasury-ledger/internal/adapter/http/dto"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler handles native balances, the faucet and session issuance.
type AccountHandler struct {
	accountSvc ports.AccountService
	tokenSvc   ports.TokenService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountSvc ports.AccountService, tokenSvc ports.TokenService) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc, tokenSvc: tokenSvc}
}

// Balance handles GET /api/v1/accounts/:address/balance.
func (h *AccountHandler) Balance(c *gin.Context) {
	addr, ok := pathAddress(c, "address")
	if !ok {
		return
	}

	balance, err := h.accountSvc.Balance(c.Request.Context(), addr)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Address: addr, Balance: balance})
}

// Faucet handles POST /api/v1/faucet, crediting the signer.
func (h *AccountHandler) Faucet(c *gin.Context) {
	addr, ok := signer(c)
	if !ok {
		return
	}

	var req dto.FaucetRequest
	if !bindJSON(c, &req) {
		return
	}

	balance, err := h.accountSvc.Faucet(c.Request.Context(), addr, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.BalanceResponse{Address: addr, Balance: balance})
}

// CreateSession handles POST /api/v1/auth/session, trading a signed
// request for a bearer token scoped to the signer.
func (h *AccountHandler) CreateSession(c *gin.Context) {
	subject, ok := signer(c)
	if !ok {
		return
	}

	token, expiresAt, err := h.tokenSvc.Generate(subject)
	if err != nil {
		response.Error(c, apperror.InternalError(err))
		return
	}

	response.Created(c, dto.SessionResponse{
		Token:     token,
		Subject:   subject,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
	})
}

// HealthCheck returns a deep health check handler.
// It pings each registered dependency and reports the aggregate status.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
