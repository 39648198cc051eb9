package handler

import (
	"strconv"

	"treasury-ledger/internal/adapter/http/dto"
	"treasury-ledger/internal/adapter/http/middleware"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/response"
	"treasury-ledger/pkg/types"

	"github.com/gin-gonic/gin"
)

// pathAddress parses the hex address in path parameter name. It writes a
// 400 response and returns false when the parameter is malformed.
func pathAddress(c *gin.Context, name string) (types.Address, bool) {
	addr, err := types.ParseAddress(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid "+name+" address"))
		return types.Address{}, false
	}
	return addr, true
}

// signer returns the verified request signer. Routes without
// SignatureAuth never reach a handler that calls it.
func signer(c *gin.Context) (types.Address, bool) {
	addr, ok := middleware.Signer(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidSignature())
	}
	return addr, ok
}

// bindJSON binds and normalizes the request body into req.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return false
	}
	dto.NormalizeStruct(req)
	return true
}

// queryInt reads an optional integer query parameter.
func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}
