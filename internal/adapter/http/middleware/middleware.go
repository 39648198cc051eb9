package middleware

import (
	"bytes"
	"encoding/hex"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"treasury-ledger/internal/core/ports"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/response"
	"treasury-ledger/pkg/types"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// Header names for signature authentication
	HeaderPublicKey = "X-Public-Key"
	HeaderSignature = "X-Signature"
	HeaderTimestamp = "X-Timestamp"
	HeaderNonce     = "X-Nonce"
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxSigner  = "signer"
	CtxSubject = "subject"
)

// SignatureAuthConfig bounds request freshness.
type SignatureAuthConfig struct {
	TimestampDrift time.Duration
	NonceTTL       time.Duration
}

// DefaultSignatureAuthConfig allows 60s of clock drift and remembers nonces for 120s.
func DefaultSignatureAuthConfig() SignatureAuthConfig {
	return SignatureAuthConfig{TimestampDrift: 60 * time.Second, NonceTTL: 120 * time.Second}
}

// SignatureAuth verifies that the request was signed by the holder of
// X-Public-Key and stores the derived signer address in the context.
// Pipeline: Check headers -> Check timestamp -> Verify signature -> Check nonce.
func SignatureAuth(
	sigSvc ports.SignatureService,
	nonceStore ports.NonceStore,
	cfg SignatureAuthConfig,
	log zerolog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		pubKeyHex := c.GetHeader(HeaderPublicKey)
		signatureHex := c.GetHeader(HeaderSignature)
		timestampStr := c.GetHeader(HeaderTimestamp)
		nonce := c.GetHeader(HeaderNonce)

		if pubKeyHex == "" {
			abort(c, apperror.ErrInvalidPublicKey())
			return
		}
		if signatureHex == "" || timestampStr == "" || nonce == "" {
			abort(c, apperror.ErrInvalidSignature())
			return
		}
		pubKey, err := hex.DecodeString(pubKeyHex)
		if err != nil {
			abort(c, apperror.ErrInvalidPublicKey())
			return
		}
		signature, err := hex.DecodeString(signatureHex)
		if err != nil {
			abort(c, apperror.ErrInvalidSignature())
			return
		}

		// Step 1: Timestamp check
		timestamp, err := strconv.ParseInt(timestampStr, 10, 64)
		if err != nil {
			abort(c, apperror.ErrTimestampExpired())
			return
		}
		drift := time.Since(time.Unix(timestamp, 0))
		if drift < 0 {
			drift = -drift
		}
		if drift > cfg.TimestampDrift {
			abort(c, apperror.ErrTimestampExpired())
			return
		}

		// Step 2: Signature verification
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			abort(c, apperror.Validation("cannot read request body"))
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		canonical := sigSvc.BuildCanonicalString(
			c.Request.Method,
			c.Request.URL.Path,
			timestamp,
			nonce,
			string(bodyBytes),
		)
		signer, ok := sigSvc.Verify(pubKey, canonical, signature)
		if !ok {
			abort(c, apperror.ErrInvalidSignature())
			return
		}

		// Step 3: Nonce check, only for requests that proved key ownership
		isNew, err := nonceStore.CheckAndSet(c.Request.Context(), signer.String(), nonce, cfg.NonceTTL)
		if err != nil {
			log.Warn().Err(err).Str("signer", signer.String()).Msg("nonce store error, allowing request")
		} else if !isNew {
			abort(c, apperror.ErrNonceUsed())
			return
		}

		c.Set(CtxSigner, signer)
		c.Next()
	}
}

// JWTAuth validates session tokens and stores the subject address in the context.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenStr == "" {
			abort(c, apperror.ErrInvalidToken())
			return
		}

		claims, err := tokenSvc.Validate(tokenStr)
		if err != nil {
			log.Debug().Err(err).Msg("rejected session token")
			abort(c, apperror.ErrInvalidToken())
			return
		}

		c.Set(CtxSubject, claims.Subject)
		c.Next()
	}
}

// Signer returns the address that signed the current request.
func Signer(c *gin.Context) (types.Address, bool) {
	return address(c, CtxSigner)
}

// Subject returns the session subject of the current request.
func Subject(c *gin.Context) (types.Address, bool) {
	return address(c, CtxSubject)
}

func address(c *gin.Context, key string) (types.Address, bool) {
	v, ok := c.Get(key)
	if !ok {
		return types.Address{}, false
	}
	addr, ok := v.(types.Address)
	return addr, ok
}

// RequestID propagates X-Request-ID or assigns a fresh one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		if signer, ok := Signer(c); ok {
			event = event.Str("signer", signer.String())
		}
		event.
			Str("request_id", c.GetString(response.RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error_code": apperror.CodeInternal,
					"message":    "Internal server error",
				})
			}
		}()
		c.Next()
	}
}

func abort(c *gin.Context, err *apperror.AppError) {
	response.Error(c, err)
	c.Abort()
}
