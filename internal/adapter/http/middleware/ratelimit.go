package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisStore "treasury-ledger/internal/adapter/storage/redis"
	"treasury-ledger/pkg/apperror"
	"treasury-ledger/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Limiter counts requests in fixed windows.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int64, window time.Duration) (*redisStore.RateLimitResult, error)
}

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// DefaultRateLimitRules returns the rate limits per endpoint group.
func DefaultRateLimitRules() map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"read":     {Limit: 300, Window: time.Minute},
		"vault":    {Limit: 30, Window: time.Minute},
		"deposit":  {Limit: 120, Window: time.Minute},
		"payout":   {Limit: 60, Window: time.Minute},
		"exchange": {Limit: 120, Window: time.Minute},
		"session":  {Limit: 10, Window: time.Minute},
		"faucet":   {Limit: 5, Window: time.Minute},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// Limiter failures let the request through (degraded mode).
func RateLimiter(store Limiter, group string, rule RateLimitRule, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identifier := extractIdentifier(c)
		key := fmt.Sprintf("%s:%s", identifier, group)

		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		// Always set rate limit headers
		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			response.Error(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier keys signed requests by public key, sessions by subject
// and everything else by client IP.
func extractIdentifier(c *gin.Context) string {
	if pk := c.GetHeader(HeaderPublicKey); pk != "" {
		return "pk:" + pk
	}
	if subject, ok := Subject(c); ok {
		return "sub:" + subject.String()
	}
	return "ip:" + c.ClientIP()
}
