package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"treasury-ledger/internal/adapter/http/middleware"
	redisStore "treasury-ledger/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func setupRateLimitRouter(store middleware.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	rule := middleware.RateLimitRule{Limit: 3, Window: time.Minute}
	log := zerolog.Nop()

	r.GET("/test", middleware.RateLimiter(store, "test", rule, log), func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return r
}

func newRateLimitStore(t *testing.T) (*redisStore.RateLimitStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return redisStore.NewRateLimitStore(client), mr
}

func doGet(router *gin.Engine, publicKey string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequestWithContext(context.Background(), http.MethodGet, "/test", nil)
	if publicKey != "" {
		req.Header.Set(middleware.HeaderPublicKey, publicKey)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimiter_AllowsWithinLimit(t *testing.T) {
	store, _ := newRateLimitStore(t)
	router := setupRateLimitRouter(store)

	for i := 0; i < 3; i++ {
		w := doGet(router, "")
		assert.Equal(t, 200, w.Code, "request %d should succeed", i+1)
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Remaining"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimiter_BlocksOverLimit(t *testing.T) {
	store, _ := newRateLimitStore(t)
	router := setupRateLimitRouter(store)

	// Use up the limit
	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, doGet(router, "").Code)
	}

	// 4th request should be blocked
	w := doGet(router, "")
	assert.Equal(t, 429, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_001")
}

func TestRateLimiter_KeysByPublicKey(t *testing.T) {
	store, _ := newRateLimitStore(t)
	router := setupRateLimitRouter(store)

	// Signer A uses up the limit
	for i := 0; i < 3; i++ {
		assert.Equal(t, 200, doGet(router, "02aa").Code)
	}
	assert.Equal(t, 429, doGet(router, "02aa").Code)

	// Signer B has an independent counter
	assert.Equal(t, 200, doGet(router, "03bb").Code)
}

func TestRateLimiter_DegradedModeOnStoreFailure(t *testing.T) {
	store, mr := newRateLimitStore(t)
	router := setupRateLimitRouter(store)
	mr.Close()

	for i := 0; i < 5; i++ {
		w := doGet(router, "")
		assert.Equal(t, 200, w.Code)
		assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
	}
}

func TestDefaultRateLimitRules(t *testing.T) {
	rules := middleware.DefaultRateLimitRules()
	for _, group := range []string{"read", "vault", "deposit", "payout", "exchange", "session", "faucet"} {
		rule, ok := rules[group]
		assert.True(t, ok, group)
		assert.Positive(t, rule.Limit, group)
		assert.Equal(t, time.Minute, rule.Window, group)
	}
	assert.Equal(t, int64(5), rules["faucet"].Limit)
}
