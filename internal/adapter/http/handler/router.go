package handler

import (
	"treasury-ledger/internal/adapter/http/middleware"
	"treasury-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	VaultSvc       ports.VaultService
	DepositSvc     ports.DepositService
	PayoutSvc      ports.PayoutService
	ExchangeSvc    ports.ExchangeService
	AccountSvc     ports.AccountService
	SigSvc         ports.SignatureService
	NonceStore     ports.NonceStore
	TokenSvc       ports.TokenService
	SignatureAuth  middleware.SignatureAuthConfig
	Journal        ports.EventJournal // nil = journal endpoint disabled
	RateLimiter    middleware.Limiter // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	FaucetEnabled  bool
	Mode           string // gin mode; empty = release
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	mode := deps.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep: storage + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if a limiter is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimiter, group, rule, deps.Logger)
	}

	signed := middleware.SignatureAuth(deps.SigSvc, deps.NonceStore, deps.SignatureAuth, deps.Logger)
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)

	vaultHandler := NewVaultHandler(deps.VaultSvc, deps.Journal)
	depositHandler := NewDepositHandler(deps.DepositSvc)
	payoutHandler := NewPayoutHandler(deps.PayoutSvc)
	exchangeHandler := NewExchangeHandler(deps.ExchangeSvc)
	accountHandler := NewAccountHandler(deps.AccountSvc, deps.TokenSvc)

	// API v1 routes
	v1 := r.Group("/api/v1")

	v1.POST("/vaults", rl("vault"), signed, vaultHandler.Initialize)

	vault := v1.Group("/vaults/:vault")
	{
		// --- Public reads ---
		vault.GET("", rl("read"), vaultHandler.Get)
		vault.GET("/events", rl("read"), vaultHandler.ListEvents)
		vault.GET("/journal", rl("read"), vaultHandler.Journal)
		vault.GET("/children", rl("read"), depositHandler.ListChildren)
		vault.GET("/children/:child", rl("read"), depositHandler.GetChild)
		vault.GET("/children/:child/payouts", rl("read"), payoutHandler.ListByChild)
		vault.GET("/payouts/:payout", rl("read"), payoutHandler.Get)
		vault.GET("/quote", rl("read"), exchangeHandler.Quote)
		vault.GET("/tokens/:owner", rl("read"), exchangeHandler.TokenBalance)

		// --- Signed mutations ---
		vault.POST("/contributions", rl("deposit"), signed, vaultHandler.Contribute)
		vault.POST("/deposits", rl("deposit"), signed, depositHandler.Deposit)
		vault.POST("/withdrawals", rl("vault"), signed, vaultHandler.Withdraw)
		vault.PUT("/exchange-rate", rl("vault"), signed, vaultHandler.UpdateRate)
		vault.POST("/payouts", rl("payout"), signed, payoutHandler.Request)
		vault.POST("/payouts/:payout/execute", rl("payout"), signed, payoutHandler.Execute)
		vault.POST("/mint", rl("vault"), signed, exchangeHandler.InitializeMint)
		vault.POST("/purchases", rl("exchange"), signed, exchangeHandler.Buy)
	}

	v1.GET("/accounts/:address/balance", rl("read"), accountHandler.Balance)

	// --- Sessions (signed in, JWT out) ---
	v1.POST("/auth/session", rl("session"), signed, accountHandler.CreateSession)

	me := v1.Group("/me", jwtAuth)
	{
		me.GET("/children", rl("read"), depositHandler.MyChildren)
	}

	// --- Development faucet ---
	if deps.FaucetEnabled {
		v1.POST("/faucet", rl("faucet"), signed, accountHandler.Faucet)
	}

	return r
}
