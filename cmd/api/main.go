package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"treasury-ledger/config"
	httpHandler "treasury-ledger/internal/adapter/http/handler"
	"treasury-ledger/internal/adapter/http/middleware"
	"treasury-ledger/internal/adapter/storage/journal"
	"treasury-ledger/internal/adapter/storage/memory"
	pgStorage "treasury-ledger/internal/adapter/storage/postgres"
	redisStorage "treasury-ledger/internal/adapter/storage/redis"
	"treasury-ledger/internal/core/domain"
	"treasury-ledger/internal/core/ports"
	"treasury-ledger/internal/service"
	"treasury-ledger/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	storageLog := logger.WithComponent(log, logger.ComponentStorage)
	ledgerLog := logger.WithComponent(log, logger.ComponentLedger)
	notifierLog := logger.WithComponent(log, logger.ComponentNotifier)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Str("storage", cfg.Ledger.Storage).
		Msg("Starting Treasury Ledger")

	ctx := context.Background()

	program, err := cfg.Ledger.ProgramAddress()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid program ID")
	}
	deriver := domain.NewDeriver(program)

	// Initialize ledger storage
	var (
		repos    service.Repositories
		checkers []ports.HealthChecker
	)
	switch cfg.Ledger.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = service.Repositories{
			Vaults:     memory.NewVaultRepo(store),
			Children:   memory.NewChildAccountRepo(store),
			Payouts:    memory.NewPayoutRepo(store),
			Mints:      memory.NewMintRepo(store),
			Events:     memory.NewEventRepo(store),
			Native:     memory.NewNativeLedger(store),
			Tokens:     memory.NewTokenLedger(store),
			Transactor: store,
		}
		checkers = append(checkers, store)
		storageLog.Warn().Msg("Using in-memory ledger storage; state is lost on exit")
	default:
		pool, err := pgStorage.NewPool(ctx, cfg.Database, storageLog)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		if err := pgStorage.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply ledger schema")
		}
		log.Info().Msg("PostgreSQL connected")

		repos = service.Repositories{
			Vaults:     pgStorage.NewVaultRepo(pool),
			Children:   pgStorage.NewChildAccountRepo(pool),
			Payouts:    pgStorage.NewPayoutRepo(pool),
			Mints:      pgStorage.NewMintRepo(pool),
			Events:     pgStorage.NewEventRepo(pool),
			Native:     pgStorage.NewNativeLedger(pool),
			Tokens:     pgStorage.NewTokenLedger(pool),
			Transactor: pgStorage.NewTransactor(pool, cfg.Database.LockTimeout),
		}
		checkers = append(checkers, pgStorage.NewHealthCheck(pool))
	}

	// Event sinks: Redis channel, local journal, webhook
	var (
		sinks        []ports.EventSink
		nonceStore   ports.NonceStore = memory.NewNonceStore()
		rateLimiter  middleware.Limiter
		eventJournal ports.EventJournal
	)

	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, storageLog)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		nonceStore = redisStorage.NewNonceStore(rdb)
		rateLimiter = redisStorage.NewRateLimitStore(rdb)
		sinks = append(sinks, redisStorage.NewEventPublisher(rdb))
		checkers = append(checkers, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled: nonces are tracked in process and rate limiting is off")
	}

	if cfg.Journal.Path != "" {
		bdb, err := journal.OpenBadger(cfg.Journal.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open event journal")
		}
		jrnl := journal.New(bdb)
		defer jrnl.Close()
		eventJournal = jrnl
		sinks = append(sinks, jrnl)
		journalLog := logger.WithComponent(log, logger.ComponentJournal)
		journalLog.Info().
			Str("path", cfg.Journal.Path).
			Msg("Event journal opened")
	}

	var webhookSink *service.WebhookSink
	if cfg.Webhook.URL != "" {
		webhookSink = service.NewWebhookSink(service.WebhookConfig{
			URL:             cfg.Webhook.URL,
			Secret:          cfg.Webhook.Secret,
			Timeout:         cfg.Webhook.Timeout,
			BreakerFailures: cfg.Webhook.BreakerFailures,
			BreakerTimeout:  cfg.Webhook.BreakerTimeout,
		}, service.NewHMACPayloadSigner(), &http.Client{Timeout: cfg.Webhook.Timeout}, notifierLog)
		sinks = append(sinks, webhookSink)
		log.Info().Str("url", cfg.Webhook.URL).Msg("Webhook delivery enabled")
	}

	notifier := service.NewEventNotifier(notifierLog, sinks...)

	// Initialize services
	sigSvc := service.NewSchnorrSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	vaultSvc := service.NewVaultService(repos, deriver, notifier, ledgerLog)
	depositSvc := service.NewDepositService(repos, deriver, notifier, ledgerLog)
	payoutSvc := service.NewPayoutService(repos, deriver, notifier, ledgerLog)
	exchangeSvc := service.NewExchangeService(repos, deriver, notifier, ledgerLog)
	accountSvc := service.NewAccountService(repos.Native, repos.Transactor, ledgerLog)

	if cfg.JWT.EphemeralSecret {
		log.Warn().Msg("jwt.secret not set; using a random per-process secret, sessions end on restart")
	}
	if cfg.Ledger.FaucetEnabled {
		log.Warn().Msg("Faucet endpoint enabled; do not expose this instance publicly")
	}

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		VaultSvc:    vaultSvc,
		DepositSvc:  depositSvc,
		PayoutSvc:   payoutSvc,
		ExchangeSvc: exchangeSvc,
		AccountSvc:  accountSvc,
		SigSvc:      sigSvc,
		NonceStore:  nonceStore,
		TokenSvc:    tokenSvc,
		SignatureAuth: middleware.SignatureAuthConfig{
			TimestampDrift: cfg.Security.TimestampDrift,
			NonceTTL:       cfg.Security.NonceTTL,
		},
		Journal:        eventJournal,
		RateLimiter:    rateLimiter,
		HealthCheckers: checkers,
		FaucetEnabled:  cfg.Ledger.FaucetEnabled,
		Mode:           cfg.Server.Mode,
		Logger:         logger.WithComponent(log, logger.ComponentHTTP),
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if webhookSink != nil {
		webhookSink.Close()
	}

	log.Info().Msg("Server exited")
}
