package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"settlement-gateway/config"
	"settlement-gateway/internal/adapter/events"
	httpHandler "settlement-gateway/internal/adapter/http/handler"
	"settlement-gateway/internal/adapter/metrics"
	pgStorage "settlement-gateway/internal/adapter/storage/postgres"
	redisStorage "settlement-gateway/internal/adapter/storage/redis"
	"settlement-gateway/internal/adapter/upstream"
	"settlement-gateway/internal/channel"
	"settlement-gateway/internal/core/ports"
	"settlement-gateway/internal/service"
	"settlement-gateway/pkg/logger"

	"github.com/prometheus/client_golang/prometheus"
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

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Settlement Gateway")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	merchantRepo := pgStorage.NewMerchantRepo(pool)
	payinRepo := pgStorage.NewPayinOrderRepo(pool)
	payoutRepo := pgStorage.NewPayoutOrderRepo(pool)
	platformRepo := pgStorage.NewPlatformAccountRepo(pool)
	callbackRepo := pgStorage.NewCallbackLogRepo(pool)
	transactor := pgStorage.NewTransactor(pool)

	// Redis-backed webhook dedupe
	dedupe := redisStorage.NewDedupeCache(rdb)

	// Settlement event publisher; nil when no brokers are configured
	var publisher ports.EventPublisher
	if kp := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log); kp != nil {
		publisher = kp
		defer kp.Close()
	}

	// Prometheus metrics
	promReg := prometheus.NewRegistry()
	m := metrics.New(promReg)

	// Channel registry; trustbank is only registered when its public key
	// is configured
	registry := channel.Defaults(cfg.Channels["trustbank"].PublicKey)
	log.Info().Strs("channels", registry.Codes()).Msg("channel registry initialised")

	// Upstream create-order client
	upstreamClient := upstream.NewClient(cfg.Platform.UpstreamTimeout, registry, logger.Component(log, "upstream"))

	// Initialize business services, each logging under its own component tag
	orderSvc := service.NewOrderService(merchantRepo, payinRepo, upstreamClient, cfg.Channels, cfg.Platform, logger.Component(log, "order"))
	payoutSvc := service.NewPayoutService(merchantRepo, payoutRepo, platformRepo, transactor, publisher, cfg.Channels, cfg.Platform, logger.Component(log, "payout"))
	forwarderSvc := service.NewForwarderService(merchantRepo, cfg.Platform.ForwardTimeout, logger.Component(log, "forwarder"))
	reconSvc := service.NewReconciliationService(
		registry,
		merchantRepo, payinRepo, payoutRepo, platformRepo, callbackRepo,
		transactor, dedupe, publisher, forwarderSvc,
		m, cfg.Channels, cfg.Platform, logger.Component(log, "reconciliation"),
	)

	// Durable auto-settle worker for the simulated channel
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	if softCfg, ok := cfg.Channels[channel.CodeSoftPay]; ok && softCfg.AutoSuccessRate > 0 {
		worker := service.NewAutoSettleWorker(
			payinRepo, reconSvc, forwarderSvc, merchantRepo, m,
			softCfg, cfg.Platform.AutoSettlePoll, logger.Component(log, "autosettle"),
		)
		go worker.Run(workerCtx)
	}

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		OrderSvc:       orderSvc,
		PayoutSvc:      payoutSvc,
		ReconSvc:       reconSvc,
		MerchantRepo:   merchantRepo,
		PayinRepo:      payinRepo,
		PayoutRepo:     payoutRepo,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		MetricsReg:     promReg,
		AdminAPIKey:    cfg.Platform.AdminAPIKey,
		Mode:           cfg.Server.Mode,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
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

	stopWorker()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
