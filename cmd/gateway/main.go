package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shareit/internal/config"
	"shareit/internal/gateway"
	"shareit/internal/limiter"
	"shareit/internal/logging"
	"shareit/internal/metrics"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load(config.PathFromEnv())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App, "gateway")
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}
	logger := baseLogger.With().Str("component", "gateway-main").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, cleanup := initLimiter(ctx, cfg, &logger)
	defer cleanup()

	srv := gateway.NewServer(cfg, gateway.NewClient(cfg.Gateway, cfg.API.Auth), store, &logger)

	if cfg.Monitoring.PrometheusEnabled {
		metrics.Register()
		go startMetricsServer(ctx, cfg.Monitoring.PrometheusPort, &logger)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()
	logger.Info().
		Int("port", cfg.Gateway.Port).
		Str("server_url", cfg.Gateway.ServerURL).
		Msg("Gateway started")

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("gateway stopped")
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	logger.Info().Msg("Gateway stopped")
	return nil
}

// initLimiter prefers Redis so replicas share counters, and keeps an
// in-memory store as fallback. Without a redis address memory is used alone.
func initLimiter(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (limiter.Store, func()) {
	memory := limiter.NewMemoryStore()
	sweepCtx, cancel := context.WithCancel(ctx)
	go sweep(sweepCtx, memory, time.Duration(cfg.Gateway.RateLimit.WindowSeconds)*time.Second)

	if cfg.Redis.Address == "" {
		return memory, cancel
	}

	redisStore := limiter.NewRedisStore(limiter.NewRedisClient(cfg.Redis))
	if err := redisStore.Ping(ctx); err != nil {
		logger.Warn().Err(err).Msg("redis connection failed, limiting in memory until it recovers")
	} else {
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	}

	return limiter.NewFailoverStore(redisStore, memory, logger), func() {
		cancel()
		_ = redisStore.Close()
	}
}

func sweep(ctx context.Context, store *limiter.MemoryStore, every time.Duration) {
	if every <= 0 {
		every = time.Minute
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			store.Sweep()
		}
	}
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
