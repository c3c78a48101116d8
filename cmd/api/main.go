package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	apphttp "phonekit/internal/http"
	"phonekit/internal/http/router"
	"phonekit/internal/lookup"
	"phonekit/internal/metadata"
	"phonekit/internal/metadata/upstream"
	"phonekit/internal/numbers"
	"phonekit/internal/numbers/service"
	"phonekit/internal/phonenumber"
	"phonekit/platform/cache"
	"phonekit/platform/config"
	"phonekit/platform/logger"
	"phonekit/platform/metrics"
	"phonekit/platform/validator"
)

const cacheKeyPrefix = "phonekit:"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	store, source, err := loadMetadata(cfg)
	if err != nil {
		log.Error("failed to load numbering plan metadata", "error", err)
		panic("failed to load numbering plan metadata: " + err.Error())
	}
	log.MetadataLoaded(source, store.Version(), len(store.SupportedRegions()), len(store.GlobalNetworkCallingCodes()))

	m := metrics.New(prometheus.DefaultRegisterer)
	health := map[string]apphttp.HealthChecker{}

	var resultCache service.Cache
	if cfg.IsCacheEnabled() {
		var redisCache *cache.Redis
		if err := withRetry(ctx, log, "redis connection", 5, time.Second, func() error {
			c, err := cache.NewRedis(ctx, cfg.GetRedisURL(), cacheKeyPrefix, cfg.GetCacheTTL())
			if err != nil {
				return err
			}
			redisCache = c
			return nil
		}); err != nil {
			log.Warn("result cache unavailable; continuing without it", "error", err)
		} else {
			defer redisCache.Close()
			resultCache = redisCache
			health["cache"] = redisCache
			log.Info("result cache connected", "ttl", cfg.GetCacheTTL().String())
		}
	} else {
		log.Info("REDIS_URL not configured; result cache disabled")
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	engine := phonenumber.New(store, phonenumber.Options{})
	lookupSvc := lookup.New(engine, nil)

	numbersModule, err := numbers.NewModule(engine, lookupSvc, resultCache, m, val, cfg, log)
	if err != nil {
		log.Error("failed to initialize numbers module", "error", err)
		panic("failed to initialize numbers module: " + err.Error())
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:          cfg,
		Logger:          log,
		MetadataVersion: store.Version(),
		Health:          health,
		Metrics:         m,
		Gatherer:        prometheus.DefaultGatherer,
		Modules: []apphttp.Module{
			numbersModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("graceful shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

// loadMetadata reads METADATA_FILE when set, otherwise the plans bundled
// with the phonenumbers module.
func loadMetadata(cfg config.MetadataConfig) (*metadata.Store, string, error) {
	if path := cfg.GetMetadataFile(); path != "" {
		store, err := metadata.LoadYAMLFile(path)
		return store, path, err
	}
	store, err := upstream.Default()
	return store, "upstream", err
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
