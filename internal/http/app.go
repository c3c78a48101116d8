// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"phonekit/platform/config"
	"phonekit/platform/logger"
	"phonekit/platform/metrics"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
	config.RateLimitConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration.
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// MetadataVersion identifies the numbering plans served, reported by /api/health.
	MetadataVersion string
	// Health lists optional dependencies by name (e.g. the result cache).
	Health map[string]HealthChecker
	// Metrics records request latency. Nil disables instrumentation.
	Metrics *metrics.Metrics
	// Gatherer backs /metrics. Nil leaves the endpoint unmounted.
	Gatherer prometheus.Gatherer
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
