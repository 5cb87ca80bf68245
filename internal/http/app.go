// Package http assembles the HTTP server from the domain modules.
package http

import (
	"context"

	"umroh_travel_backend/internal/events"
	"umroh_travel_backend/platform/config"
	"umroh_travel_backend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the router.
type RouterConfig interface {
	config.HTTPConfig
	config.JWTConfig
}

// HealthChecker is used by the readiness probe.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the initialized dependencies handed to the router by main.
type App struct {
	Config   RouterConfig
	Logger   *logger.Logger
	Health   HealthChecker
	EventBus events.Bus
	Modules  []Module
}
