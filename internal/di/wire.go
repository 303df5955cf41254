//go:build wireinject
// +build wireinject

package di

import (
	"TAMCP/pkg/config"
	"TAMCP/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideRegistry,
		ProvideMetrics,

		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvideAuditPublisher,

		// Use cases
		ProvideCalculator,
		ProvideToolRegistry,

		// Transport
		ProvideRateLimiter,
		ProvideToolsHandler,
		ProvideHTTPServer,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
