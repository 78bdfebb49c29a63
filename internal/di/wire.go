//go:build wireinject
// +build wireinject

package di

import (
	"RiskView/internal/adapter/htmlview"
	"RiskView/internal/registry"
	"RiskView/internal/services/sorter"
	"RiskView/pkg/config"
	"RiskView/pkg/server"

	"github.com/google/wire"
)

var viewSet = wire.NewSet(
	ProvideMetrics,
	ProvideRiskAPI,
	registry.Default,
	sorter.New,
	ProvideRenderer,
	ProvideLoader,
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, func(), error) {
	wire.Build(
		// Infrastructure clients
		ProvideKafkaProducer,
		ProvideLogger,
		ProvideCache,

		// Repositories
		ProvideSessionStore,

		// Use cases
		viewSet,
		ProvideViews,

		// Delivery
		htmlview.New,
		ProvideLimiter,
		ProvideViewHandler,

		// Application server
		ProvideApp,
	)
	return nil, nil, nil
}

// InitializeCLI wires the single-shot command line renderer.
func InitializeCLI(cfg *config.Config) (*CLI, error) {
	wire.Build(
		ProvideCLILogger,
		viewSet,
		ProvideLocalViews,
		ProvideCLI,
	)
	return nil, nil
}
