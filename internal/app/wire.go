//go:build wireinject
// +build wireinject

package app

import (
	"github.com/brevis-network/brevis-deploy/internal/adapters"
	"github.com/brevis-network/brevis-deploy/internal/config"
	"github.com/brevis-network/brevis-deploy/internal/logging"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/google/wire"
	"github.com/spf13/viper"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewRunDeployments,
		usecase.NewListDeployments,
		usecase.NewShowDeployment,
		usecase.NewVerifyDeployment,
		usecase.NewExportDeployments,
		usecase.NewListNetworks,
		usecase.NewShowConfig,
		usecase.NewSetConfig,
		usecase.NewRemoveConfig,

		// App
		NewApp,
	)
	return nil, nil
}
