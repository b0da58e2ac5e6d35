package app

import (
	"log/slog"

	"github.com/brevis-network/brevis-deploy/internal/adapters/interactive"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Selector *interactive.SelectorAdapter

	// Use cases
	RunDeployments    *usecase.RunDeployments
	ListDeployments   *usecase.ListDeployments
	ShowDeployment    *usecase.ShowDeployment
	VerifyDeployment  *usecase.VerifyDeployment
	ExportDeployments *usecase.ExportDeployments
	ListNetworks      *usecase.ListNetworks
	ShowConfig        *usecase.ShowConfig
	SetConfig         *usecase.SetConfig
	RemoveConfig      *usecase.RemoveConfig
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	selector *interactive.SelectorAdapter,
	runDeployments *usecase.RunDeployments,
	listDeployments *usecase.ListDeployments,
	showDeployment *usecase.ShowDeployment,
	verifyDeployment *usecase.VerifyDeployment,
	exportDeployments *usecase.ExportDeployments,
	listNetworks *usecase.ListNetworks,
	showConfig *usecase.ShowConfig,
	setConfig *usecase.SetConfig,
	removeConfig *usecase.RemoveConfig,
) (*App, error) {
	return &App{
		Config:            cfg,
		Log:               log,
		Selector:          selector,
		RunDeployments:    runDeployments,
		ListDeployments:   listDeployments,
		ShowDeployment:    showDeployment,
		VerifyDeployment:  verifyDeployment,
		ExportDeployments: exportDeployments,
		ListNetworks:      listNetworks,
		ShowConfig:        showConfig,
		SetConfig:         setConfig,
		RemoveConfig:      removeConfig,
	}, nil
}
