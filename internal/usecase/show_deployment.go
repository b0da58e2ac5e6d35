package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
)

// ShowDeploymentParams contains parameters for showing a deployment
type ShowDeploymentParams struct {
	// Name is the deployment name; empty asks the selector
	Name string
}

// ShowDeploymentResult is a deployment with its companion records
type ShowDeploymentResult struct {
	Deployment     *models.Deployment
	Implementation *models.Deployment // nil unless proxied and recorded
	Proxy          *models.Deployment // nil unless proxied and recorded
}

// ShowDeployment is the use case for showing deployment details
type ShowDeployment struct {
	config   *config.RuntimeConfig
	store    DeploymentStore
	selector DeploymentSelector
	sink     ProgressSink
}

// NewShowDeployment creates a new ShowDeployment use case
func NewShowDeployment(cfg *config.RuntimeConfig, store DeploymentStore, selector DeploymentSelector, sink ProgressSink) *ShowDeployment {
	return &ShowDeployment{
		config:   cfg,
		store:    store,
		selector: selector,
		sink:     sink,
	}
}

// Run executes the show deployment use case
func (uc *ShowDeployment) Run(ctx context.Context, params ShowDeploymentParams) (*ShowDeploymentResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("%w: use --network to select one", domain.ErrNetworkNotConfigured)
	}
	network := uc.config.Network.Name

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment details",
		Spinner: true,
	})

	dep, err := uc.resolve(ctx, network, params.Name)
	if err != nil {
		return nil, err
	}

	result := &ShowDeploymentResult{Deployment: dep}
	if dep.IsProxy() && !dep.IsAuxiliary() {
		// Companion records are optional
		if impl, err := uc.store.GetDeployment(ctx, network, dep.Name+models.ImplementationSuffix); err == nil {
			result.Implementation = impl
		}
		if proxy, err := uc.store.GetDeployment(ctx, network, dep.Name+models.ProxySuffix); err == nil {
			result.Proxy = proxy
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Message: "Deployment loaded",
	})

	return result, nil
}

// resolve looks a deployment up by exact name, then case-insensitively,
// falling back to the selector when nothing or several records match.
func (uc *ShowDeployment) resolve(ctx context.Context, network, name string) (*models.Deployment, error) {
	if name != "" {
		dep, err := uc.store.GetDeployment(ctx, network, name)
		if err == nil {
			return dep, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
	}

	candidates, err := uc.store.ListDeployments(ctx, domain.DeploymentFilter{
		Network:          network,
		Name:             name,
		IncludeAuxiliary: true,
	})
	if err != nil {
		return nil, err
	}

	switch {
	case len(candidates) == 1:
		return candidates[0], nil
	case len(candidates) == 0 && name != "":
		return nil, fmt.Errorf("deployment %s on %s: %w", name, network, domain.ErrNotFound)
	case len(candidates) == 0:
		return nil, fmt.Errorf("no deployments on %s: %w", network, domain.ErrNotFound)
	case uc.selector == nil || uc.config.NonInteractive:
		return nil, fmt.Errorf("multiple deployments match %q, please be more specific", name)
	}

	sortDeployments(candidates)
	return uc.selector.SelectDeployment(ctx, candidates, "Select a deployment")
}
