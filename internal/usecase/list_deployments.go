package usecase

import (
	"context"
	"sort"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
)

// ListDeploymentsParams contains parameters for listing deployments
type ListDeploymentsParams struct {
	// AllNetworks ignores the selected network
	AllNetworks      bool
	ContractName     string
	ProxiesOnly      bool
	IncludeAuxiliary bool
}

// DeploymentSummary holds counts over a deployment listing
type DeploymentSummary struct {
	Total      int
	Proxies    int
	Verified   int
	ByNetwork  map[string]int
	Unverified int
}

// DeploymentListResult contains the deployments and their summary
type DeploymentListResult struct {
	Deployments []*models.Deployment
	Summary     DeploymentSummary
}

// ListDeployments is the use case for listing deployments
type ListDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentStore
	sink   ProgressSink
}

// NewListDeployments creates a new ListDeployments use case
func NewListDeployments(cfg *config.RuntimeConfig, store DeploymentStore, sink ProgressSink) *ListDeployments {
	return &ListDeployments{
		config: cfg,
		store:  store,
		sink:   sink,
	}
}

// Run executes the list deployments use case
func (uc *ListDeployments) Run(ctx context.Context, params ListDeploymentsParams) (*DeploymentListResult, error) {
	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "loading",
		Message: "Loading deployment records",
		Spinner: true,
	})

	filter := domain.DeploymentFilter{
		ContractName:     params.ContractName,
		ProxiesOnly:      params.ProxiesOnly,
		IncludeAuxiliary: params.IncludeAuxiliary,
	}
	if !params.AllNetworks && uc.config.Network != nil {
		filter.Network = uc.config.Network.Name
	}

	deployments, err := uc.store.ListDeployments(ctx, filter)
	if err != nil {
		return nil, err
	}

	sortDeployments(deployments)

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(deployments),
		Total:   len(deployments),
		Message: "Deployments loaded",
	})

	return &DeploymentListResult{
		Deployments: deployments,
		Summary:     calculateSummary(deployments),
	}, nil
}

// sortDeployments sorts by network, then name
func sortDeployments(deployments []*models.Deployment) {
	sort.Slice(deployments, func(i, j int) bool {
		if deployments[i].Network != deployments[j].Network {
			return deployments[i].Network < deployments[j].Network
		}
		return deployments[i].Name < deployments[j].Name
	})
}

func calculateSummary(deployments []*models.Deployment) DeploymentSummary {
	summary := DeploymentSummary{
		Total:     len(deployments),
		ByNetwork: make(map[string]int),
	}

	for _, dep := range deployments {
		summary.ByNetwork[dep.Network]++
		if dep.IsProxy() {
			summary.Proxies++
		}
		if dep.Verification.Status == models.VerificationStatusVerified {
			summary.Verified++
		} else {
			summary.Unverified++
		}
	}

	return summary
}
