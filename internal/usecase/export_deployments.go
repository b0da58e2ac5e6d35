package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
)

// ExportedContract is one contract entry of a network export
type ExportedContract struct {
	Address        string          `json:"address" yaml:"address"`
	Implementation string          `json:"implementation,omitempty" yaml:"implementation,omitempty"`
	ABI            json.RawMessage `json:"abi,omitempty" yaml:"-"`
}

// NetworkExport is the address book of one network, keyed by deployment name
type NetworkExport struct {
	Name      string                      `json:"name" yaml:"name"`
	ChainID   uint64                      `json:"chainId" yaml:"chainId"`
	Contracts map[string]ExportedContract `json:"contracts" yaml:"contracts"`
}

// ExportDeploymentsParams contains parameters for an export
type ExportDeploymentsParams struct {
	AllNetworks bool
	IncludeABI  bool
}

// ExportDeployments builds address books from the deployment records
type ExportDeployments struct {
	config *config.RuntimeConfig
	store  DeploymentStore
}

// NewExportDeployments creates a new ExportDeployments use case
func NewExportDeployments(cfg *config.RuntimeConfig, store DeploymentStore) *ExportDeployments {
	return &ExportDeployments{config: cfg, store: store}
}

// Run returns one export per network, in network name order
func (uc *ExportDeployments) Run(ctx context.Context, params ExportDeploymentsParams) ([]*NetworkExport, error) {
	var networks []string
	switch {
	case params.AllNetworks:
		names, err := uc.store.ListNetworks(ctx)
		if err != nil {
			return nil, err
		}
		networks = names
	case uc.config.Network != nil:
		networks = []string{uc.config.Network.Name}
	default:
		return nil, fmt.Errorf("%w: use --network or --all", domain.ErrNetworkNotConfigured)
	}

	var out []*NetworkExport
	for _, network := range networks {
		deployments, err := uc.store.ListDeployments(ctx, domain.DeploymentFilter{Network: network})
		if err != nil {
			return nil, err
		}
		sortDeployments(deployments)

		export := &NetworkExport{Name: network, Contracts: make(map[string]ExportedContract)}
		for _, dep := range deployments {
			export.ChainID = dep.ChainID
			entry := ExportedContract{Address: dep.Address}
			if dep.IsProxy() {
				entry.Implementation = dep.Proxy.Implementation
			}
			if params.IncludeABI {
				entry.ABI = dep.ABI
			}
			export.Contracts[dep.Name] = entry
		}
		out = append(out, export)
	}

	return out, nil
}
