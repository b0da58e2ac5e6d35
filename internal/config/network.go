package config

import (
	"fmt"
	"sort"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/samber/lo"
)

// DefaultExplorerAPIURL is the Etherscan multichain endpoint; chainid selects the network
const DefaultExplorerAPIURL = "https://api.etherscan.io/v2/api"

// LocalhostNetwork is always available, pointing at a local hardhat or anvil node
const LocalhostNetwork = "localhost"

const localhostRPC = "http://127.0.0.1:8545"

// NetworkResolver resolves network names against the [networks] section of deploy.toml
type NetworkResolver struct {
	project *config.ProjectConfig
}

// NewNetworkResolver creates a new network resolver
func NewNetworkResolver(project *config.ProjectConfig) *NetworkResolver {
	if project == nil {
		project = &config.ProjectConfig{}
	}
	return &NetworkResolver{project: project}
}

// Resolve resolves a network name to its configuration
func (r *NetworkResolver) Resolve(name string) (*config.Network, error) {
	nc, ok := r.project.Networks[name]
	if !ok {
		if name != LocalhostNetwork {
			return nil, fmt.Errorf("%w: %q is not in [networks] of %s (known: %v)",
				domain.ErrNetworkNotConfigured, name, ProjectFile, r.GetNetworks())
		}
		nc = config.NetworkConfig{URL: localhostRPC}
	}
	if nc.URL == "" {
		return nil, fmt.Errorf("%w: network %q has no url", domain.ErrNetworkNotConfigured, name)
	}

	network := &config.Network{
		Name:           name,
		ChainID:        nc.ChainID,
		RPCURL:         nc.URL,
		ExplorerURL:    nc.ExplorerURL,
		ExplorerAPIURL: lo.Ternary(nc.ExplorerAPIURL != "", nc.ExplorerAPIURL, DefaultExplorerAPIURL),
		ExplorerAPIKey: lo.Ternary(nc.ExplorerAPIKey != "", nc.ExplorerAPIKey, r.project.Verification.APIKey),
	}

	if nc.Live != nil {
		network.Live = *nc.Live
	} else {
		network.Live = name != LocalhostNetwork && !network.IsLocal()
	}

	return network, nil
}

// GetNetworks returns all configured network names, sorted, localhost included
func (r *NetworkResolver) GetNetworks() []string {
	names := lo.Keys(r.project.Networks)
	if !lo.Contains(names, LocalhostNetwork) {
		names = append(names, LocalhostNetwork)
	}
	sort.Strings(names)
	return names
}
