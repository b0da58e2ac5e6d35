package config

import (
	"context"

	"github.com/brevis-network/brevis-deploy/internal/config"
	domainconfig "github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
)

// NetworkResolverAdapter adapts the config.NetworkResolver to the usecase.NetworkResolver interface
type NetworkResolverAdapter struct {
	resolver *config.NetworkResolver
}

// NewNetworkResolverAdapter creates a new adapter
func NewNetworkResolverAdapter(resolver *config.NetworkResolver) *NetworkResolverAdapter {
	return &NetworkResolverAdapter{
		resolver: resolver,
	}
}

// GetNetworkNames returns all configured network names
func (a *NetworkResolverAdapter) GetNetworkNames(ctx context.Context) []string {
	return a.resolver.GetNetworks()
}

// ResolveNetwork resolves a network name to its configuration
func (a *NetworkResolverAdapter) ResolveNetwork(ctx context.Context, name string) (*domainconfig.Network, error) {
	return a.resolver.Resolve(name)
}

var _ usecase.NetworkResolver = (*NetworkResolverAdapter)(nil)
