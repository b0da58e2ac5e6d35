package config

import (
	"context"
	"testing"

	"github.com/brevis-network/brevis-deploy/internal/config"
	domainconfig "github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetworkResolverAdapter(t *testing.T) {
	project := &domainconfig.ProjectConfig{
		Networks: map[string]domainconfig.NetworkConfig{
			"bsc": {URL: "https://bsc.example", ChainID: 56},
		},
	}
	adapter := NewNetworkResolverAdapter(config.NewNetworkResolver(project))
	ctx := context.Background()

	assert.Equal(t, []string{"bsc", "localhost"}, adapter.GetNetworkNames(ctx))

	n, err := adapter.ResolveNetwork(ctx, "bsc")
	require.NoError(t, err)
	assert.Equal(t, uint64(56), n.ChainID)
	assert.True(t, n.Live)

	_, err = adapter.ResolveNetwork(ctx, "polygon")
	assert.Error(t, err)
}
