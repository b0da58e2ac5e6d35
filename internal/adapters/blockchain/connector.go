package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Connector dials networks over JSON-RPC
type Connector struct {
	log *slog.Logger
}

// NewConnector creates a new connector
func NewConnector(log *slog.Logger) *Connector {
	return &Connector{log: log}
}

// Connect dials the network's RPC endpoint
func (c *Connector) Connect(ctx context.Context, network *config.Network) (usecase.ChainClient, error) {
	if network.RPCURL == "" {
		return nil, fmt.Errorf("%w: no url for %s", domain.ErrNetworkNotConfigured, network.Name)
	}

	ec, err := ethclient.DialContext(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}

	pollInterval := DefaultPollInterval
	if network.IsLocal() {
		pollInterval = pollInterval / 10
	}
	return NewClient(ec, c.log.With("network", network.Name), pollInterval), nil
}

var _ usecase.ChainConnector = (*Connector)(nil)
