package senders

import (
	"context"
	"testing"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Anvil's first dev account
const (
	devKey     = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	devAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

func TestService_ResolveAccount(t *testing.T) {
	ctx := context.Background()
	cfg := &config.RuntimeConfig{
		Project: &config.ProjectConfig{
			NamedAccounts: map[string]config.AccountConfig{
				"deployer": {PrivateKey: devKey},
				"operator": {Address: "0x58b529F9084D7eAA598EB3477Fe36064C5B7bbC1"},
				"broken":   {PrivateKey: "${MISSING_KEY}"},
				"empty":    {},
			},
			Networks: map[string]config.NetworkConfig{
				"bsc": {NamedAccounts: map[string]config.AccountConfig{
					"operator": {Address: "0x9FC952BdCbB7Daca7d420fA55b942405B073A89d"},
				}},
			},
		},
	}
	svc := NewService(cfg)
	sepolia := &config.Network{Name: "sepolia"}

	tests := []struct {
		name     string
		network  *config.Network
		account  string
		address  string
		canSign  bool
		errIs    error
		errMatch string
	}{
		{name: "private key", network: sepolia, account: "deployer", address: devAddress, canSign: true},
		{name: "case-insensitive", network: sepolia, account: "Deployer", address: devAddress, canSign: true},
		{name: "address only", network: sepolia, account: "operator", address: "0x58b529F9084D7eAA598EB3477Fe36064C5B7bbC1"},
		{name: "network override", network: &config.Network{Name: "bsc"}, account: "operator", address: "0x9FC952BdCbB7Daca7d420fA55b942405B073A89d"},
		{name: "unknown", network: sepolia, account: "nobody", errIs: domain.ErrAccountNotFound},
		{name: "unset env var", network: sepolia, account: "broken", errMatch: "unset environment variable"},
		{name: "empty", network: sepolia, account: "empty", errMatch: "neither private_key nor address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := svc.ResolveAccount(ctx, tt.network, tt.account)
			if tt.errIs != nil || tt.errMatch != "" {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				if tt.errMatch != "" {
					assert.Contains(t, err.Error(), tt.errMatch)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, common.HexToAddress(tt.address), acc.Address)
			assert.Equal(t, tt.canSign, acc.CanSign())
		})
	}
}

func TestBuildAccount_AddressMustMatchKey(t *testing.T) {
	_, err := buildAccount("deployer", config.AccountConfig{
		PrivateKey: devKey,
		Address:    "0x0000000000000000000000000000000000000001",
	})
	assert.Error(t, err)

	acc, err := buildAccount("deployer", config.AccountConfig{PrivateKey: devKey, Address: devAddress})
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(devAddress), acc.Address)

	_, err = buildAccount("x", config.AccountConfig{Address: "not-an-address"})
	assert.ErrorIs(t, err, domain.ErrInvalidAddress)
}
