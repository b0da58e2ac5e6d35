package usecase_test

import (
	"context"
	"testing"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryConfigStore struct {
	cfg *config.LocalConfig
}

func (s *memoryConfigStore) Exists() bool { return s.cfg != nil }

func (s *memoryConfigStore) Load(context.Context) (*config.LocalConfig, error) {
	if s.cfg == nil {
		return config.DefaultLocalConfig(), nil
	}
	c := *s.cfg
	return &c, nil
}

func (s *memoryConfigStore) Save(_ context.Context, cfg *config.LocalConfig) error {
	c := *cfg
	s.cfg = &c
	return nil
}

func (s *memoryConfigStore) GetPath() string { return "/project/.brevis/config.local.json" }

func TestShowConfig(t *testing.T) {
	store := &memoryConfigStore{}
	res, err := usecase.NewShowConfig(store).Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Exists)
	assert.Equal(t, "localhost", res.Config.Network)
	assert.Equal(t, store.GetPath(), res.ConfigPath)
}

func TestSetConfig(t *testing.T) {
	ctx := context.Background()

	t.Run("sets a known network", func(t *testing.T) {
		store := &memoryConfigStore{}
		resolver := &MockNetworkResolver{}
		resolver.On("ResolveNetwork", mock.Anything, "bsc").Return(&config.Network{Name: "bsc"}, nil)

		res, err := usecase.NewSetConfig(store, resolver).Run(ctx, usecase.SetConfigParams{Key: "Network", Value: "bsc"})
		require.NoError(t, err)
		assert.Equal(t, config.ConfigKeyNetwork, res.Key)
		assert.Equal(t, "bsc", store.cfg.Network)
		resolver.AssertExpectations(t)
	})

	t.Run("rejects unknown network", func(t *testing.T) {
		store := &memoryConfigStore{}
		resolver := &MockNetworkResolver{}
		resolver.On("ResolveNetwork", mock.Anything, "nope").Return(nil, domain.ErrNetworkNotConfigured)

		_, err := usecase.NewSetConfig(store, resolver).Run(ctx, usecase.SetConfigParams{Key: "network", Value: "nope"})
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
		assert.False(t, store.Exists())
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		_, err := usecase.NewSetConfig(&memoryConfigStore{}, &MockNetworkResolver{}).Run(ctx, usecase.SetConfigParams{Key: "namespace", Value: "x"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Available keys: network")
	})
}

func TestRemoveConfig(t *testing.T) {
	ctx := context.Background()

	_, err := usecase.NewRemoveConfig(&memoryConfigStore{}).Run(ctx, usecase.RemoveConfigParams{Key: "network"})
	assert.Error(t, err)

	store := &memoryConfigStore{cfg: &config.LocalConfig{Network: "bsc"}}
	res, err := usecase.NewRemoveConfig(store).Run(ctx, usecase.RemoveConfigParams{Key: "net"})
	require.NoError(t, err)
	assert.Equal(t, "bsc", res.RemovedValue)
	assert.Empty(t, store.cfg.Network)
}
