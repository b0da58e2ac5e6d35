package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/adapters/abi"
	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/brevis-network/brevis-deploy/internal/usecase/usecasetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDeploymentSelector is a mock implementation of DeploymentSelector
type MockDeploymentSelector struct {
	mock.Mock
}

func (m *MockDeploymentSelector) SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error) {
	args := m.Called(ctx, deployments, prompt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Deployment), args.Error(1)
}

// MockNetworkResolver is a mock implementation of NetworkResolver
type MockNetworkResolver struct {
	mock.Mock
}

func (m *MockNetworkResolver) ResolveNetwork(ctx context.Context, name string) (*config.Network, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*config.Network), args.Error(1)
}

func (m *MockNetworkResolver) GetNetworkNames(ctx context.Context) []string {
	return m.Called(ctx).Get(0).([]string)
}

const (
	proofProxy = "0x1111111111111111111111111111111111111111"
	proofImpl  = "0x2222222222222222222222222222222222222222"
)

func seedStore(t *testing.T) *usecasetest.MemoryStore {
	t.Helper()
	ctx := context.Background()
	store := usecasetest.NewMemoryStore()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	records := []*models.Deployment{
		{
			Name: "BrevisProof", ContractName: "BrevisProof", Network: "sepolia", ChainID: 11155111,
			Address: proofProxy, Args: models.ConstructorArgs{"0x0000000000000000000000000000000000000000"},
			Proxy: &models.ProxyInfo{
				Type: "OptimizedTransparentProxy", Address: proofProxy, Implementation: proofImpl,
			},
			Verification: models.VerificationInfo{Status: models.VerificationStatusUnverified},
			CreatedAt:    now,
		},
		{
			Name: "BrevisProof_Implementation", ContractName: "BrevisProof", Network: "sepolia", ChainID: 11155111,
			Address: proofImpl, Verification: models.VerificationInfo{Status: models.VerificationStatusUnverified},
		},
		{
			Name: "BrevisProof_Proxy", ContractName: "OptimizedTransparentProxy", Network: "sepolia", ChainID: 11155111,
			Address: proofProxy,
		},
		{
			Name: "BrevisRequest", ContractName: "BrevisRequest", Network: "sepolia", ChainID: 11155111,
			Address:      "0x3333333333333333333333333333333333333333",
			Verification: models.VerificationInfo{Status: models.VerificationStatusVerified},
		},
		{
			Name: "BrevisProof", ContractName: "BrevisProof", Network: "bsc", ChainID: 56,
			Address: "0x4444444444444444444444444444444444444444",
		},
	}
	for _, r := range records {
		require.NoError(t, store.SaveDeployment(ctx, r))
	}
	return store
}

func sepolia() *config.RuntimeConfig {
	return &config.RuntimeConfig{Network: &config.Network{Name: "sepolia", ChainID: 11155111, Live: true}}
}

func TestListDeployments(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		params usecase.ListDeploymentsParams
		want   []string
	}{
		{
			name: "selected network, primary records only",
			want: []string{"BrevisProof", "BrevisRequest"},
		},
		{
			name:   "with auxiliary records",
			params: usecase.ListDeploymentsParams{IncludeAuxiliary: true},
			want:   []string{"BrevisProof", "BrevisProof_Implementation", "BrevisProof_Proxy", "BrevisRequest"},
		},
		{
			name:   "proxies only",
			params: usecase.ListDeploymentsParams{ProxiesOnly: true},
			want:   []string{"BrevisProof"},
		},
		{
			name:   "all networks",
			params: usecase.ListDeploymentsParams{AllNetworks: true},
			want:   []string{"BrevisProof", "BrevisProof", "BrevisRequest"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progress := &usecasetest.Progress{}
			uc := usecase.NewListDeployments(sepolia(), seedStore(t), progress)

			result, err := uc.Run(ctx, tt.params)
			require.NoError(t, err)

			var names []string
			for _, d := range result.Deployments {
				names = append(names, d.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, len(tt.want), result.Summary.Total)
			assert.NotEmpty(t, progress.Events)
		})
	}

	t.Run("summary", func(t *testing.T) {
		uc := usecase.NewListDeployments(sepolia(), seedStore(t), usecase.NopProgress{})
		result, err := uc.Run(ctx, usecase.ListDeploymentsParams{AllNetworks: true})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summary.Proxies)
		assert.Equal(t, 1, result.Summary.Verified)
		assert.Equal(t, 2, result.Summary.Unverified)
		assert.Equal(t, map[string]int{"sepolia": 2, "bsc": 1}, result.Summary.ByNetwork)
	})
}

func TestShowDeployment(t *testing.T) {
	ctx := context.Background()

	t.Run("exact name loads companion records", func(t *testing.T) {
		uc := usecase.NewShowDeployment(sepolia(), seedStore(t), nil, usecase.NopProgress{})
		result, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: "BrevisProof"})
		require.NoError(t, err)
		assert.Equal(t, proofProxy, result.Deployment.Address)
		require.NotNil(t, result.Implementation)
		assert.Equal(t, proofImpl, result.Implementation.Address)
		require.NotNil(t, result.Proxy)
		assert.Equal(t, "OptimizedTransparentProxy", result.Proxy.ContractName)
	})

	t.Run("case-insensitive fallback", func(t *testing.T) {
		uc := usecase.NewShowDeployment(sepolia(), seedStore(t), nil, usecase.NopProgress{})
		result, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: "brevisrequest"})
		require.NoError(t, err)
		assert.Equal(t, "BrevisRequest", result.Deployment.Name)
		assert.Nil(t, result.Implementation)
	})

	t.Run("not found", func(t *testing.T) {
		uc := usecase.NewShowDeployment(sepolia(), seedStore(t), nil, usecase.NopProgress{})
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{Name: "Missing"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("no name asks the selector", func(t *testing.T) {
		store := seedStore(t)
		selector := &MockDeploymentSelector{}
		request, _ := store.GetDeployment(ctx, "sepolia", "BrevisRequest")
		selector.On("SelectDeployment", mock.Anything, mock.MatchedBy(func(deps []*models.Deployment) bool {
			return len(deps) == 4
		}), "Select a deployment").Return(request, nil)

		uc := usecase.NewShowDeployment(sepolia(), store, selector, usecase.NopProgress{})
		result, err := uc.Run(ctx, usecase.ShowDeploymentParams{})
		require.NoError(t, err)
		assert.Equal(t, "BrevisRequest", result.Deployment.Name)
		selector.AssertExpectations(t)
	})

	t.Run("non-interactive refuses to guess", func(t *testing.T) {
		cfg := sepolia()
		cfg.NonInteractive = true
		uc := usecase.NewShowDeployment(cfg, seedStore(t), &MockDeploymentSelector{}, usecase.NopProgress{})
		_, err := uc.Run(ctx, usecase.ShowDeploymentParams{})
		assert.Error(t, err)
	})
}

func TestVerifyDeployment(t *testing.T) {
	ctx := context.Background()

	newVerify := func(store usecase.DeploymentStore, verifier *usecasetest.Verifier) *usecase.VerifyDeployment {
		return usecase.NewVerifyDeployment(sepolia(), store, usecasetest.NewArtifacts(), abi.NewEncoder(), verifier, usecase.NopProgress{})
	}

	t.Run("specific uses recorded args and implementation address", func(t *testing.T) {
		store := seedStore(t)
		verifier := &usecasetest.Verifier{}

		result, err := newVerify(store, verifier).VerifySpecific(ctx, "BrevisProof", usecase.VerifyOptions{})
		require.NoError(t, err)
		assert.True(t, result.Success)

		require.Len(t, verifier.Requests, 1)
		assert.Equal(t, proofImpl, verifier.Requests[0].Address.Hex())
		assert.Equal(t, models.ConstructorArgs{"0x0000000000000000000000000000000000000000"}, verifier.Requests[0].Args)

		dep, _ := store.GetDeployment(ctx, "sepolia", "BrevisProof")
		assert.Equal(t, models.VerificationStatusVerified, dep.Verification.Status)
		impl, _ := store.GetDeployment(ctx, "sepolia", "BrevisProof_Implementation")
		assert.Equal(t, models.VerificationStatusVerified, impl.Verification.Status)
	})

	t.Run("already verified needs force", func(t *testing.T) {
		store := seedStore(t)
		verifier := &usecasetest.Verifier{}

		result, err := newVerify(store, verifier).VerifySpecific(ctx, "BrevisRequest", usecase.VerifyOptions{})
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Empty(t, verifier.Requests)
	})

	t.Run("failure is recorded", func(t *testing.T) {
		store := seedStore(t)
		verifier := &usecasetest.Verifier{Err: errors.New("rate limited")}

		result, err := newVerify(store, verifier).VerifySpecific(ctx, "BrevisProof", usecase.VerifyOptions{})
		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.Errors[0], "rate limited")

		dep, _ := store.GetDeployment(ctx, "sepolia", "BrevisProof")
		assert.Equal(t, models.VerificationStatusFailed, dep.Verification.Status)
	})

	t.Run("unknown deployment", func(t *testing.T) {
		_, err := newVerify(seedStore(t), &usecasetest.Verifier{}).VerifySpecific(ctx, "Nope", usecase.VerifyOptions{})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("all skips verified records", func(t *testing.T) {
		verifier := &usecasetest.Verifier{}
		result, err := newVerify(seedStore(t), verifier).VerifyAll(ctx, usecase.VerifyOptions{})
		require.NoError(t, err)
		assert.Len(t, result.Results, 2)
		assert.Equal(t, 1, result.SuccessCount)
		assert.Equal(t, 1, result.SkippedCount)
		assert.Len(t, verifier.Requests, 1)
	})

	t.Run("all leaves implementation and proxy records alone", func(t *testing.T) {
		result, err := newVerify(seedStore(t), &usecasetest.Verifier{}).VerifyAll(ctx, usecase.VerifyOptions{})
		require.NoError(t, err)

		var names []string
		for _, r := range result.Results {
			names = append(names, r.Deployment.Name)
		}
		assert.ElementsMatch(t, []string{"BrevisProof", "BrevisRequest"}, names)
	})
}

func TestExportDeployments(t *testing.T) {
	ctx := context.Background()

	t.Run("selected network", func(t *testing.T) {
		uc := usecase.NewExportDeployments(sepolia(), seedStore(t))
		exports, err := uc.Run(ctx, usecase.ExportDeploymentsParams{})
		require.NoError(t, err)
		require.Len(t, exports, 1)

		export := exports[0]
		assert.Equal(t, "sepolia", export.Name)
		assert.Equal(t, uint64(11155111), export.ChainID)
		assert.Len(t, export.Contracts, 2)
		assert.Equal(t, proofProxy, export.Contracts["BrevisProof"].Address)
		assert.Equal(t, proofImpl, export.Contracts["BrevisProof"].Implementation)
	})

	t.Run("all networks", func(t *testing.T) {
		uc := usecase.NewExportDeployments(&config.RuntimeConfig{}, seedStore(t))
		exports, err := uc.Run(ctx, usecase.ExportDeploymentsParams{AllNetworks: true})
		require.NoError(t, err)
		require.Len(t, exports, 2)
		assert.Equal(t, "bsc", exports[0].Name)
		assert.Equal(t, "sepolia", exports[1].Name)
	})

	t.Run("needs a network", func(t *testing.T) {
		uc := usecase.NewExportDeployments(&config.RuntimeConfig{}, seedStore(t))
		_, err := uc.Run(ctx, usecase.ExportDeploymentsParams{})
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
	})
}

func TestListNetworks(t *testing.T) {
	ctx := context.Background()
	resolver := &MockNetworkResolver{}
	resolver.On("GetNetworkNames", mock.Anything).Return([]string{"bsc", "localhost", "sepolia"})
	resolver.On("ResolveNetwork", mock.Anything, "bsc").Return(&config.Network{Name: "bsc", ChainID: 56, Live: true}, nil)
	resolver.On("ResolveNetwork", mock.Anything, "localhost").Return(nil, errors.New("missing url"))
	resolver.On("ResolveNetwork", mock.Anything, "sepolia").Return(&config.Network{Name: "sepolia", ChainID: 11155111, Live: true}, nil)

	uc := usecase.NewListNetworks(sepolia(), resolver, seedStore(t))
	result, err := uc.Run(ctx)
	require.NoError(t, err)

	assert.Equal(t, "sepolia", result.Current)
	require.Len(t, result.Networks, 3)
	assert.Equal(t, uint64(56), result.Networks[0].ChainID)
	assert.Equal(t, 1, result.Networks[0].Deployments)
	assert.Error(t, result.Networks[1].Error)
	assert.Equal(t, 2, result.Networks[2].Deployments)
	resolver.AssertExpectations(t)
}
