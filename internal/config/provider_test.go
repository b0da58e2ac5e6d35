package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProject = `
deployments_dir = "records"
compile_command = "npx hardhat compile"

[named_accounts.deployer]
private_key = "${DEPLOYER_PRIVATE_KEY}"

[verification]
api_key = "${ETHERSCAN_API_KEY}"

[networks.bsc]
url = "${BSC_RPC_URL}"
chain_id = 56

[networks.bsc.contracts.BrevisRequest]
operator = "0x00000000000000000000000000000000000000aa"

[networks.devnet]
url = "http://127.0.0.1:9545"
chain_id = 1337

[networks.staging]
url = "https://staging.example"
live = false
explorer_api_url = "https://api.staging.example/api"
explorer_api_key = "staging-key"
`

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("BSC_RPC_URL", "https://bsc-dataseed.example")
	// registers the restore, then clears so the .env value applies
	t.Setenv("ETHERSCAN_API_KEY", "")
	require.NoError(t, os.Unsetenv("ETHERSCAN_API_KEY"))
	root := writeProject(t, map[string]string{
		ProjectFile: sampleProject,
		".env":      "ETHERSCAN_API_KEY=from-dotenv\n",
	})

	cfg, err := LoadProjectConfig(root)
	require.NoError(t, err)

	assert.Equal(t, "records", cfg.DeploymentsDir)
	assert.Equal(t, "https://bsc-dataseed.example", cfg.Networks["bsc"].URL)
	assert.Equal(t, "from-dotenv", cfg.Verification.APIKey)
	// unset references are left for the account resolver to report
	assert.Equal(t, "${DEPLOYER_PRIVATE_KEY}", cfg.NamedAccounts["deployer"].PrivateKey)
	assert.Equal(t, "0x00000000000000000000000000000000000000aa", cfg.Networks["bsc"].Contracts["BrevisRequest"]["operator"])
}

func TestLoadProjectConfigMissingFile(t *testing.T) {
	cfg, err := LoadProjectConfig(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, cfg.Networks)
}

func TestLoadProjectConfigInvalid(t *testing.T) {
	root := writeProject(t, map[string]string{ProjectFile: "[networks\n"})
	_, err := LoadProjectConfig(root)
	assert.Error(t, err)
}

func TestNetworkResolver(t *testing.T) {
	t.Setenv("BSC_RPC_URL", "https://bsc-dataseed.example")
	t.Setenv("ETHERSCAN_API_KEY", "global-key")
	root := writeProject(t, map[string]string{ProjectFile: sampleProject})
	project, err := LoadProjectConfig(root)
	require.NoError(t, err)
	r := NewNetworkResolver(project)

	tests := []struct {
		name    string
		network string
		check   func(t *testing.T, url string, chainID uint64, live bool, apiURL, apiKey string)
		wantErr error
	}{
		{
			name:    "live network inherits global key and default api",
			network: "bsc",
			check: func(t *testing.T, url string, chainID uint64, live bool, apiURL, apiKey string) {
				assert.Equal(t, "https://bsc-dataseed.example", url)
				assert.Equal(t, uint64(56), chainID)
				assert.True(t, live)
				assert.Equal(t, DefaultExplorerAPIURL, apiURL)
				assert.Equal(t, "global-key", apiKey)
			},
		},
		{
			name:    "local chain id is not live",
			network: "devnet",
			check: func(t *testing.T, _ string, _ uint64, live bool, _, _ string) {
				assert.False(t, live)
			},
		},
		{
			name:    "explicit settings win",
			network: "staging",
			check: func(t *testing.T, _ string, _ uint64, live bool, apiURL, apiKey string) {
				assert.False(t, live)
				assert.Equal(t, "https://api.staging.example/api", apiURL)
				assert.Equal(t, "staging-key", apiKey)
			},
		},
		{
			name:    "localhost is implicit",
			network: LocalhostNetwork,
			check: func(t *testing.T, url string, _ uint64, live bool, _, _ string) {
				assert.Equal(t, localhostRPC, url)
				assert.False(t, live)
			},
		},
		{
			name:    "unknown network",
			network: "polygon",
			wantErr: domain.ErrNetworkNotConfigured,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := r.Resolve(tt.network)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.network, n.Name)
			tt.check(t, n.RPCURL, n.ChainID, n.Live, n.ExplorerAPIURL, n.ExplorerAPIKey)
		})
	}

	assert.Equal(t, []string{"bsc", "devnet", "localhost", "staging"}, r.GetNetworks())
}

func TestFindProjectRoot(t *testing.T) {
	root := writeProject(t, map[string]string{ProjectFile: "", "contracts/nested/.keep": ""})

	found, err := findProjectRootFrom(filepath.Join(root, "contracts", "nested"))
	require.NoError(t, err)
	assert.Equal(t, root, found)

	_, err = findProjectRootFrom(t.TempDir())
	assert.Error(t, err)
}

func TestProvider(t *testing.T) {
	t.Setenv("BSC_RPC_URL", "https://bsc-dataseed.example")
	root := writeProject(t, map[string]string{
		ProjectFile:                 sampleProject,
		".brevis/config.local.json": `{"network": "bsc"}`,
	})

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("debug", false, "")
	cmd.Flags().Bool("non-interactive", false, "")
	cmd.Flags().String("network", "", "")
	require.NoError(t, cmd.Flags().Set("non-interactive", "true"))

	v := SetupViper(root, cmd)
	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "records"), cfg.DeploymentsDir)
	assert.Equal(t, filepath.Join(root, "artifacts"), cfg.ArtifactPaths[0])
	assert.Equal(t, "npx hardhat compile", cfg.CompileCommand)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.True(t, cfg.NonInteractive)
	require.NotNil(t, cfg.Network)
	assert.Equal(t, "bsc", cfg.Network.Name)

	t.Run("flag overrides local config", func(t *testing.T) {
		require.NoError(t, cmd.Flags().Set("network", "devnet"))
		cfg, err := Provider(SetupViper(root, cmd))
		require.NoError(t, err)
		assert.Equal(t, "devnet", cfg.Network.Name)
	})

	t.Run("unknown network fails", func(t *testing.T) {
		v := viper.New()
		v.Set("project_root", root)
		v.Set("network", "polygon")
		_, err := Provider(v)
		assert.ErrorIs(t, err, domain.ErrNetworkNotConfigured)
	})
}
