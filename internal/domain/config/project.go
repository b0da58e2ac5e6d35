package config

// ProjectConfig represents the deploy.toml project file
type ProjectConfig struct {
	// Paths searched for compiled artifacts, relative to the project root
	ArtifactPaths []string `toml:"artifact_paths,omitempty"`

	// DeploymentsDir holds the per-network deployment records
	DeploymentsDir string `toml:"deployments_dir,omitempty"`

	// CompileCommand is run by `deploy --compile`, e.g. "npx hardhat compile"
	CompileCommand string `toml:"compile_command,omitempty"`

	NamedAccounts map[string]AccountConfig     `toml:"named_accounts"`
	Networks      map[string]NetworkConfig     `toml:"networks"`
	Contracts     map[string]map[string]string `toml:"contracts"`
	Verification  VerificationConfig           `toml:"verification"`
}

// AccountConfig represents a named account in [named_accounts.*] sections.
// Exactly one of PrivateKey or Address is expected; PrivateKey usually holds
// an env var reference such as "${DEPLOYER_PRIVATE_KEY}".
type AccountConfig struct {
	PrivateKey string `toml:"private_key,omitempty"` //nolint:gosec // holds env var reference, not a literal secret
	Address    string `toml:"address,omitempty"`
}

// NetworkConfig represents a [networks.<name>] section
type NetworkConfig struct {
	URL         string `toml:"url"`
	ChainID     uint64 `toml:"chain_id,omitempty"`
	Live        *bool  `toml:"live,omitempty"`
	ExplorerURL string `toml:"explorer_url,omitempty"`

	// Etherscan-compatible API; defaults to the multichain v2 endpoint
	ExplorerAPIURL string `toml:"explorer_api_url,omitempty"`
	ExplorerAPIKey string `toml:"explorer_api_key,omitempty"`

	NamedAccounts map[string]AccountConfig     `toml:"named_accounts,omitempty"`
	Contracts     map[string]map[string]string `toml:"contracts,omitempty"`
}

// VerificationConfig represents the [verification] section
type VerificationConfig struct {
	Disabled     bool   `toml:"disabled,omitempty"`
	APIKey       string `toml:"api_key,omitempty"`
	PollInterval string `toml:"poll_interval,omitempty"`
	MaxAttempts  int    `toml:"max_attempts,omitempty"`
}

// DefaultArtifactPaths mirrors the Hardhat layout plus the proxy artifacts shipped by hardhat-deploy
func DefaultArtifactPaths() []string {
	return []string{"artifacts", "node_modules/hardhat-deploy/extendedArtifacts"}
}
