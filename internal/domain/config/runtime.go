package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot    string
	DataDir        string
	DeploymentsDir string
	ArtifactPaths  []string
	CompileCommand string

	// Context settings
	Network *Network // nil if not specified

	// Execution settings
	Debug          bool
	NonInteractive bool
	Timeout        time.Duration

	// Resolved configurations
	Project *ProjectConfig
}

// Network represents a resolved network configuration
type Network struct {
	Name           string `json:"name"`
	ChainID        uint64 `json:"chainId"`
	RPCURL         string `json:"rpcUrl"`
	Live           bool   `json:"live"`
	ExplorerURL    string `json:"explorerUrl,omitempty"`
	ExplorerAPIURL string `json:"explorerApiUrl,omitempty"`
	ExplorerAPIKey string `json:"-"`
}

// IsLocal reports whether the network is a local development chain
func (n *Network) IsLocal() bool {
	return n.ChainID == 31337 || n.ChainID == 1337
}

// NamedAccounts returns the account configs for a network, network entries overriding globals
func (c *RuntimeConfig) NamedAccounts(network string) map[string]AccountConfig {
	out := make(map[string]AccountConfig)
	if c.Project == nil {
		return out
	}
	for name, acc := range c.Project.NamedAccounts {
		out[name] = acc
	}
	if nc, ok := c.Project.Networks[network]; ok {
		for name, acc := range nc.NamedAccounts {
			out[name] = acc
		}
	}
	return out
}

// ContractSettings returns the settings for a contract on a network, network entries overriding globals
func (c *RuntimeConfig) ContractSettings(network, contract string) map[string]string {
	out := make(map[string]string)
	if c.Project == nil {
		return out
	}
	for k, v := range c.Project.Contracts[contract] {
		out[k] = v
	}
	if nc, ok := c.Project.Networks[network]; ok {
		for k, v := range nc.Contracts[contract] {
			out[k] = v
		}
	}
	return out
}
