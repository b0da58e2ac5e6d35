package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/joho/godotenv"
)

// ProjectFile is the project configuration file looked up from the working directory
const ProjectFile = "deploy.toml"

// DefaultDeploymentsDir holds the per-network deployment records
const DefaultDeploymentsDir = "deployments"

// loadEnvFiles loads .env files so ${VAR} references in deploy.toml resolve.
// Variables already set in the process environment win.
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadProjectConfig loads deploy.toml from the project root and expands env references
func LoadProjectConfig(projectRoot string) (*config.ProjectConfig, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, ProjectFile)
	cfg := &config.ProjectConfig{}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", ProjectFile, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	expandProject(cfg)
	return cfg, nil
}

func expandProject(cfg *config.ProjectConfig) {
	cfg.CompileCommand = expandEnv(cfg.CompileCommand)
	cfg.Verification.APIKey = expandEnv(cfg.Verification.APIKey)
	cfg.NamedAccounts = expandAccounts(cfg.NamedAccounts)
	cfg.Contracts = expandContracts(cfg.Contracts)

	for name, nc := range cfg.Networks {
		nc.URL = expandEnv(nc.URL)
		nc.ExplorerURL = expandEnv(nc.ExplorerURL)
		nc.ExplorerAPIURL = expandEnv(nc.ExplorerAPIURL)
		nc.ExplorerAPIKey = expandEnv(nc.ExplorerAPIKey)
		nc.NamedAccounts = expandAccounts(nc.NamedAccounts)
		nc.Contracts = expandContracts(nc.Contracts)
		cfg.Networks[name] = nc
	}
}

func expandAccounts(accounts map[string]config.AccountConfig) map[string]config.AccountConfig {
	for name, acc := range accounts {
		acc.PrivateKey = expandEnv(acc.PrivateKey)
		acc.Address = expandEnv(acc.Address)
		accounts[name] = acc
	}
	return accounts
}

func expandContracts(contracts map[string]map[string]string) map[string]map[string]string {
	for _, settings := range contracts {
		for k, v := range settings {
			settings[k] = expandEnv(v)
		}
	}
	return contracts
}

// expandEnv behaves like os.ExpandEnv but leaves unset references intact,
// so a missing secret is reported by name instead of silently becoming empty.
func expandEnv(s string) string {
	return os.Expand(s, func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		return "${" + key + "}"
	})
}
