package usecase

import (
	"context"
	"log/slog"

	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// Deploy Script Ports

// DeployFunc is the body of a deploy script
type DeployFunc func(ctx context.Context, env Environment) error

// DeployScript is one deployment unit. Scripts run in ID order; Tags select
// them and Dependencies name tags whose scripts must run first.
type DeployScript struct {
	ID           string
	Tags         []string
	Dependencies []string
	Run          DeployFunc
}

// ScriptRegistry lists the deploy scripts known to the binary
type ScriptRegistry interface {
	Scripts() []DeployScript
}

// Environment is what a deploy script sees of the current run
type Environment interface {
	// Network is the network the run targets
	Network() *config.Network

	// NamedAccount resolves a named account address, e.g. "deployer"
	NamedAccount(ctx context.Context, name string) (common.Address, error)

	// ContractSetting returns a per-network setting for a contract, falling back to def
	ContractSetting(contract, key, def string) string

	// Get reads a deployment record written earlier; domain.ErrNotFound if absent
	Get(ctx context.Context, name string) (*models.Deployment, error)

	// Deploy deploys (or reuses, or upgrades) a named contract and persists its record
	Deploy(ctx context.Context, name string, opts DeployOptions) (*models.Deployment, error)

	// Verify submits a deployment to the block explorer. Best effort: failures
	// are logged and recorded, never returned.
	Verify(ctx context.Context, deployment *models.Deployment, args models.ConstructorArgs)

	Logger() *slog.Logger
}

// DeployOptions mirrors the options a deploy script passes for one contract
type DeployOptions struct {
	// From is the sending account
	From common.Address

	// Contract is the artifact name; defaults to the deployment name
	Contract string

	// Args are the implementation constructor args
	Args models.ConstructorArgs

	// Proxy deploys the contract behind an upgradeable proxy when set
	Proxy *ProxyOptions
}

// ProxyOptions configures the proxy in front of a deployment
type ProxyOptions struct {
	// ProxyContract is the proxy artifact name, e.g. "OptimizedTransparentProxy"
	ProxyContract string

	// Owner is the proxy admin; defaults to From
	Owner common.Address

	// Execute is called once, through the proxy, when the proxy is created
	Execute *ProxyInit
}

// ProxyInit names the initializer invoked at proxy creation
type ProxyInit struct {
	MethodName string
	Args       models.ConstructorArgs
}

// DefaultProxyContract is the proxy used when ProxyOptions.ProxyContract is empty
const DefaultProxyContract = "OptimizedTransparentProxy"

// UpgradeMethod is called on the proxy by its admin to switch implementation
const UpgradeMethod = "upgradeTo"
