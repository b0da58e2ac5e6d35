package adapters

import (
	"github.com/brevis-network/brevis-deploy/internal/adapters/abi"
	"github.com/brevis-network/brevis-deploy/internal/adapters/blockchain"
	"github.com/brevis-network/brevis-deploy/internal/adapters/compiler"
	internalconfig "github.com/brevis-network/brevis-deploy/internal/adapters/config"
	"github.com/brevis-network/brevis-deploy/internal/adapters/fs"
	"github.com/brevis-network/brevis-deploy/internal/adapters/interactive"
	"github.com/brevis-network/brevis-deploy/internal/adapters/progress"
	"github.com/brevis-network/brevis-deploy/internal/adapters/repository/contracts"
	"github.com/brevis-network/brevis-deploy/internal/adapters/repository/deployments"
	"github.com/brevis-network/brevis-deploy/internal/adapters/senders"
	"github.com/brevis-network/brevis-deploy/internal/adapters/verification"
	"github.com/brevis-network/brevis-deploy/internal/config"
	"github.com/brevis-network/brevis-deploy/internal/scripts/core"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/google/wire"
)

// RepositorySet provides the deployment records and compiled artifacts
var RepositorySet = wire.NewSet(
	deployments.NewFileRepository,
	wire.Bind(new(usecase.DeploymentStore), new(*deployments.FileRepository)),

	contracts.NewRepository,
	wire.Bind(new(usecase.ArtifactRepository), new(*contracts.Repository)),
)

// ABISet provides argument packing
var ABISet = wire.NewSet(
	abi.NewEncoder,
	wire.Bind(new(usecase.ABIEncoder), new(*abi.Encoder)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewConnector,
	wire.Bind(new(usecase.ChainConnector), new(*blockchain.Connector)),

	senders.NewService,
	wire.Bind(new(usecase.AccountResolver), new(*senders.Service)),
)

// VerificationSet provides block explorer verification
var VerificationSet = wire.NewSet(
	verification.NewService,
	verification.NewVerifierAdapter,
	wire.Bind(new(usecase.ContractVerifier), new(*verification.VerifierAdapter)),
)

// CompilerSet provides the compile step run before deploys
var CompilerSet = wire.NewSet(
	compiler.NewRunner,
	wire.Bind(new(usecase.CompileRunner), new(*compiler.Runner)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.DeploymentSelector), new(*interactive.SelectorAdapter)),
)

// ConfigSet provides configuration-based implementations
var ConfigSet = wire.NewSet(
	config.ProvideNetworkResolver,
	internalconfig.NewNetworkResolverAdapter,
	wire.Bind(new(usecase.NetworkResolver), new(*internalconfig.NetworkResolverAdapter)),

	fs.NewLocalConfigStoreAdapter,
	wire.Bind(new(usecase.LocalConfigStore), new(*fs.LocalConfigStoreAdapter)),
)

// ProgressSet provides the progress reporting sink
var ProgressSet = wire.NewSet(
	progress.NewProgressSink,
)

// ScriptSet provides the deploy scripts compiled into the binary
var ScriptSet = wire.NewSet(
	core.NewRegistry,
	wire.Bind(new(usecase.ScriptRegistry), new(*core.Registry)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	RepositorySet,
	ABISet,
	BlockchainSet,
	VerificationSet,
	CompilerSet,
	InteractiveSet,
	ConfigSet,
	ProgressSet,
	ScriptSet,
)
