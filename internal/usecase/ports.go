package usecase

import (
	"context"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// DeploymentStore handles persistence of deployment records, scoped per network
type DeploymentStore interface {
	GetDeployment(ctx context.Context, network, name string) (*models.Deployment, error)
	SaveDeployment(ctx context.Context, deployment *models.Deployment) error
	DeleteDeployment(ctx context.Context, network, name string) error
	ListDeployments(ctx context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error)
	ListNetworks(ctx context.Context) ([]string, error)
	SetChainID(ctx context.Context, network string, chainID uint64) error
}

// ArtifactRepository provides access to compiled contracts
type ArtifactRepository interface {
	GetArtifact(ctx context.Context, name string) (*models.Artifact, error)
	GetBuildInfo(ctx context.Context, artifact *models.Artifact) (*models.BuildInfo, error)
}

// ABIEncoder packs textual args against artifact ABIs
type ABIEncoder interface {
	EncodeConstructorArgs(artifact *models.Artifact, args models.ConstructorArgs) ([]byte, error)
	EncodeCall(artifact *models.Artifact, method string, args models.ConstructorArgs) ([]byte, error)
}

// ChainConnector opens a client for a network
type ChainConnector interface {
	Connect(ctx context.Context, network *config.Network) (ChainClient, error)
}

// ChainClient submits transactions to a connected node and waits for them to be mined
type ChainClient interface {
	ChainID(ctx context.Context) (uint64, error)
	CodeExists(ctx context.Context, address common.Address) (bool, error)
	DeployContract(ctx context.Context, from *models.Account, creationCode []byte) (*models.TxReceipt, error)
	SendTransaction(ctx context.Context, from *models.Account, to common.Address, data []byte) (*models.TxReceipt, error)
	Close()
}

// AccountResolver resolves named accounts such as "deployer"
type AccountResolver interface {
	ResolveAccount(ctx context.Context, network *config.Network, name string) (*models.Account, error)
}

// NetworkResolver resolves network names to configurations
type NetworkResolver interface {
	ResolveNetwork(ctx context.Context, name string) (*config.Network, error)
	GetNetworkNames(ctx context.Context) []string
}

// VerificationRequest carries everything an explorer needs to verify one contract
type VerificationRequest struct {
	Network         *config.Network
	Address         common.Address
	Artifact        *models.Artifact
	BuildInfo       *models.BuildInfo
	Args            models.ConstructorArgs
	ConstructorData []byte // Args packed against the constructor
}

// ContractVerifier handles contract verification
type ContractVerifier interface {
	Verify(ctx context.Context, req VerificationRequest) (*models.VerificationInfo, error)
}

// CompileRunner compiles the contracts before a run
type CompileRunner interface {
	Compile(ctx context.Context) error
}

// DeploymentSelector handles interactive selection of deployments
type DeploymentSelector interface {
	SelectDeployment(ctx context.Context, deployments []*models.Deployment, prompt string) (*models.Deployment, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage    string
	Current  int
	Total    int
	Message  string
	Spinner  bool
	Metadata interface{}
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}

// LocalConfigStore persists the uncommitted local settings
type LocalConfigStore interface {
	Exists() bool
	Load(ctx context.Context) (*config.LocalConfig, error)
	Save(ctx context.Context, cfg *config.LocalConfig) error
	GetPath() string
}
