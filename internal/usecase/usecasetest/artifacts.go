package usecasetest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
)

const proxyABI = `[
  {"type":"constructor","inputs":[{"name":"_logic","type":"address"},{"name":"_admin","type":"address"},{"name":"_data","type":"bytes"}],"stateMutability":"payable"},
  {"type":"function","name":"upgradeTo","inputs":[{"name":"newImplementation","type":"address"}],"outputs":[],"stateMutability":"nonpayable"},
  {"type":"function","name":"admin","inputs":[],"outputs":[{"name":"","type":"address"}],"stateMutability":"nonpayable"}
]`

const proofABI = `[
  {"type":"constructor","inputs":[{"name":"_txClient","type":"address"}],"stateMutability":"nonpayable"},
  {"type":"function","name":"init","inputs":[{"name":"_txClient","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}
]`

const requestABI = `[
  {"type":"constructor","inputs":[{"name":"_feeCollector","type":"address"},{"name":"_brevisProof","type":"address"},{"name":"_bvnSigner","type":"address"}],"stateMutability":"nonpayable"},
  {"type":"function","name":"init","inputs":[{"name":"_feeCollector","type":"address"},{"name":"_brevisProof","type":"address"},{"name":"_bvnSigner","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}
]`

// Artifacts is an ArtifactRepository over a fixed set of artifacts
type Artifacts map[string]*models.Artifact

// NewArtifacts returns the proxy, BrevisProof and BrevisRequest artifacts
// with short placeholder bytecode.
func NewArtifacts() Artifacts {
	return Artifacts{
		"OptimizedTransparentProxy": {
			ContractName: "OptimizedTransparentProxy",
			SourceName:   "solc_0.8/proxy/OptimizedTransparentUpgradeableProxy.sol",
			ABI:          json.RawMessage(proxyABI),
			Bytecode:     "0x608060405201",
		},
		"BrevisProof": {
			ContractName: "BrevisProof",
			SourceName:   "contracts/BrevisProof.sol",
			ABI:          json.RawMessage(proofABI),
			Bytecode:     "0x608060405202",
		},
		"BrevisRequest": {
			ContractName: "BrevisRequest",
			SourceName:   "contracts/BrevisRequest.sol",
			ABI:          json.RawMessage(requestABI),
			Bytecode:     "0x608060405203",
		},
	}
}

func (a Artifacts) GetArtifact(_ context.Context, name string) (*models.Artifact, error) {
	artifact, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrContractNotFound, name)
	}
	return artifact, nil
}

func (a Artifacts) GetBuildInfo(_ context.Context, artifact *models.Artifact) (*models.BuildInfo, error) {
	return &models.BuildInfo{
		ID:              "test",
		SolcVersion:     "0.8.20",
		SolcLongVersion: "0.8.20+commit.a1b79de6",
		Input:           json.RawMessage(`{"language":"Solidity","sources":{}}`),
	}, nil
}

var _ usecase.ArtifactRepository = Artifacts(nil)
