package core

import (
	"context"

	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
)

// BrevisProof is the deployment name and tag of the proof contract
const BrevisProof = "BrevisProof"

// BrevisProofScript deploys BrevisProof behind a transparent proxy. The
// single init argument is a placeholder zero address.
func BrevisProofScript() usecase.DeployScript {
	return usecase.DeployScript{
		ID:   "000_brevis_proof",
		Tags: []string{BrevisProof},
		Run:  deployBrevisProof,
	}
}

func deployBrevisProof(ctx context.Context, env usecase.Environment) error {
	deployer, err := env.NamedAccount(ctx, "deployer")
	if err != nil {
		return err
	}

	args := models.ConstructorArgs{common.Address{}.Hex()}
	deployment, err := env.Deploy(ctx, BrevisProof, usecase.DeployOptions{
		From: deployer,
		Args: args,
		Proxy: &usecase.ProxyOptions{
			ProxyContract: usecase.DefaultProxyContract,
			Execute: &usecase.ProxyInit{
				MethodName: "init",
				Args:       args,
			},
		},
	})
	if err != nil {
		return err
	}

	env.Verify(ctx, deployment, args)
	return nil
}
