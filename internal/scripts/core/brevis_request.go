package core

import (
	"context"

	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
)

// BrevisRequest is the deployment name and tag of the request contract
const BrevisRequest = "BrevisRequest"

// Defaults for the BrevisRequest init args. Both can be overridden per
// network under [networks.<name>.contracts.BrevisRequest].
const (
	DefaultRequestOperator     = "0x58b529F9084D7eAA598EB3477Fe36064C5B7bbC1"
	DefaultRequestFeeRecipient = "0x9FC952BdCbB7Daca7d420fA55b942405B073A89d"
)

// BrevisRequestScript deploys BrevisRequest behind a transparent proxy. It
// reads the BrevisProof record, so BrevisProof must have been deployed to the
// same network first.
func BrevisRequestScript() usecase.DeployScript {
	return usecase.DeployScript{
		ID:   "001_brevis_request",
		Tags: []string{BrevisRequest},
		Run:  deployBrevisRequest,
	}
}

func deployBrevisRequest(ctx context.Context, env usecase.Environment) error {
	deployer, err := env.NamedAccount(ctx, "deployer")
	if err != nil {
		return err
	}

	proof, err := env.Get(ctx, BrevisProof)
	if err != nil {
		return err
	}

	args := models.ConstructorArgs{
		env.ContractSetting(BrevisRequest, "operator", DefaultRequestOperator),
		proof.Address,
		env.ContractSetting(BrevisRequest, "fee_recipient", DefaultRequestFeeRecipient),
	}
	deployment, err := env.Deploy(ctx, BrevisRequest, usecase.DeployOptions{
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
