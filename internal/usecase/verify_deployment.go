package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
)

// VerifyDeployment re-submits recorded deployments to the block explorer
type VerifyDeployment struct {
	config    *config.RuntimeConfig
	store     DeploymentStore
	artifacts ArtifactRepository
	encoder   ABIEncoder
	verifier  ContractVerifier
	progress  ProgressSink
}

// NewVerifyDeployment creates a new verify deployment use case
func NewVerifyDeployment(
	cfg *config.RuntimeConfig,
	store DeploymentStore,
	artifacts ArtifactRepository,
	encoder ABIEncoder,
	verifier ContractVerifier,
	progress ProgressSink,
) *VerifyDeployment {
	return &VerifyDeployment{
		config:    cfg,
		store:     store,
		artifacts: artifacts,
		encoder:   encoder,
		verifier:  verifier,
		progress:  progress,
	}
}

// VerifyOptions contains options for verification
type VerifyOptions struct {
	Force bool // Re-verify even if already verified
}

// VerifyResult contains the result of verifying one deployment
type VerifyResult struct {
	Deployment *models.Deployment
	Success    bool
	Skipped    bool
	Errors     []string
}

// VerifyAllResult contains the result of verifying all deployments on a network
type VerifyAllResult struct {
	Results      []*VerifyResult
	SuccessCount int
	SkippedCount int
}

// VerifySpecific verifies one named deployment with its recorded construction args
func (v *VerifyDeployment) VerifySpecific(ctx context.Context, name string, opts VerifyOptions) (*VerifyResult, error) {
	network, err := v.network()
	if err != nil {
		return nil, err
	}

	dep, err := v.store.GetDeployment(ctx, network.Name, name)
	if err != nil {
		return nil, fmt.Errorf("deployment %s on %s: %w", name, network.Name, err)
	}

	return v.verifyDeployment(ctx, network, dep, opts), nil
}

// VerifyAll verifies every primary deployment on the selected network that isn't verified yet
func (v *VerifyDeployment) VerifyAll(ctx context.Context, opts VerifyOptions) (*VerifyAllResult, error) {
	network, err := v.network()
	if err != nil {
		return nil, err
	}

	deployments, err := v.store.ListDeployments(ctx, domain.DeploymentFilter{
		Network:          network.Name,
		IncludeAuxiliary: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	result := &VerifyAllResult{}
	for i, dep := range deployments {
		v.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "verify",
			Current: i + 1,
			Total:   len(deployments),
			Message: fmt.Sprintf("Verifying %s", dep.Name),
			Spinner: true,
		})

		r := v.verifyDeployment(ctx, network, dep, opts)
		result.Results = append(result.Results, r)
		switch {
		case r.Skipped:
			result.SkippedCount++
		case r.Success:
			result.SuccessCount++
		}
	}

	return result, nil
}

func (v *VerifyDeployment) verifyDeployment(ctx context.Context, network *config.Network, dep *models.Deployment, opts VerifyOptions) *VerifyResult {
	if dep.Verification.Status == models.VerificationStatusVerified && !opts.Force {
		return &VerifyResult{
			Deployment: dep,
			Success:    true,
			Skipped:    true,
			Errors:     []string{"Already verified. Use --force to re-verify."},
		}
	}

	info, err := verifyRecord(ctx, v.artifacts, v.encoder, v.verifier, network, dep, dep.Args)
	if err != nil {
		info = failedVerification(err)
	}

	if saveErr := recordVerification(ctx, v.store, network, dep, info); saveErr != nil {
		return &VerifyResult{
			Deployment: dep,
			Errors:     []string{fmt.Sprintf("failed to update deployment record: %v", saveErr)},
		}
	}

	result := &VerifyResult{Deployment: dep}
	switch info.Status {
	case models.VerificationStatusVerified:
		result.Success = true
	case models.VerificationStatusSkipped:
		result.Skipped = true
		result.Errors = []string{info.Reason}
	default:
		result.Errors = []string{info.Reason}
	}
	return result
}

func (v *VerifyDeployment) network() (*config.Network, error) {
	if v.config.Network == nil {
		return nil, fmt.Errorf("%w: use --network to select one", domain.ErrNetworkNotConfigured)
	}
	return v.config.Network, nil
}

// verifyRecord submits the code behind a deployment record to the explorer
// with exactly args as constructor arguments.
func verifyRecord(
	ctx context.Context,
	artifacts ArtifactRepository,
	encoder ABIEncoder,
	verifier ContractVerifier,
	network *config.Network,
	dep *models.Deployment,
	args models.ConstructorArgs,
) (*models.VerificationInfo, error) {
	artifact, err := artifacts.GetArtifact(ctx, dep.ContractName)
	if err != nil {
		return nil, err
	}

	ctorData, err := encoder.EncodeConstructorArgs(artifact, args)
	if err != nil {
		return nil, err
	}

	buildInfo, err := artifacts.GetBuildInfo(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("no build info for %s: %w", artifact.ContractName, err)
	}

	info, err := verifier.Verify(ctx, VerificationRequest{
		Network:         network,
		Address:         common.HexToAddress(dep.ImplementationAddress()),
		Artifact:        artifact,
		BuildInfo:       buildInfo,
		Args:            args.Clone(),
		ConstructorData: ctorData,
	})
	if err != nil {
		return nil, err
	}
	if info.Status == models.VerificationStatusFailed {
		return nil, fmt.Errorf("%w: %s", domain.ErrVerificationFailed, info.Reason)
	}
	return info, nil
}

func failedVerification(err error) *models.VerificationInfo {
	return &models.VerificationInfo{
		Status: models.VerificationStatusFailed,
		Reason: err.Error(),
	}
}

// recordVerification stores the outcome on the record and, for proxied
// deployments, on the companion implementation record.
func recordVerification(ctx context.Context, store DeploymentStore, network *config.Network, dep *models.Deployment, info *models.VerificationInfo) error {
	dep.Verification = *info
	if err := store.SaveDeployment(ctx, dep); err != nil {
		return err
	}
	if !dep.IsProxy() {
		return nil
	}

	impl, err := store.GetDeployment(ctx, network.Name, dep.Name+models.ImplementationSuffix)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	impl.Verification = *info
	return store.SaveDeployment(ctx, impl)
}
