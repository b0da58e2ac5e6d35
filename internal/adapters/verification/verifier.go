package verification

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultPollInterval = 5 * time.Second
	defaultMaxAttempts  = 30
)

// VerifierAdapter verifies contracts on Etherscan-compatible explorers
type VerifierAdapter struct {
	service      *Service
	log          *slog.Logger
	disabled     bool
	apiKey       string
	pollInterval time.Duration
	maxAttempts  int
	now          func() time.Time
}

// NewVerifierAdapter creates a verifier from the [verification] settings
func NewVerifierAdapter(cfg *config.RuntimeConfig, service *Service, log *slog.Logger) (*VerifierAdapter, error) {
	v := &VerifierAdapter{
		service:      service,
		log:          log,
		pollInterval: defaultPollInterval,
		maxAttempts:  defaultMaxAttempts,
		now:          time.Now,
	}

	if cfg.Project == nil {
		return v, nil
	}
	vc := cfg.Project.Verification
	v.disabled = vc.Disabled
	v.apiKey = vc.APIKey
	if vc.PollInterval != "" {
		d, err := time.ParseDuration(vc.PollInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid verification.poll_interval %q: %w", vc.PollInterval, err)
		}
		v.pollInterval = d
	}
	if vc.MaxAttempts > 0 {
		v.maxAttempts = vc.MaxAttempts
	}
	return v, nil
}

// Verify submits the contract at req.Address and waits for the explorer's verdict
func (v *VerifierAdapter) Verify(ctx context.Context, req usecase.VerificationRequest) (*models.VerificationInfo, error) {
	network := req.Network
	if reason := v.skipReason(network); reason != "" {
		v.log.Debug("verification skipped", "address", req.Address.Hex(), "reason", reason)
		return &models.VerificationInfo{Status: models.VerificationStatusSkipped, Reason: reason}, nil
	}

	target := Target{APIURL: network.ExplorerAPIURL, APIKey: v.keyFor(network), ChainID: network.ChainID}
	address := req.Address.Hex()
	codeURL := explorerCodeURL(network, req.Address)

	verified, err := v.service.IsVerified(ctx, target, address)
	if err != nil {
		v.log.Debug("could not check existing verification", "address", address, "error", err)
	}
	if verified {
		return v.verified(codeURL, ""), nil
	}

	if req.BuildInfo == nil || len(req.BuildInfo.Input) == 0 {
		return nil, fmt.Errorf("%w: no compiler input for %s", domain.ErrVerificationFailed, req.Artifact.ContractName)
	}

	guid, err := v.service.Submit(ctx, target, SubmitParams{
		Address:         address,
		ContractName:    req.Artifact.FullyQualifiedName(),
		CompilerVersion: req.BuildInfo.CompilerVersion(),
		StandardJSON:    string(req.BuildInfo.Input),
		ConstructorArgs: common.Bytes2Hex(req.ConstructorData),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrVerificationFailed, err)
	}
	if guid == "" {
		return v.verified(codeURL, ""), nil
	}

	v.log.Info("verification submitted", "address", address, "guid", guid)
	for attempt := 0; attempt < v.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(v.pollInterval):
		}

		status, err := v.service.CheckVerificationStatus(ctx, target, guid)
		if err != nil {
			v.log.Debug("status check failed", "guid", guid, "error", err)
			continue
		}
		if status.Pending {
			continue
		}
		if status.Verified {
			return v.verified(codeURL, guid), nil
		}
		return &models.VerificationInfo{
			Status: models.VerificationStatusFailed,
			GUID:   guid,
			Reason: status.Message,
		}, nil
	}

	return nil, fmt.Errorf("%w: still pending after %d checks (guid %s)", domain.ErrVerificationFailed, v.maxAttempts, guid)
}

func (v *VerifierAdapter) skipReason(network *config.Network) string {
	switch {
	case v.disabled:
		return "verification disabled"
	case network.IsLocal():
		return "local network"
	case v.keyFor(network) == "":
		return "no explorer API key for " + network.Name
	}
	return ""
}

func (v *VerifierAdapter) keyFor(network *config.Network) string {
	if network.ExplorerAPIKey != "" {
		return network.ExplorerAPIKey
	}
	return v.apiKey
}

func (v *VerifierAdapter) verified(url, guid string) *models.VerificationInfo {
	now := v.now()
	return &models.VerificationInfo{
		Status:     models.VerificationStatusVerified,
		URL:        url,
		GUID:       guid,
		VerifiedAt: &now,
	}
}

func explorerCodeURL(network *config.Network, address common.Address) string {
	if network.ExplorerURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/address/%s#code", strings.TrimSuffix(network.ExplorerURL, "/"), address.Hex())
}

// Ensure the adapter implements the interface
var _ usecase.ContractVerifier = (*VerifierAdapter)(nil)
