package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
)

// RunDeploymentsOptions contains options for a deployment run
type RunDeploymentsOptions struct {
	Tags       []string // empty runs every script
	SkipVerify bool
	Compile    bool
}

// ScriptResult contains the outcome of one deploy script
type ScriptResult struct {
	ScriptID    string
	Deployments []*models.Deployment
	Reused      map[string]bool
	Duration    time.Duration
}

// RunDeploymentsResult contains the result of a deployment run
type RunDeploymentsResult struct {
	Network *config.Network
	Scripts []*ScriptResult
}

// RunDeployments selects deploy scripts by tag and runs them in order against one network
type RunDeployments struct {
	config    *config.RuntimeConfig
	registry  ScriptRegistry
	connector ChainConnector
	store     DeploymentStore
	artifacts ArtifactRepository
	encoder   ABIEncoder
	accounts  AccountResolver
	verifier  ContractVerifier
	compiler  CompileRunner
	progress  ProgressSink
	log       *slog.Logger
	now       func() time.Time
}

// NewRunDeployments creates a new RunDeployments use case
func NewRunDeployments(
	cfg *config.RuntimeConfig,
	registry ScriptRegistry,
	connector ChainConnector,
	store DeploymentStore,
	artifacts ArtifactRepository,
	encoder ABIEncoder,
	accounts AccountResolver,
	verifier ContractVerifier,
	compiler CompileRunner,
	progress ProgressSink,
	log *slog.Logger,
) *RunDeployments {
	return &RunDeployments{
		config:    cfg,
		registry:  registry,
		connector: connector,
		store:     store,
		artifacts: artifacts,
		encoder:   encoder,
		accounts:  accounts,
		verifier:  verifier,
		compiler:  compiler,
		progress:  progress,
		log:       log,
		now:       time.Now,
	}
}

// Tags returns every tag carried by a registered script, sorted
func (uc *RunDeployments) Tags() []string {
	tags := lo.Uniq(lo.FlatMap(uc.registry.Scripts(), func(s DeployScript, _ int) []string {
		return s.Tags
	}))
	sort.Strings(tags)
	return tags
}

// SelectScripts returns the scripts carrying any of tags plus the scripts
// their dependencies name, in ID order. No tags selects everything.
func (uc *RunDeployments) SelectScripts(tags []string) ([]DeployScript, error) {
	all := append([]DeployScript(nil), uc.registry.Scripts()...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	if len(tags) == 0 {
		return all, nil
	}

	known := uc.Tags()
	for _, tag := range tags {
		if !lo.Contains(known, tag) {
			return nil, UnknownTag(tag, known)
		}
	}

	selected := make(map[string]bool)
	visited := make(map[string]bool)
	var visit func(tag string)
	visit = func(tag string) {
		if visited[tag] {
			return
		}
		visited[tag] = true
		for _, s := range all {
			if !lo.Contains(s.Tags, tag) {
				continue
			}
			selected[s.ID] = true
			for _, dep := range s.Dependencies {
				visit(dep)
			}
		}
	}
	for _, tag := range tags {
		visit(tag)
	}

	return lo.Filter(all, func(s DeployScript, _ int) bool { return selected[s.ID] }), nil
}

// UnknownTag builds the error for a tag no script carries, suggesting close matches
func UnknownTag(tag string, known []string) error {
	var suggestions []string
	for _, m := range fuzzy.Find(tag, known) {
		suggestions = append(suggestions, m.Str)
	}
	if len(suggestions) == 0 {
		suggestions = lo.Filter(known, func(k string, _ int) bool { return strings.EqualFold(k, tag) })
	}
	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return domain.UnknownTagErr{Tag: tag, Suggestions: suggestions}
}

// Run executes the selected scripts sequentially; the first failure halts the run
func (uc *RunDeployments) Run(ctx context.Context, opts RunDeploymentsOptions) (*RunDeploymentsResult, error) {
	if uc.config.Network == nil {
		return nil, fmt.Errorf("%w: use --network to select one", domain.ErrNetworkNotConfigured)
	}
	network := *uc.config.Network

	scripts, err := uc.SelectScripts(opts.Tags)
	if err != nil {
		return nil, err
	}

	if opts.Compile && uc.compiler != nil {
		uc.progress.OnProgress(ctx, ProgressEvent{Stage: "compile", Message: "Compiling contracts", Spinner: true})
		if err := uc.compiler.Compile(ctx); err != nil {
			return nil, fmt.Errorf("compilation failed: %w", err)
		}
		if r, ok := uc.artifacts.(interface{ Reset() }); ok {
			r.Reset()
		}
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "connect", Message: fmt.Sprintf("Connecting to %s", network.Name), Spinner: true})
	client, err := uc.connector.Connect(ctx, &network)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", network.Name, err)
	}
	defer client.Close()

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	if network.ChainID != 0 && network.ChainID != chainID {
		return nil, fmt.Errorf("%w: %s is configured for chain %d but the node reports %d",
			domain.ErrNetworkMismatch, network.Name, network.ChainID, chainID)
	}
	network.ChainID = chainID

	if err := uc.store.SetChainID(ctx, network.Name, chainID); err != nil {
		return nil, err
	}

	env := &environment{
		cfg:        uc.config,
		network:    &network,
		client:     client,
		store:      uc.store,
		artifacts:  uc.artifacts,
		encoder:    uc.encoder,
		accounts:   uc.accounts,
		verifier:   uc.verifier,
		log:        uc.log.With("network", network.Name),
		skipVerify: opts.SkipVerify,
		now:        uc.now,
		signers:    make(map[common.Address]*models.Account),
	}

	result := &RunDeploymentsResult{Network: &network}
	for i, script := range scripts {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "deploy",
			Current: i + 1,
			Total:   len(scripts),
			Message: fmt.Sprintf("Running %s", script.ID),
			Spinner: true,
		})

		env.touched = nil
		env.reused = make(map[string]bool)
		start := uc.now()

		if err := script.Run(ctx, env); err != nil {
			uc.progress.OnProgress(ctx, ProgressEvent{Stage: "failed", Message: script.ID})
			return result, domain.ScriptErr{ScriptID: script.ID, Err: err}
		}

		result.Scripts = append(result.Scripts, &ScriptResult{
			ScriptID:    script.ID,
			Deployments: env.touched,
			Reused:      env.reused,
			Duration:    uc.now().Sub(start),
		})
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "completed", Current: len(scripts), Total: len(scripts)})
	return result, nil
}

// IsScriptFailure reports whether err came from a deploy script rather than setup
func IsScriptFailure(err error) bool {
	var se domain.ScriptErr
	return errors.As(err, &se)
}
