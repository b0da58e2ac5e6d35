package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// environment is the Environment handed to deploy scripts during one run
type environment struct {
	cfg        *config.RuntimeConfig
	network    *config.Network
	client     ChainClient
	store      DeploymentStore
	artifacts  ArtifactRepository
	encoder    ABIEncoder
	accounts   AccountResolver
	verifier   ContractVerifier
	log        *slog.Logger
	skipVerify bool
	now        func() time.Time

	signers map[common.Address]*models.Account
	touched []*models.Deployment
	reused  map[string]bool
}

var _ Environment = (*environment)(nil)

func (e *environment) Network() *config.Network {
	return e.network
}

func (e *environment) Logger() *slog.Logger {
	return e.log
}

// NamedAccount resolves a named account and remembers its key for later transactions
func (e *environment) NamedAccount(ctx context.Context, name string) (common.Address, error) {
	acc, err := e.accounts.ResolveAccount(ctx, e.network, name)
	if err != nil {
		return common.Address{}, err
	}
	if acc.CanSign() {
		e.signers[acc.Address] = acc
	}
	return acc.Address, nil
}

func (e *environment) ContractSetting(contract, key, def string) string {
	if v, ok := e.cfg.ContractSettings(e.network.Name, contract)[key]; ok && v != "" {
		return v
	}
	return def
}

func (e *environment) Get(ctx context.Context, name string) (*models.Deployment, error) {
	dep, err := e.store.GetDeployment(ctx, e.network.Name, name)
	if err != nil {
		return nil, fmt.Errorf("deployment %s on %s: %w", name, e.network.Name, err)
	}
	return dep, nil
}

// Deploy deploys a contract, directly or behind a proxy, and persists the record
func (e *environment) Deploy(ctx context.Context, name string, opts DeployOptions) (*models.Deployment, error) {
	if opts.Contract == "" {
		opts.Contract = name
	}

	from, err := e.signer(opts.From)
	if err != nil {
		return nil, err
	}

	if opts.Proxy == nil {
		return e.deploySingleton(ctx, name, from, opts)
	}
	return e.deployProxied(ctx, name, from, opts)
}

func (e *environment) deploySingleton(ctx context.Context, name string, from *models.Account, opts DeployOptions) (*models.Deployment, error) {
	artifact, creation, codeHash, err := e.creationCode(ctx, opts.Contract, opts.Args)
	if err != nil {
		return nil, err
	}

	existing, err := e.existing(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.IsProxy() && existing.BytecodeHash == codeHash {
		if live, err := e.client.CodeExists(ctx, common.HexToAddress(existing.Address)); err != nil {
			return nil, err
		} else if live {
			e.log.Info("reusing deployment", "name", name, "address", existing.Address)
			e.markReused(existing)
			return existing, nil
		}
	}

	e.log.Info("deploying contract", "name", name, "contract", opts.Contract, "from", from.Address.Hex())
	receipt, err := e.client.DeployContract(ctx, from, creation)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy %s: %w", name, err)
	}

	dep := e.newRecord(existing, name, artifact, receipt.ContractAddress, opts.Args, receipt, from)
	dep.BytecodeHash = codeHash
	if err := e.save(ctx, dep); err != nil {
		return nil, err
	}

	e.log.Info("deployed contract", "name", name, "address", dep.Address, "tx", dep.TransactionHash)
	return dep, nil
}

func (e *environment) deployProxied(ctx context.Context, name string, from *models.Account, opts DeployOptions) (*models.Deployment, error) {
	implArtifact, implCreation, implHash, err := e.creationCode(ctx, opts.Contract, opts.Args)
	if err != nil {
		return nil, err
	}

	proxyContract := opts.Proxy.ProxyContract
	if proxyContract == "" {
		proxyContract = DefaultProxyContract
	}
	proxyArtifact, err := e.artifacts.GetArtifact(ctx, proxyContract)
	if err != nil {
		return nil, fmt.Errorf("failed to load proxy artifact %s: %w", proxyContract, err)
	}

	admin := opts.Proxy.Owner
	if admin == (common.Address{}) {
		admin = from.Address
	}

	// Pack everything that doesn't depend on new addresses before sending anything
	var initData []byte
	var initMethod string
	var initArgs models.ConstructorArgs
	if opts.Proxy.Execute != nil {
		initMethod = opts.Proxy.Execute.MethodName
		initArgs = opts.Proxy.Execute.Args.Clone()
		initData, err = e.encoder.EncodeCall(implArtifact, initMethod, initArgs)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s.%s: %w", name, initMethod, err)
		}
	}
	proxyArgs := func(impl common.Address) models.ConstructorArgs {
		return models.ConstructorArgs{impl.Hex(), admin.Hex(), hexutil.Encode(initData)}
	}
	if _, err := e.encoder.EncodeConstructorArgs(proxyArtifact, proxyArgs(common.Address{})); err != nil {
		return nil, fmt.Errorf("proxy %s: %w", proxyContract, err)
	}

	existing, err := e.existing(ctx, name)
	if err != nil {
		return nil, err
	}

	var proxyLive bool
	if existing != nil && existing.Proxy != nil {
		proxyLive, err = e.client.CodeExists(ctx, common.HexToAddress(existing.Proxy.Address))
		if err != nil {
			return nil, err
		}
		if proxyLive && existing.Proxy.ImplementationCodeHash == implHash {
			implLive, err := e.client.CodeExists(ctx, common.HexToAddress(existing.Proxy.Implementation))
			if err != nil {
				return nil, err
			}
			if implLive {
				e.log.Info("reusing proxied deployment", "name", name,
					"proxy", existing.Proxy.Address, "implementation", existing.Proxy.Implementation)
				e.markReused(existing)
				return existing, nil
			}
		}
	}

	e.log.Info("deploying implementation", "name", name, "contract", opts.Contract, "from", from.Address.Hex())
	implReceipt, err := e.client.DeployContract(ctx, from, implCreation)
	if err != nil {
		return nil, fmt.Errorf("failed to deploy implementation of %s: %w", name, err)
	}
	implAddr := implReceipt.ContractAddress

	implExisting, err := e.existing(ctx, name+models.ImplementationSuffix)
	if err != nil {
		return nil, err
	}
	impl := e.newRecord(implExisting, name+models.ImplementationSuffix, implArtifact, implAddr, opts.Args, implReceipt, from)
	impl.BytecodeHash = implHash
	if err := e.save(ctx, impl); err != nil {
		return nil, err
	}

	var (
		proxyAddr    common.Address
		proxyReceipt *models.TxReceipt
		history      []models.ProxyUpgrade
	)

	if proxyLive {
		proxyAddr = common.HexToAddress(existing.Proxy.Address)
		adminAcc, err := e.signer(common.HexToAddress(existing.Proxy.Admin))
		if err != nil {
			return nil, fmt.Errorf("cannot upgrade proxy of %s: %w", name, err)
		}
		upgradeData, err := e.encoder.EncodeCall(proxyArtifact, UpgradeMethod, models.ConstructorArgs{implAddr.Hex()})
		if err != nil {
			return nil, fmt.Errorf("failed to encode proxy upgrade: %w", err)
		}

		e.log.Info("upgrading proxy", "name", name, "proxy", proxyAddr.Hex(), "implementation", implAddr.Hex())
		proxyReceipt, err = e.client.SendTransaction(ctx, adminAcc, proxyAddr, upgradeData)
		if err != nil {
			return nil, fmt.Errorf("failed to upgrade proxy of %s: %w", name, err)
		}
		admin = adminAcc.Address
		initMethod = existing.Proxy.InitMethod
		initArgs = existing.Proxy.InitArgs
		history = append(existing.Proxy.History, models.ProxyUpgrade{
			Implementation:  implAddr.Hex(),
			TransactionHash: proxyReceipt.TxHash.Hex(),
			UpgradedAt:      e.now(),
		})

		if err := e.recordProxyUpgrade(ctx, name, implAddr); err != nil {
			return nil, err
		}
	} else {
		ctorData, err := e.encoder.EncodeConstructorArgs(proxyArtifact, proxyArgs(implAddr))
		if err != nil {
			return nil, fmt.Errorf("proxy %s: %w", proxyContract, err)
		}

		e.log.Info("deploying proxy", "name", name, "proxy", proxyContract, "implementation", implAddr.Hex())
		proxyReceipt, err = e.client.DeployContract(ctx, from, append(common.FromHex(proxyArtifact.Bytecode), ctorData...))
		if err != nil {
			return nil, fmt.Errorf("failed to deploy proxy of %s: %w", name, err)
		}
		proxyAddr = proxyReceipt.ContractAddress

		proxyExisting, err := e.existing(ctx, name+models.ProxySuffix)
		if err != nil {
			return nil, err
		}
		proxyRec := e.newRecord(proxyExisting, name+models.ProxySuffix, proxyArtifact, proxyAddr, proxyArgs(implAddr), proxyReceipt, from)
		if err := e.save(ctx, proxyRec); err != nil {
			return nil, err
		}
	}

	dep := e.newRecord(existing, name, implArtifact, proxyAddr, opts.Args, proxyReceipt, from)
	dep.BytecodeHash = implHash
	dep.Proxy = &models.ProxyInfo{
		Type:                   proxyContract,
		Address:                proxyAddr.Hex(),
		Implementation:         implAddr.Hex(),
		ImplementationCodeHash: implHash,
		Admin:                  admin.Hex(),
		InitMethod:             initMethod,
		InitArgs:               initArgs,
		History:                history,
	}
	if err := e.save(ctx, dep); err != nil {
		return nil, err
	}

	e.log.Info("deployed proxied contract", "name", name, "proxy", dep.Address, "implementation", implAddr.Hex())
	return dep, nil
}

// Verify submits the implementation of a deployment to the explorer with exactly args
func (e *environment) Verify(ctx context.Context, dep *models.Deployment, args models.ConstructorArgs) {
	if dep == nil {
		return
	}
	if e.skipVerify {
		e.log.Debug("verification skipped", "name", dep.Name)
		return
	}

	info, err := verifyRecord(ctx, e.artifacts, e.encoder, e.verifier, e.network, dep, args)
	if err != nil {
		e.log.Warn("verification failed", "name", dep.Name, "error", err)
		info = failedVerification(err)
	} else {
		e.log.Info("verification finished", "name", dep.Name, "status", info.Status, "url", info.URL)
	}

	if err := recordVerification(ctx, e.store, e.network, dep, info); err != nil {
		e.log.Warn("failed to record verification status", "name", dep.Name, "error", err)
	}
}

// signer returns the signing account registered for an address
func (e *environment) signer(addr common.Address) (*models.Account, error) {
	if addr == (common.Address{}) {
		return nil, fmt.Errorf("%w: no sender given", domain.ErrAccountNotFound)
	}
	acc, ok := e.signers[addr]
	if !ok {
		return nil, fmt.Errorf("%w: no private key configured for %s", domain.ErrAccountNotFound, addr.Hex())
	}
	return acc, nil
}

// creationCode loads an artifact and returns its creation code with packed args and its hash
func (e *environment) creationCode(ctx context.Context, contract string, args models.ConstructorArgs) (*models.Artifact, []byte, string, error) {
	artifact, err := e.artifacts.GetArtifact(ctx, contract)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to load artifact %s: %w", contract, err)
	}
	if !artifact.HasBytecode() {
		return nil, nil, "", fmt.Errorf("%s has no bytecode (abstract contract or interface?)", contract)
	}

	ctorData, err := e.encoder.EncodeConstructorArgs(artifact, args)
	if err != nil {
		return nil, nil, "", err
	}

	creation := append(common.FromHex(artifact.Bytecode), ctorData...)
	return artifact, creation, crypto.Keccak256Hash(creation).Hex(), nil
}

// existing returns the stored record for name, or nil when there is none
func (e *environment) existing(ctx context.Context, name string) (*models.Deployment, error) {
	dep, err := e.store.GetDeployment(ctx, e.network.Name, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment %s: %w", name, err)
	}
	return dep, nil
}

// newRecord builds the record for a fresh deployment, carrying over identity fields from a previous one
func (e *environment) newRecord(prev *models.Deployment, name string, artifact *models.Artifact, addr common.Address, args models.ConstructorArgs, receipt *models.TxReceipt, from *models.Account) *models.Deployment {
	now := e.now()
	dep := &models.Deployment{
		Name:            name,
		ContractName:    artifact.ContractName,
		Network:         e.network.Name,
		ChainID:         e.network.ChainID,
		Address:         addr.Hex(),
		Args:            args.Clone(),
		ABI:             artifact.ABI,
		TransactionHash: receipt.TxHash.Hex(),
		BlockNumber:     receipt.BlockNumber,
		Deployer:        from.Address.Hex(),
		Verification:    models.VerificationInfo{Status: models.VerificationStatusUnverified},
		NumDeployments:  1,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if prev != nil {
		dep.NumDeployments = prev.NumDeployments + 1
		dep.CreatedAt = prev.CreatedAt
	}
	return dep
}

// recordProxyUpgrade points the <Name>_Proxy record at the new implementation
func (e *environment) recordProxyUpgrade(ctx context.Context, name string, impl common.Address) error {
	rec, err := e.existing(ctx, name+models.ProxySuffix)
	if err != nil || rec == nil {
		return err
	}
	rec.CurrentImplementation = impl.Hex()
	rec.UpdatedAt = e.now()
	return e.save(ctx, rec)
}

func (e *environment) markReused(dep *models.Deployment) {
	e.reused[dep.Name] = true
	e.touched = append(e.touched, dep)
}

func (e *environment) save(ctx context.Context, dep *models.Deployment) error {
	if err := e.store.SaveDeployment(ctx, dep); err != nil {
		return fmt.Errorf("failed to save deployment %s: %w", dep.Name, err)
	}
	if !dep.IsAuxiliary() {
		e.touched = append(e.touched, dep)
	}
	return nil
}
