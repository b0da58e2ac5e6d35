// Package usecasetest provides in-memory implementations of the use case
// ports for tests.
package usecasetest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// MemoryStore is a DeploymentStore backed by a map
type MemoryStore struct {
	mu       sync.Mutex
	records  map[string]map[string]*models.Deployment
	chainIDs map[string]uint64
	Saves    int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records:  make(map[string]map[string]*models.Deployment),
		chainIDs: make(map[string]uint64),
	}
}

func (s *MemoryStore) GetDeployment(_ context.Context, network, name string) (*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	dep, ok := s.records[network][name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	return clone(dep), nil
}

func (s *MemoryStore) SaveDeployment(_ context.Context, dep *models.Deployment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.records[dep.Network] == nil {
		s.records[dep.Network] = make(map[string]*models.Deployment)
	}
	s.records[dep.Network][dep.Name] = clone(dep)
	s.Saves++
	return nil
}

func (s *MemoryStore) DeleteDeployment(_ context.Context, network, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[network][name]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, name)
	}
	delete(s.records[network], name)
	return nil
}

func (s *MemoryStore) ListDeployments(_ context.Context, filter domain.DeploymentFilter) ([]*models.Deployment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Deployment
	for _, byName := range s.records {
		for _, dep := range byName {
			if filter.Matches(dep) {
				out = append(out, clone(dep))
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Network != out[j].Network {
			return out[i].Network < out[j].Network
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MemoryStore) ListNetworks(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for network := range s.records {
		out = append(out, network)
	}
	sort.Strings(out)
	return out, nil
}

func (s *MemoryStore) SetChainID(_ context.Context, network string, chainID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chainIDs[network] = chainID
	return nil
}

// ChainID returns the chain id recorded for a network
func (s *MemoryStore) ChainID(network string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chainIDs[network]
}

// Count returns the number of records stored for a network
func (s *MemoryStore) Count(network string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records[network])
}

func clone(dep *models.Deployment) *models.Deployment {
	data, err := json.Marshal(dep)
	if err != nil {
		panic(err)
	}
	var out models.Deployment
	if err := json.Unmarshal(data, &out); err != nil {
		panic(err)
	}
	return &out
}

// SentTx is a transaction recorded by FakeChain
type SentTx struct {
	From common.Address
	To   *common.Address // nil for contract creation
	Data []byte
}

// FakeChain is a ChainClient that assigns CREATE addresses and records every
// transaction without executing anything.
type FakeChain struct {
	mu     sync.Mutex
	ID     uint64
	code   map[common.Address]bool
	nonces map[common.Address]uint64
	block  uint64
	Txs    []SentTx

	// FailDeploy makes the n-th contract creation (1-based) revert
	FailDeploy int
	deploys    int
	Closed     bool
}

func NewFakeChain(chainID uint64) *FakeChain {
	return &FakeChain{
		ID:     chainID,
		code:   make(map[common.Address]bool),
		nonces: make(map[common.Address]uint64),
	}
}

func (c *FakeChain) ChainID(context.Context) (uint64, error) {
	return c.ID, nil
}

func (c *FakeChain) CodeExists(_ context.Context, addr common.Address) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.code[addr], nil
}

// Wipe removes all code, as a restarted dev node would
func (c *FakeChain) Wipe() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.code = make(map[common.Address]bool)
}

func (c *FakeChain) DeployContract(_ context.Context, from *models.Account, creation []byte) (*models.TxReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deploys++
	c.Txs = append(c.Txs, SentTx{From: from.Address, Data: creation})
	nonce := c.nonces[from.Address]
	c.nonces[from.Address]++
	c.block++
	hash := crypto.Keccak256Hash(from.Address.Bytes(), nonceBytes(nonce))
	if c.FailDeploy == c.deploys {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, hash.Hex())
	}
	addr := crypto.CreateAddress(from.Address, nonce)
	c.code[addr] = true
	return &models.TxReceipt{TxHash: hash, BlockNumber: c.block, ContractAddress: addr}, nil
}

func (c *FakeChain) SendTransaction(_ context.Context, from *models.Account, to common.Address, data []byte) (*models.TxReceipt, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Txs = append(c.Txs, SentTx{From: from.Address, To: &to, Data: data})
	nonce := c.nonces[from.Address]
	c.nonces[from.Address]++
	c.block++
	return &models.TxReceipt{TxHash: crypto.Keccak256Hash(from.Address.Bytes(), nonceBytes(nonce)), BlockNumber: c.block}, nil
}

func (c *FakeChain) Close() {
	c.Closed = true
}

// Creations returns the contract creation transactions
func (c *FakeChain) Creations() []SentTx {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []SentTx
	for _, tx := range c.Txs {
		if tx.To == nil {
			out = append(out, tx)
		}
	}
	return out
}

func nonceBytes(n uint64) []byte {
	return common.BigToHash(new(big.Int).SetUint64(n)).Bytes()
}

// Connector hands out one fixed client
type Connector struct {
	Client usecase.ChainClient
	Err    error
}

func (c *Connector) Connect(context.Context, *config.Network) (usecase.ChainClient, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Client, nil
}

// Accounts resolves named accounts from a fixed map
type Accounts map[string]*models.Account

func (a Accounts) ResolveAccount(_ context.Context, _ *config.Network, name string) (*models.Account, error) {
	acc, ok := a[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, name)
	}
	return acc, nil
}

// NewSigner creates an account with a fresh key
func NewSigner(name string) *models.Account {
	key, err := crypto.GenerateKey()
	if err != nil {
		panic(err)
	}
	return &models.Account{Name: name, Address: crypto.PubkeyToAddress(key.PublicKey), Key: key}
}

// Verifier records verification requests
type Verifier struct {
	mu       sync.Mutex
	Requests []usecase.VerificationRequest
	Err      error
}

func (v *Verifier) Verify(_ context.Context, req usecase.VerificationRequest) (*models.VerificationInfo, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.Requests = append(v.Requests, req)
	if v.Err != nil {
		return nil, v.Err
	}
	return &models.VerificationInfo{
		Status: models.VerificationStatusVerified,
		URL:    "https://explorer.test/address/" + req.Address.Hex() + "#code",
	}, nil
}

// Progress records progress events
type Progress struct {
	Events []usecase.ProgressEvent
}

func (p *Progress) OnProgress(_ context.Context, event usecase.ProgressEvent) {
	p.Events = append(p.Events, event)
}
func (p *Progress) Info(string)  {}
func (p *Progress) Error(string) {}

var (
	_ usecase.DeploymentStore  = (*MemoryStore)(nil)
	_ usecase.ChainClient      = (*FakeChain)(nil)
	_ usecase.ChainConnector   = (*Connector)(nil)
	_ usecase.AccountResolver  = Accounts(nil)
	_ usecase.ContractVerifier = (*Verifier)(nil)
	_ usecase.ProgressSink     = (*Progress)(nil)
)
