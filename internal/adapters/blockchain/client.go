package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"sync"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DefaultPollInterval is how often a pending transaction's receipt is polled
const DefaultPollInterval = 2 * time.Second

// gasHeadroom is applied to gas estimates, in percent
const gasHeadroom = 120

// Backend is the subset of *ethclient.Client the client needs
type Backend interface {
	ChainID(ctx context.Context) (*big.Int, error)
	CodeAt(ctx context.Context, account common.Address, blockNumber *big.Int) ([]byte, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	SuggestGasTipCap(ctx context.Context) (*big.Int, error)
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	EstimateGas(ctx context.Context, msg ethereum.CallMsg) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	Close()
}

// Client signs and submits transactions through a Backend and waits for them to be mined
type Client struct {
	backend      Backend
	log          *slog.Logger
	pollInterval time.Duration

	mu      sync.Mutex
	chainID *big.Int
}

// NewClient wraps a backend
func NewClient(backend Backend, log *slog.Logger, pollInterval time.Duration) *Client {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Client{
		backend:      backend,
		log:          log,
		pollInterval: pollInterval,
	}
}

// ChainID returns the chain id reported by the node
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := c.chainIDBig(ctx)
	if err != nil {
		return 0, err
	}
	return id.Uint64(), nil
}

func (c *Client) chainIDBig(ctx context.Context) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.chainID != nil {
		return c.chainID, nil
	}
	id, err := c.backend.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get chain ID: %w", err)
	}
	c.chainID = id
	return id, nil
}

// CodeExists reports whether any code is deployed at address
func (c *Client) CodeExists(ctx context.Context, address common.Address) (bool, error) {
	code, err := c.backend.CodeAt(ctx, address, nil)
	if err != nil {
		return false, fmt.Errorf("failed to check code at %s: %w", address.Hex(), err)
	}
	return len(code) > 0, nil
}

// DeployContract sends a contract creation transaction
func (c *Client) DeployContract(ctx context.Context, from *models.Account, creationCode []byte) (*models.TxReceipt, error) {
	return c.send(ctx, from, nil, creationCode)
}

// SendTransaction sends a call to an existing contract
func (c *Client) SendTransaction(ctx context.Context, from *models.Account, to common.Address, data []byte) (*models.TxReceipt, error) {
	return c.send(ctx, from, &to, data)
}

// Close closes the underlying connection
func (c *Client) Close() {
	c.backend.Close()
}

func (c *Client) send(ctx context.Context, from *models.Account, to *common.Address, data []byte) (*models.TxReceipt, error) {
	if !from.CanSign() {
		return nil, fmt.Errorf("%w: no private key for %s", domain.ErrAccountNotFound, from.Address.Hex())
	}

	chainID, err := c.chainIDBig(ctx)
	if err != nil {
		return nil, err
	}

	nonce, err := c.backend.PendingNonceAt(ctx, from.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}

	gas, err := c.backend.EstimateGas(ctx, ethereum.CallMsg{From: from.Address, To: to, Data: data})
	if err != nil {
		return nil, fmt.Errorf("failed to estimate gas: %w", err)
	}
	gas = gas * gasHeadroom / 100

	tx, err := c.buildTx(ctx, chainID, nonce, gas, to, data)
	if err != nil {
		return nil, err
	}

	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), from.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.backend.SendTransaction(ctx, signed); err != nil {
		return nil, fmt.Errorf("failed to send transaction: %w", err)
	}
	c.log.Debug("transaction sent", "hash", signed.Hash().Hex(), "nonce", nonce, "gas", gas)

	receipt, err := c.waitMined(ctx, signed.Hash())
	if err != nil {
		return nil, err
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return nil, fmt.Errorf("%w: %s", domain.ErrTransactionReverted, signed.Hash().Hex())
	}

	out := &models.TxReceipt{
		TxHash:          signed.Hash(),
		GasUsed:         receipt.GasUsed,
		ContractAddress: receipt.ContractAddress,
	}
	if receipt.BlockNumber != nil {
		out.BlockNumber = receipt.BlockNumber.Uint64()
	}
	return out, nil
}

// buildTx prefers an EIP-1559 transaction and falls back to a legacy one on
// chains without a base fee.
func (c *Client) buildTx(ctx context.Context, chainID *big.Int, nonce, gas uint64, to *common.Address, data []byte) (*types.Transaction, error) {
	head, err := c.backend.HeaderByNumber(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest header: %w", err)
	}

	if head.BaseFee != nil {
		tip, err := c.backend.SuggestGasTipCap(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas tip: %w", err)
		}
		feeCap := new(big.Int).Add(tip, new(big.Int).Mul(head.BaseFee, big.NewInt(2)))
		return types.NewTx(&types.DynamicFeeTx{
			ChainID:   chainID,
			Nonce:     nonce,
			GasTipCap: tip,
			GasFeeCap: feeCap,
			Gas:       gas,
			To:        to,
			Data:      data,
		}), nil
	}

	price, err := c.backend.SuggestGasPrice(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest gas price: %w", err)
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: price,
		Gas:      gas,
		To:       to,
		Data:     data,
	}), nil
}

func (c *Client) waitMined(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, hash)
		if err == nil {
			return receipt, nil
		}
		if !errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("failed to get receipt for %s: %w", hash.Hex(), err)
		}

		c.log.Debug("waiting for transaction", "hash", hash.Hex())
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}

var _ usecase.ChainClient = (*Client)(nil)
