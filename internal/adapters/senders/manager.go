package senders

import (
	"context"
	"fmt"
	"strings"

	"github.com/brevis-network/brevis-deploy/internal/domain"
	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Service resolves named accounts from [named_accounts] and their per-network overrides
type Service struct {
	cfg *config.RuntimeConfig
}

// NewService creates a new named account service
func NewService(cfg *config.RuntimeConfig) *Service {
	return &Service{cfg: cfg}
}

// ResolveAccount resolves a named account for a network
func (s *Service) ResolveAccount(ctx context.Context, network *config.Network, name string) (*models.Account, error) {
	var networkName string
	if network != nil {
		networkName = network.Name
	}

	accounts := s.cfg.NamedAccounts(networkName)
	acc, ok := accounts[name]
	if !ok {
		// Try case-insensitive lookup
		for key, candidate := range accounts {
			if strings.EqualFold(key, name) {
				acc, ok = candidate, true
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s (configure [named_accounts.%s])", domain.ErrAccountNotFound, name, name)
	}

	return buildAccount(name, acc)
}

func buildAccount(name string, acc config.AccountConfig) (*models.Account, error) {
	if strings.Contains(acc.PrivateKey, "${") {
		return nil, fmt.Errorf("named account %s: private key references an unset environment variable", name)
	}

	if acc.PrivateKey != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(acc.PrivateKey, "0x"))
		if err != nil {
			return nil, fmt.Errorf("named account %s: invalid private key: %w", name, err)
		}
		address := crypto.PubkeyToAddress(key.PublicKey)
		if acc.Address != "" && !strings.EqualFold(common.HexToAddress(acc.Address).Hex(), address.Hex()) {
			return nil, fmt.Errorf("named account %s: address %s does not match private key (%s)", name, acc.Address, address.Hex())
		}
		return &models.Account{Name: name, Address: address, Key: key}, nil
	}

	if acc.Address != "" {
		if !common.IsHexAddress(acc.Address) {
			return nil, fmt.Errorf("named account %s: %w: %s", name, domain.ErrInvalidAddress, acc.Address)
		}
		return &models.Account{Name: name, Address: common.HexToAddress(acc.Address)}, nil
	}

	return nil, fmt.Errorf("named account %s has neither private_key nor address", name)
}

var _ usecase.AccountResolver = (*Service)(nil)
