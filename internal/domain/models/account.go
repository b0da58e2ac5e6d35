package models

import (
	"crypto/ecdsa"

	"github.com/ethereum/go-ethereum/common"
)

// Account is a named account resolved from project configuration
type Account struct {
	Name    string
	Address common.Address
	Key     *ecdsa.PrivateKey // nil for address-only accounts
}

// CanSign reports whether transactions can be sent from this account
func (a *Account) CanSign() bool {
	return a != nil && a.Key != nil
}
