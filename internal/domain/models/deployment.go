package models

import (
	"encoding/json"
	"strings"
	"time"
)

// Suffixes of the auxiliary records written next to a proxied deployment
const (
	ImplementationSuffix = "_Implementation"
	ProxySuffix          = "_Proxy"
)

// VerificationStatus represents the verification status
type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "UNVERIFIED"
	VerificationStatusVerified   VerificationStatus = "VERIFIED"
	VerificationStatusFailed     VerificationStatus = "FAILED"
	VerificationStatusSkipped    VerificationStatus = "SKIPPED"
)

// ConstructorArgs is the ordered list of values passed to a constructor or
// initializer. Values are kept textual and converted against the ABI input
// types when packed.
type ConstructorArgs []string

// Clone returns an independent copy of the args
func (a ConstructorArgs) Clone() ConstructorArgs {
	if a == nil {
		return nil
	}
	out := make(ConstructorArgs, len(a))
	copy(out, a)
	return out
}

// Deployment is the record persisted for every named deployment on a network
type Deployment struct {
	// Core identification
	Name         string `json:"name"`         // registry key, e.g. "BrevisProof"
	ContractName string `json:"contractName"` // artifact name
	Network      string `json:"network"`
	ChainID      uint64 `json:"chainId"`
	Address      string `json:"address"` // externally visible address (the proxy for proxied deployments)

	// Construction
	Args            ConstructorArgs `json:"args"`
	ABI             json.RawMessage `json:"abi,omitempty"`
	TransactionHash string          `json:"transactionHash,omitempty"`
	BlockNumber     uint64          `json:"blockNumber,omitempty"`
	Deployer        string          `json:"deployer,omitempty"`
	BytecodeHash    string          `json:"bytecodeHash,omitempty"` // keccak of creation code incl. packed args

	// CurrentImplementation is set on <Name>_Proxy records once the proxy has
	// been upgraded. Args keep the creation-time constructor values.
	CurrentImplementation string `json:"currentImplementation,omitempty"`

	// Proxy information (nil for non-proxy deployments)
	Proxy *ProxyInfo `json:"proxy,omitempty"`

	// Verification information
	Verification VerificationInfo `json:"verification"`

	NumDeployments int       `json:"numDeployments"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// ProxyInfo contains proxy-specific information
type ProxyInfo struct {
	Type                   string          `json:"type"` // e.g. "OptimizedTransparentProxy"
	Address                string          `json:"address"`
	Implementation         string          `json:"implementation"`
	ImplementationCodeHash string          `json:"implementationCodeHash"`
	Admin                  string          `json:"admin"`
	InitMethod             string          `json:"initMethod,omitempty"`
	InitArgs               ConstructorArgs `json:"initArgs,omitempty"`
	History                []ProxyUpgrade  `json:"history,omitempty"`
}

// ProxyUpgrade records a proxy being pointed at a new implementation
type ProxyUpgrade struct {
	Implementation  string    `json:"implementation"`
	TransactionHash string    `json:"transactionHash"`
	UpgradedAt      time.Time `json:"upgradedAt"`
}

// VerificationInfo contains verification details
type VerificationInfo struct {
	Status     VerificationStatus `json:"status"`
	URL        string             `json:"url,omitempty"`
	GUID       string             `json:"guid,omitempty"`
	Reason     string             `json:"reason,omitempty"`
	VerifiedAt *time.Time         `json:"verifiedAt,omitempty"`
}

// IsProxy reports whether the deployment sits behind a proxy
func (d *Deployment) IsProxy() bool {
	return d.Proxy != nil
}

// IsAuxiliary reports whether this is an _Implementation or _Proxy companion record
func (d *Deployment) IsAuxiliary() bool {
	return IsAuxiliaryName(d.Name)
}

// ImplementationAddress returns the address holding the contract code
func (d *Deployment) ImplementationAddress() string {
	if d.Proxy != nil && d.Proxy.Implementation != "" {
		return d.Proxy.Implementation
	}
	return d.Address
}

// IsAuxiliaryName reports whether a record name is an _Implementation or _Proxy companion
func IsAuxiliaryName(name string) bool {
	return strings.HasSuffix(name, ImplementationSuffix) || strings.HasSuffix(name, ProxySuffix)
}
