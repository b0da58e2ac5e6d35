package domain

import (
	"strings"

	"github.com/brevis-network/brevis-deploy/internal/domain/models"
)

// DeploymentFilter defines filtering options for deployment records
type DeploymentFilter struct {
	Network      string
	ChainID      uint64
	Name         string
	ContractName string
	ProxiesOnly  bool

	// IncludeAuxiliary also returns the <Name>_Implementation and <Name>_Proxy records
	IncludeAuxiliary bool
}

// Matches reports whether a deployment passes the filter. Name and
// ContractName compare case-insensitively.
func (f DeploymentFilter) Matches(d *models.Deployment) bool {
	if f.Network != "" && d.Network != f.Network {
		return false
	}
	if f.ChainID != 0 && d.ChainID != f.ChainID {
		return false
	}
	if f.Name != "" && !strings.EqualFold(d.Name, f.Name) {
		return false
	}
	if f.ContractName != "" && !strings.EqualFold(d.ContractName, f.ContractName) {
		return false
	}
	if f.ProxiesOnly && !d.IsProxy() {
		return false
	}
	if !f.IncludeAuxiliary && d.IsAuxiliary() {
		return false
	}
	return true
}
