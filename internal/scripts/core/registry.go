// Package core holds the deploy scripts for the Brevis core contracts.
package core

import (
	"github.com/brevis-network/brevis-deploy/internal/usecase"
)

// Registry exposes the core deploy scripts to the orchestrator
type Registry struct{}

// NewRegistry creates the core script registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Scripts returns the core deploy scripts in run order
func (r *Registry) Scripts() []usecase.DeployScript {
	return []usecase.DeployScript{
		BrevisProofScript(),
		BrevisRequestScript(),
	}
}

var _ usecase.ScriptRegistry = (*Registry)(nil)
