package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/fatih/color"
)

// DeploymentRenderer renders detailed information about a single deployment
type DeploymentRenderer struct {
	out io.Writer
}

// NewDeploymentRenderer creates a new deployment renderer
func NewDeploymentRenderer(out io.Writer) *DeploymentRenderer {
	return &DeploymentRenderer{out: out}
}

// RenderDeployment renders detailed deployment information
func (r *DeploymentRenderer) RenderDeployment(result *usecase.ShowDeploymentResult) error {
	d := result.Deployment

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deployment: %s\n", d.Name)
	fmt.Fprintln(r.out, strings.Repeat("=", 80))

	fmt.Fprintln(r.out, "\nBasic Information:")
	fmt.Fprintf(r.out, "  Contract: %s\n", color.New(color.FgYellow).Sprint(d.ContractName))
	fmt.Fprintf(r.out, "  Address: %s\n", d.Address)
	fmt.Fprintf(r.out, "  Network: %s (chain %d)\n", d.Network, d.ChainID)
	if d.Deployer != "" {
		fmt.Fprintf(r.out, "  Deployer: %s\n", d.Deployer)
	}
	fmt.Fprintf(r.out, "  Deployments: %d\n", d.NumDeployments)

	if len(d.Args) > 0 {
		fmt.Fprintln(r.out, "\nConstructor Arguments:")
		for i, arg := range d.Args {
			fmt.Fprintf(r.out, "  [%d] %s\n", i, arg)
		}
	}

	if d.CurrentImplementation != "" {
		fmt.Fprintf(r.out, "  Current Implementation: %s\n", d.CurrentImplementation)
	}

	if d.Proxy != nil {
		fmt.Fprintln(r.out, "\nProxy Information:")
		fmt.Fprintf(r.out, "  Type: %s\n", d.Proxy.Type)
		fmt.Fprintf(r.out, "  Proxy: %s\n", d.Proxy.Address)
		fmt.Fprintf(r.out, "  Implementation: %s\n", d.Proxy.Implementation)
		if result.Implementation != nil {
			fmt.Fprintf(r.out, "  Implementation Record: %s\n", color.New(color.FgCyan).Sprint(result.Implementation.Name))
		}
		if d.Proxy.Admin != "" {
			fmt.Fprintf(r.out, "  Admin: %s\n", d.Proxy.Admin)
		}
		if d.Proxy.InitMethod != "" {
			fmt.Fprintf(r.out, "  Initializer: %s(%s)\n", d.Proxy.InitMethod, strings.Join(d.Proxy.InitArgs, ", "))
		}

		if len(d.Proxy.History) > 0 {
			fmt.Fprintln(r.out, "  Upgrade History:")
			for i, upgrade := range d.Proxy.History {
				fmt.Fprintf(r.out, "    %d. %s (upgraded at %s, tx %s)\n",
					i+1,
					upgrade.Implementation,
					upgrade.UpgradedAt.Format("2006-01-02 15:04:05"),
					upgrade.TransactionHash,
				)
			}
		}
	}

	fmt.Fprintln(r.out, "\nVerification Status:")
	fmt.Fprintf(r.out, "  Status: %s\n", statusLabel(d.Verification.Status))
	if d.Verification.URL != "" {
		fmt.Fprintf(r.out, "  Explorer: %s\n", d.Verification.URL)
	}
	if d.Verification.Reason != "" {
		fmt.Fprintf(r.out, "  Reason: %s\n", d.Verification.Reason)
	}
	if d.Verification.VerifiedAt != nil {
		fmt.Fprintf(r.out, "  Verified At: %s\n", d.Verification.VerifiedAt.Format("2006-01-02 15:04:05"))
	}

	if d.TransactionHash != "" {
		fmt.Fprintln(r.out, "\nTransaction Information:")
		fmt.Fprintf(r.out, "  Hash: %s\n", d.TransactionHash)
		if d.BlockNumber > 0 {
			fmt.Fprintf(r.out, "  Block: %d\n", d.BlockNumber)
		}
	}
	if d.BytecodeHash != "" {
		fmt.Fprintf(r.out, "  Bytecode Hash: %s\n", d.BytecodeHash)
	}

	fmt.Fprintln(r.out, "\nTimestamps:")
	fmt.Fprintf(r.out, "  Created: %s\n", d.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(r.out, "  Updated: %s\n", d.UpdatedAt.Format("2006-01-02 15:04:05"))

	return nil
}
