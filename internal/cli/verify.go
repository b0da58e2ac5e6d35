package cli

import (
	"fmt"

	"github.com/brevis-network/brevis-deploy/internal/cli/render"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewVerifyCmd creates the verify command
func NewVerifyCmd() *cobra.Command {
	var (
		all   bool
		force bool
	)

	cmd := &cobra.Command{
		Use:   "verify [deployment]",
		Short: "Verify recorded deployments on the block explorer",
		Long: `Submit recorded deployments to the network's Etherscan-compatible explorer
using the construction arguments stored in their records.

Deployments already marked verified are skipped unless --force is given.`,
		Example: `  brevis-deploy verify BrevisRequest -n bsc
  brevis-deploy verify --all -n bsc --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (len(args) == 1) {
				return fmt.Errorf("specify either a deployment name or --all")
			}

			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			opts := usecase.VerifyOptions{Force: force}
			renderer := render.NewVerifyRenderer(cmd.OutOrStdout())

			if all {
				result, err := app.VerifyDeployment.VerifyAll(cmd.Context(), opts)
				if err != nil {
					return err
				}
				return renderer.RenderVerifyAllResult(result, opts)
			}

			result, err := app.VerifyDeployment.VerifySpecific(cmd.Context(), args[0], opts)
			if err != nil {
				return err
			}
			return renderer.RenderVerifyResult(result)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Verify every deployment on the network")
	cmd.Flags().BoolVar(&force, "force", false, "Re-verify deployments already marked verified")

	return cmd
}
