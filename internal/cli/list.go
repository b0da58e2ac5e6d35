package cli

import (
	"github.com/brevis-network/brevis-deploy/internal/cli/render"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var params usecase.ListDeploymentsParams

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded deployments",
		Long: `List the deployments recorded for the selected network.

The _Implementation and _Proxy companion records of proxied deployments are
hidden unless --aux is given.`,
		Example: `  # List deployments on the selected network
  brevis-deploy list

  # List proxied deployments on every network
  brevis-deploy list --all --proxies`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}

			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
		},
	}

	cmd.Flags().BoolVar(&params.AllNetworks, "all", false, "List deployments on every network")
	cmd.Flags().StringVar(&params.ContractName, "contract", "", "Filter by contract name")
	cmd.Flags().BoolVar(&params.ProxiesOnly, "proxies", false, "Only list proxied deployments")
	cmd.Flags().BoolVar(&params.IncludeAuxiliary, "aux", false, "Include _Implementation and _Proxy records")

	return cmd
}
