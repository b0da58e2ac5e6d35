package cli

import (
	"fmt"

	"github.com/brevis-network/brevis-deploy/internal/cli/render"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	var (
		tags       []string
		skipVerify bool
		compile    bool
		yes        bool
	)

	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run deploy scripts against a network",
		Long: `Run the deploy scripts selected by tag, in order, against the selected network.

Each script deploys its contracts (behind a proxy where configured), records
them under deployments/<network>/ and submits them for verification. Scripts
that depend on other tags pull those scripts in. The first failing script
stops the run.`,
		Example: `  # Deploy everything to the local node
  brevis-deploy deploy

  # Deploy only BrevisRequest to BSC; BrevisProof must already be deployed there
  brevis-deploy deploy -n bsc --tags BrevisRequest

  # Compile first and skip explorer verification
  brevis-deploy deploy --compile --skip-verify`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}
			cfg := app.Config
			out := cmd.OutOrStdout()

			if len(tags) == 0 && !cfg.NonInteractive {
				available := app.RunDeployments.Tags()
				if len(available) > 1 {
					tags, err = SelectTags(available, "Select the tags to deploy")
					if err != nil {
						return err
					}
				}
			}

			scripts, err := app.RunDeployments.SelectScripts(tags)
			if err != nil {
				return err
			}

			networkName := "(none)"
			if cfg.Network != nil {
				networkName = cfg.Network.Name
			}
			renderer := render.NewDeployRenderer(out)
			renderer.RenderPlan(networkName, scripts)

			if cfg.Network != nil && cfg.Network.Live && !yes {
				ok, err := app.Selector.Confirm(fmt.Sprintf("Deploy %d scripts to live network %s", len(scripts), networkName))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Deployment cancelled")
					return nil
				}
			}

			result, runErr := app.RunDeployments.Run(cmd.Context(), usecase.RunDeploymentsOptions{
				Tags:       tags,
				SkipVerify: skipVerify,
				Compile:    compile,
			})
			if err := renderer.Render(result); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().StringSliceVar(&tags, "tags", nil, "Only run scripts carrying these tags (comma separated)")
	cmd.Flags().BoolVar(&skipVerify, "skip-verify", false, "Do not submit contracts to the block explorer")
	cmd.Flags().BoolVar(&compile, "compile", false, "Run the configured compile_command first")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation on live networks")

	return cmd
}
