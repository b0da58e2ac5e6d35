package cli

import (
	"encoding/json"
	"fmt"

	"github.com/brevis-network/brevis-deploy/internal/cli/render"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command
func NewShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show [deployment]",
		Short: "Show detailed deployment information",
		Long: `Show the recorded details of one deployment on the selected network.

The name is matched exactly first, then case-insensitively. Without a name,
or when several records match, an interactive picker is shown.`,
		Example: `  brevis-deploy show BrevisProof
  brevis-deploy show brevisrequest_implementation -n bsc`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var params usecase.ShowDeploymentParams
			if len(args) == 1 {
				params.Name = args[0]
			}

			result, err := app.ShowDeployment.Run(cmd.Context(), params)
			if err != nil {
				return fmt.Errorf("failed to resolve deployment: %w", err)
			}

			if asJSON {
				data, err := json.MarshalIndent(result.Deployment, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			return render.NewDeploymentRenderer(cmd.OutOrStdout()).RenderDeployment(result)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw deployment record")

	return cmd
}
