package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/brevis-network/brevis-deploy/internal/cli/render"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/spf13/cobra"
)

// NewExportCmd creates the export command
func NewExportCmd() *cobra.Command {
	var (
		params usecase.ExportDeploymentsParams
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export deployment addresses",
		Long: `Write the address book of the selected network (or all networks) as YAML
or JSON, for consumption by SDKs and off-chain services.`,
		Example: `  brevis-deploy export -n bsc
  brevis-deploy export --all --format json --abi -o addresses.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}

			renderer, err := render.NewExportRenderer(out, format)
			if err != nil {
				return err
			}

			exports, err := app.ExportDeployments.Run(cmd.Context(), params)
			if err != nil {
				return err
			}
			return renderer.Render(exports)
		},
	}

	cmd.Flags().BoolVar(&params.AllNetworks, "all", false, "Export every network")
	cmd.Flags().BoolVar(&params.IncludeABI, "abi", false, "Include contract ABIs (JSON only)")
	cmd.Flags().StringVar(&format, "format", render.FormatYAML, "Output format (yaml, json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")

	return cmd
}
