package render

import (
	"fmt"
	"io"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
)

// DeployRenderer renders the outcome of a deploy run
type DeployRenderer struct {
	out io.Writer
}

// NewDeployRenderer creates a new deploy renderer
func NewDeployRenderer(out io.Writer) *DeployRenderer {
	return &DeployRenderer{out: out}
}

// RenderPlan lists the scripts a run is about to execute
func (r *DeployRenderer) RenderPlan(network string, scripts []usecase.DeployScript) {
	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Deploying to %s:\n", network)
	for _, s := range scripts {
		fmt.Fprintf(r.out, "  • %s %s\n", s.ID, timestampStyle.Sprintf("%v", s.Tags))
	}
	fmt.Fprintln(r.out)
}

// Render renders every record touched by the run. A partial result from a
// failed run is rendered the same way.
func (r *DeployRenderer) Render(result *usecase.RunDeploymentsResult) error {
	if result == nil || len(result.Scripts) == 0 {
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"Script", "Deployment", "Address", "Action", "Verification"})

	var total time.Duration
	for _, s := range result.Scripts {
		total += s.Duration
		for _, d := range s.Deployments {
			action := verifiedStyle.Sprint("deployed")
			if s.Reused[d.Name] {
				action = timestampStyle.Sprint("reused")
			}
			t.AppendRow(table.Row{s.ScriptID, d.Name, d.Address, action, statusLabel(d.Verification.Status)})
		}
	}
	t.Render()

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, FormatSuccess(fmt.Sprintf("%d scripts completed on %s (chain %d) in %s",
		len(result.Scripts), result.Network.Name, result.Network.ChainID, total.Round(time.Millisecond))))
	return nil
}
