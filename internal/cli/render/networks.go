package render

import (
	"fmt"
	"io"

	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/jedib0t/go-pretty/v6/table"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders the configured networks as a table
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	if len(result.Networks) == 0 {
		fmt.Fprintln(r.out, "No networks configured in deploy.toml [networks]")
		return nil
	}

	fmt.Fprintln(r.out, "🌐 Available Networks:")
	fmt.Fprintln(r.out)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.AppendHeader(table.Row{"", "Network", "Chain ID", "Live", "Deployments", "RPC"})

	for _, n := range result.Networks {
		marker := " "
		if n.Name == result.Current {
			marker = "*"
		}
		if n.Error != nil {
			t.AppendRow(table.Row{marker, n.Name, "-", "-", n.Deployments, notVerifiedStyle.Sprintf("error: %v", n.Error)})
			continue
		}
		chainID := "-"
		if n.ChainID != 0 {
			chainID = fmt.Sprintf("%d", n.ChainID)
		}
		live := "no"
		if n.Live {
			live = pendingStyle.Sprint("yes")
		}
		t.AppendRow(table.Row{marker, n.Name, chainID, live, n.Deployments, n.RPCURL})
	}

	t.Render()
	return nil
}
