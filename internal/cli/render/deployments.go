package render

import (
	"fmt"
	"io"
	"sort"

	"github.com/brevis-network/brevis-deploy/internal/domain/models"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
)

type TableData [][]string

// DeploymentsRenderer renders deployment lists as formatted tables with tree-style layout
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders deployments grouped by network
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	groups := lo.GroupBy(result.Deployments, func(d *models.Deployment) string { return d.Network })
	networks := lo.Keys(groups)
	sort.Strings(networks)

	// Build all tables first so every section shares column widths
	type section struct {
		title string
		data  TableData
	}
	sectionsByNetwork := make(map[string][]section)
	var allTables []TableData
	for _, network := range networks {
		proxies, contracts := lo.FilterReject(groups[network], func(d *models.Deployment, _ int) bool { return d.IsProxy() })
		auxiliary := lo.Filter(contracts, func(d *models.Deployment, _ int) bool { return d.IsAuxiliary() })
		contracts = lo.Filter(contracts, func(d *models.Deployment, _ int) bool { return !d.IsAuxiliary() })

		for _, s := range []section{
			{"PROXIES", r.buildDeploymentTable(proxies)},
			{"CONTRACTS", r.buildDeploymentTable(contracts)},
			{"AUXILIARY", r.buildDeploymentTable(auxiliary)},
		} {
			if len(s.data) == 0 {
				continue
			}
			sectionsByNetwork[network] = append(sectionsByNetwork[network], s)
			allTables = append(allTables, s.data)
		}
	}
	widths := calculateTableColumnWidths(allTables)

	for netIdx, network := range networks {
		isLast := netIdx == len(networks)-1
		treePrefix, continuationPrefix := "├─", "│ "
		if isLast {
			treePrefix, continuationPrefix = "└─", "  "
		}

		chainID := groups[network][0].ChainID
		fmt.Fprintf(r.out, "%s%s%s\n",
			treePrefix,
			networkHeader.Sprintf(" ⛓ %-10s", "network:"),
			networkHeaderBold.Sprintf("%-30s", fmt.Sprintf("%s (%d)", network, chainID)))
		fmt.Fprintln(r.out, continuationPrefix)

		for i, s := range sectionsByNetwork[network] {
			if i > 0 {
				fmt.Fprintln(r.out, continuationPrefix)
			}
			fmt.Fprintf(r.out, "%s%s\n", continuationPrefix, sectionHeaderStyle.Sprint(s.title))
			fmt.Fprint(r.out, renderTableWithWidths(s.data, widths, continuationPrefix))
			fmt.Fprintln(r.out)
		}

		if !isLast {
			fmt.Fprintln(r.out, continuationPrefix)
		} else {
			fmt.Fprintln(r.out)
		}
	}

	s := result.Summary
	fmt.Fprintf(r.out, "Total deployments: %d (%d proxied, %d verified)\n", s.Total, s.Proxies, s.Verified)
	return nil
}

// buildDeploymentTable creates a TableData for a list of deployments
func (r *DeploymentsRenderer) buildDeploymentTable(deployments []*models.Deployment) TableData {
	tableData := make(TableData, 0, len(deployments))

	sort.Slice(deployments, func(i, j int) bool { return deployments[i].Name < deployments[j].Name })

	for _, d := range deployments {
		tableData = append(tableData, []string{
			r.getColoredDisplayName(d),
			addressStyle.Sprint(d.Address),
			statusLabel(d.Verification.Status),
			timestampStyle.Sprint(d.UpdatedAt.Format("2006-01-02 15:04:05")),
		})

		if d.Proxy != nil {
			tableData = append(tableData, []string{
				implPrefixStyle.Sprintf("└─ %s", d.ContractName),
				implPrefixStyle.Sprint(d.Proxy.Implementation),
				"",
				"",
			})
		}
	}

	return tableData
}

// getColoredDisplayName returns a colored display name for deployment
func (r *DeploymentsRenderer) getColoredDisplayName(d *models.Deployment) string {
	switch {
	case d.IsProxy():
		return color.New(color.FgMagenta, color.Bold).Sprint(d.Name)
	case d.IsAuxiliary():
		return color.New(color.FgBlue).Sprint(d.Name)
	default:
		return color.New(color.FgGreen, color.Bold).Sprint(d.Name)
	}
}

// renderTableWithWidths renders a table with specific column widths
func renderTableWithWidths(tableData TableData, columnWidths []int, continuationPrefix string) string {
	if len(tableData) == 0 {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.SeparateRows = false
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateColumns = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}

	colConfigs := make([]table.ColumnConfig, len(columnWidths))
	for i, width := range columnWidths {
		if i == 0 {
			width += len([]rune(continuationPrefix))
		}
		colConfigs[i] = table.ColumnConfig{
			Number:   i + 1,
			Align:    text.AlignLeft,
			WidthMin: width,
			WidthMax: width,
		}
	}
	t.SetColumnConfigs(colConfigs)

	for _, row := range tableData {
		tableRow := make(table.Row, len(row))
		for i, cell := range row {
			if i == 0 {
				tableRow[i] = continuationPrefix + cell
			} else {
				tableRow[i] = cell
			}
		}
		t.AppendRow(tableRow)
	}

	return t.Render()
}

// calculateTableColumnWidths calculates column widths for multiple tables
func calculateTableColumnWidths(tables []TableData) []int {
	maxCols := 0
	for _, t := range tables {
		for _, row := range t {
			maxCols = max(maxCols, len(row))
		}
	}

	widths := make([]int, maxCols)
	for _, t := range tables {
		for _, row := range t {
			for colIdx, cell := range row {
				widths[colIdx] = max(widths[colIdx], len([]rune(stripAnsiCodes(cell))))
			}
		}
	}

	return widths
}
