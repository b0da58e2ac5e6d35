package render

import (
	"fmt"
	"io"

	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/fatih/color"
)

// VerifyRenderer handles rendering of verification results
type VerifyRenderer struct {
	out io.Writer
}

// NewVerifyRenderer creates a new verify renderer
func NewVerifyRenderer(out io.Writer) *VerifyRenderer {
	return &VerifyRenderer{out: out}
}

// RenderVerifyAllResult renders the result of verifying all deployments
func (r *VerifyRenderer) RenderVerifyAllResult(result *usecase.VerifyAllResult, options usecase.VerifyOptions) error {
	if len(result.Results) == 0 {
		color.New(color.FgYellow).Fprintln(r.out, "No deployments found to verify.")
		return nil
	}

	attempted := len(result.Results) - result.SkippedCount
	if attempted == 0 && !options.Force {
		color.New(color.FgYellow).Fprintln(r.out, "All deployments are already verified. Use --force to re-verify.")
		return nil
	}

	color.New(color.FgCyan, color.Bold).Fprintf(r.out, "Verifying %d deployments:\n", attempted)
	for _, res := range result.Results {
		if res.Skipped {
			continue
		}
		r.renderLine(res)
	}

	fmt.Fprintf(r.out, "\nVerification complete: %d/%d successful", result.SuccessCount, attempted)
	if result.SkippedCount > 0 {
		fmt.Fprintf(r.out, " (%d already verified)", result.SkippedCount)
	}
	fmt.Fprintln(r.out)
	return nil
}

// RenderVerifyResult renders the result of verifying a specific deployment
func (r *VerifyRenderer) RenderVerifyResult(result *usecase.VerifyResult) error {
	d := result.Deployment
	if result.Skipped {
		color.New(color.FgYellow).Fprintf(r.out, "Contract %s is already verified. Use --force to re-verify.\n", d.Name)
		return nil
	}

	if result.Success {
		color.New(color.FgGreen).Fprintln(r.out, "✓ Verification completed successfully!")
		fmt.Fprintf(r.out, "  %s: %s", d.Name, statusLabel(d.Verification.Status))
		if d.Verification.URL != "" {
			fmt.Fprintf(r.out, " - %s", d.Verification.URL)
		}
		if d.Verification.Reason != "" {
			fmt.Fprintf(r.out, " (%s)", d.Verification.Reason)
		}
		fmt.Fprintln(r.out)
		return nil
	}

	for _, err := range result.Errors {
		color.New(color.FgRed).Fprintf(r.out, "✗ Verification failed: %s\n", err)
	}
	return nil
}

func (r *VerifyRenderer) renderLine(res *usecase.VerifyResult) {
	d := res.Deployment
	fmt.Fprintf(r.out, "  %-28s %s  %s\n", d.Name, d.Address, statusLabel(d.Verification.Status))
	for _, err := range res.Errors {
		color.New(color.FgRed).Fprintf(r.out, "    ✗ %s\n", err)
	}
}
