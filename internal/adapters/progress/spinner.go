package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/briandowns/spinner"
	"github.com/fatih/color"
)

// SpinnerProgressReporter shows progress events on a terminal spinner
type SpinnerProgressReporter struct {
	spinner    *spinner.Spinner
	out        io.Writer
	stage      string
	stageStart time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.stage {
		r.stage = event.Stage
		r.stageStart = time.Now()
	}

	switch event.Stage {
	case "completed", "complete":
		r.stop()
		return
	case "failed":
		r.stop()
		color.New(color.FgRed).Fprintf(r.out, "✗ %s\n", event.Message)
		return
	}

	if !event.Spinner {
		r.stop()
		return
	}

	r.spinner.Suffix = " " + suffix(event)
	if !r.spinner.Active() {
		r.spinner.Start()
	}
}

func suffix(event usecase.ProgressEvent) string {
	if event.Total > 0 {
		counter := color.New(color.FgWhite, color.Faint).Sprintf("[%d/%d]", event.Current, event.Total)
		return fmt.Sprintf("%s %s", counter, event.Message)
	}
	return event.Message
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pause(func() { color.New(color.FgCyan).Fprintln(r.out, message) })
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pause(func() { color.New(color.FgRed).Fprintln(r.out, message) })
}

// pause stops the spinner around a print
func (r *SpinnerProgressReporter) pause(print func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	print()
	if wasActive {
		r.spinner.Start()
	}
}

func (r *SpinnerProgressReporter) stop() {
	if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// NewProgressSink returns a spinner for interactive runs and a no-op sink otherwise
func NewProgressSink(cfg *config.RuntimeConfig) usecase.ProgressSink {
	if cfg.NonInteractive || cfg.Debug {
		return usecase.NopProgress{}
	}
	return NewSpinnerProgressReporter(os.Stderr)
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
