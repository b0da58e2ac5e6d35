package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestSpinnerProgressReporter(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	var buf bytes.Buffer
	r := NewSpinnerProgressReporter(&buf)

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "deploy", Current: 1, Total: 2, Message: "Running 000_brevis_proof", Spinner: true})
	// the spinner only animates on a terminal; the suffix is still tracked
	assert.Equal(t, " [1/2] Running 000_brevis_proof", r.spinner.Suffix)

	r.Info("note")

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "failed", Message: "001_brevis_request"})
	assert.False(t, r.spinner.Active())
	assert.Contains(t, buf.String(), "note\n")
	assert.Contains(t, buf.String(), "✗ 001_brevis_request")
}

func TestNewProgressSink(t *testing.T) {
	assert.IsType(t, usecase.NopProgress{}, NewProgressSink(&config.RuntimeConfig{NonInteractive: true}))
	assert.IsType(t, &SpinnerProgressReporter{}, NewProgressSink(&config.RuntimeConfig{}))
}
