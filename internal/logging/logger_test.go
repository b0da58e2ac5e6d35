package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{" warning ", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelWarn},
		{"", slog.LevelWarn},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in, slog.LevelWarn), tt.in)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("env level", func(t *testing.T) {
		t.Setenv(LevelEnv, "info")
		var buf bytes.Buffer
		log := newLogger(&config.RuntimeConfig{}, &buf)

		log.Debug("hidden")
		log.Info("deployed", "name", "BrevisProof")

		out := buf.String()
		assert.NotContains(t, out, "hidden")
		assert.Contains(t, out, "name=BrevisProof")
		assert.NotContains(t, out, "time=")
	})

	t.Run("debug flag wins", func(t *testing.T) {
		t.Setenv(LevelEnv, "error")
		var buf bytes.Buffer
		log := newLogger(&config.RuntimeConfig{Debug: true}, &buf)

		log.Debug("tx sent")
		assert.Contains(t, buf.String(), "tx sent")
		assert.Contains(t, buf.String(), "source=")
	})
}

func TestShortPath(t *testing.T) {
	assert.Equal(t, "internal/usecase/environment.go", shortPath("/home/ci/src/brevis-deploy/internal/usecase/environment.go"))
	assert.Equal(t, "main.go", shortPath("/tmp/x/main.go"))
}
