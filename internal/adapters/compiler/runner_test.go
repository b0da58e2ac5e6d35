package compiler

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(t *testing.T, command string, debug bool) (*Runner, *bytes.Buffer) {
	t.Helper()
	cfg := &config.RuntimeConfig{ProjectRoot: t.TempDir(), CompileCommand: command, Debug: debug}
	r := NewRunner(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	out := &bytes.Buffer{}
	r.out = out
	return r, out
}

func TestCompileWithoutCommand(t *testing.T) {
	r, _ := newRunner(t, "  ", false)
	assert.ErrorIs(t, r.Compile(context.Background()), ErrNoCompileCommand)
}

func TestCompileRunsInProjectRoot(t *testing.T) {
	r, _ := newRunner(t, "touch compiled.marker", false)
	require.NoError(t, r.Compile(context.Background()))

	_, err := os.Stat(filepath.Join(r.projectRoot, "compiled.marker"))
	assert.NoError(t, err)
}

func TestCompileFailureCarriesOutput(t *testing.T) {
	r, _ := newRunner(t, "echo solc exploded; exit 3", false)
	err := r.Compile(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "solc exploded")
}

func TestCompileDebugStreamsOutput(t *testing.T) {
	r, out := newRunner(t, "echo compiling 2 files", true)
	require.NoError(t, r.Compile(context.Background()))
	assert.Contains(t, out.String(), "compiling 2 files")
}
