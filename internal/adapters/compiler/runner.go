package compiler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/brevis-network/brevis-deploy/internal/domain/config"
	"github.com/brevis-network/brevis-deploy/internal/usecase"
	"github.com/creack/pty"
)

// ErrNoCompileCommand is returned when --compile is requested without a compile_command
var ErrNoCompileCommand = errors.New("no compile_command configured in deploy.toml")

// Runner runs the project's compile command under a PTY so the toolchain keeps its colors
type Runner struct {
	log         *slog.Logger
	projectRoot string
	command     string
	debug       bool
	out         io.Writer
}

// NewRunner creates a compile runner for the configured project
func NewRunner(cfg *config.RuntimeConfig, log *slog.Logger) *Runner {
	return &Runner{
		log:         log.With("component", "Compiler"),
		projectRoot: cfg.ProjectRoot,
		command:     cfg.CompileCommand,
		debug:       cfg.Debug,
		out:         os.Stdout,
	}
}

// Compile runs the compile command; output is streamed in debug mode and
// attached to the error otherwise.
func (r *Runner) Compile(ctx context.Context) error {
	command := strings.TrimSpace(r.command)
	if command == "" {
		return ErrNoCompileCommand
	}

	start := time.Now()
	r.log.Debug("running compile command", "command", command, "dir", r.projectRoot)

	output, err := r.run(ctx, command)
	duration := time.Since(start)
	if err != nil {
		r.log.Error("compile failed", "error", err, "duration", duration)
		return fmt.Errorf("%s failed: %w\nOutput: %s", command, err, strings.TrimSpace(string(output)))
	}

	r.log.Debug("compile completed", "duration", duration)
	return nil
}

func (r *Runner) run(ctx context.Context, command string) ([]byte, error) {
	var buf bytes.Buffer
	var sink io.Writer = &buf
	if r.debug {
		sink = io.MultiWriter(&buf, r.out)
	}

	cmd := r.newCmd(ctx, command)
	ptyFile, err := pty.Start(cmd)
	if err != nil {
		// no terminal available; run without one
		r.log.Debug("pty unavailable, running without one", "error", err)
		plain := r.newCmd(ctx, command)
		plain.Stdout = sink
		plain.Stderr = sink
		err := plain.Run()
		return buf.Bytes(), err
	}
	defer func() {
		_ = ptyFile.Close()
	}()

	// reading a pty whose child exited yields EIO on linux
	_, _ = io.Copy(sink, ptyFile)

	return buf.Bytes(), cmd.Wait()
}

func (r *Runner) newCmd(ctx context.Context, command string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = r.projectRoot
	cmd.Env = os.Environ()
	return cmd
}

var _ usecase.CompileRunner = (*Runner)(nil)
