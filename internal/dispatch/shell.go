package dispatch

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
)

// Shell runs one composed script. Tests substitute a recorder.
type Shell interface {
	Run(ctx context.Context, script string, cfg Config) (int, error)
}

// BashShell runs scripts with bash -c in the workspace, streaming output.
// A non-zero exit is reported as a code with a nil error; failing to start
// bash or a cancelled context is reported as an error.
type BashShell struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (b *BashShell) Run(ctx context.Context, script string, cfg Config) (int, error) {
	cmd := exec.CommandContext(ctx, "bash", "-c", script)
	cmd.Dir = cfg.Workspace
	cmd.Env = cfg.Env()
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}
