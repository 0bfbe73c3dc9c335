package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/jorge-barreto/docsite/internal/ux"
	"github.com/jorge-barreto/docsite/internal/workflow"
)

const installUV = "curl -LsSf https://astral.sh/uv/install.sh | sh"

// ErrNodeMissing is returned by setup-node when node or npm is absent.
var ErrNodeMissing = errors.New("node or npm not found, install Node.js 20+ first (https://nodejs.org/)")

// ExitError reports a script that exited non-zero.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// Dispatcher executes one step and returns the config for the next step.
// Tests can substitute a mock.
type Dispatcher interface {
	Dispatch(ctx context.Context, step workflow.Step, cfg Config) (Config, error)
}

// DefaultDispatcher runs steps through a Shell.
type DefaultDispatcher struct {
	Shell    Shell
	LookPath func(string) (string, error)
}

func (d *DefaultDispatcher) lookPath(bin string) bool {
	lp := d.LookPath
	if lp == nil {
		lp = exec.LookPath
	}
	_, err := lp(bin)
	return err == nil
}

func (d *DefaultDispatcher) Dispatch(ctx context.Context, step workflow.Step, cfg Config) (Config, error) {
	if strings.TrimSpace(step.Run) != "" {
		return d.runScript(ctx, step.Run, cfg)
	}
	switch actionKind(step.Uses) {
	case "setup-uv":
		if d.lookPath("uv") {
			ux.StepNote("✓ uv is already installed")
			return cfg, nil
		}
		ux.StepNote("Installing uv...")
		return d.runScript(ctx, installUV, cfg)
	case "setup-node":
		if d.lookPath("node") && d.lookPath("npm") {
			ux.StepNote("✓ Node.js and npm are already installed")
			return cfg, nil
		}
		return cfg, ErrNodeMissing
	}
	return cfg, nil
}

func (d *DefaultDispatcher) runScript(ctx context.Context, script string, cfg Config) (Config, error) {
	vars, err := cfg.Vars()
	if err != nil {
		return cfg, fmt.Errorf("reading GITHUB_ENV: %w", err)
	}
	plan := PlanRun(cfg, script, vars)
	for i, c := range plan.Commands {
		code, err := d.Shell.Run(ctx, c, cfg)
		if err != nil {
			return cfg, err
		}
		if code != 0 {
			return cfg, &ExitError{Code: code}
		}
		if i == 0 && plan.ActivatesVenv {
			cfg = cfg.WithVenv()
		}
	}
	return cfg, nil
}
