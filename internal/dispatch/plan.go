package dispatch

import (
	"strings"

	"github.com/jorge-barreto/docsite/internal/workflow"
)

const activateVenv = "source .venv/bin/activate"

// skipNames are step names that only make sense on GitHub's runners.
var skipNames = []string{
	"checkout this repository",
	"setup github pages",
	"upload pages artifact",
	"deploy to github pages",
	"commit and push changes",
	"set up python",
}

// localActions are the uses: actions the runner emulates.
var localActions = []string{"setup-uv", "setup-node"}

var venvKeywords = []string{"sphinx", "pip", "python", "uv pip"}

// ShouldSkip reports whether a step is skipped locally, and why.
func ShouldSkip(step workflow.Step) (bool, string) {
	name := strings.ToLower(step.Name)
	for _, p := range skipNames {
		if strings.Contains(name, p) {
			return true, "GitHub-specific"
		}
	}
	if step.Uses != "" && actionKind(step.Uses) == "" {
		return true, "GitHub-specific action " + step.Uses
	}
	return false, ""
}

// actionKind returns the emulated action a uses: reference names, or "".
func actionKind(uses string) string {
	for _, a := range localActions {
		if strings.Contains(uses, a) {
			return a
		}
	}
	return ""
}

// Plan is the ordered list of bash scripts a run step expands to.
type Plan struct {
	Commands      []string
	ActivatesVenv bool
}

// PlanRun renders a run: script and splits it into the scripts to execute.
// A leading "uv venv" line runs on its own and activates the virtualenv for
// the rest of the step and every later step. Commands that need Python get
// the activation prefix, and a non-empty GITHUB_ENV file is sourced first.
func PlanRun(cfg Config, script string, vars Vars) Plan {
	cmd := Render(script, vars)
	lines := strings.Split(strings.TrimSpace(cmd), "\n")

	var p Plan
	venv := cfg.VenvActive
	if strings.Contains(lines[0], "uv venv") {
		p.Commands = append(p.Commands, lines[0])
		p.ActivatesVenv = true
		venv = true
		if len(lines) == 1 {
			return p
		}
		rest := strings.Join(lines[1:], "\n")
		rest = strings.ReplaceAll(rest, activateVenv+"\n", "")
		rest = strings.ReplaceAll(rest, activateVenv, "")
		if strings.TrimSpace(rest) == "" {
			return p
		}
		cmd = activateVenv + " && " + rest
	}

	if venv && needsVenv(cmd) && !strings.HasPrefix(cmd, activateVenv) {
		cmd = activateVenv + " && " + cmd
	}
	if cfg.EnvFileLoaded() {
		cmd = "source " + shellQuote(cfg.EnvFile) + " && " + cmd
	}
	p.Commands = append(p.Commands, cmd)
	return p
}

func needsVenv(cmd string) bool {
	for _, k := range venvKeywords {
		if strings.Contains(cmd, k) {
			return true
		}
	}
	return false
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
