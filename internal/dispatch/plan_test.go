package dispatch

import (
	"os"
	"testing"

	"github.com/jorge-barreto/docsite/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldSkip(t *testing.T) {
	tests := []struct {
		step workflow.Step
		skip bool
	}{
		{workflow.Step{Name: "Checkout this repository", Uses: "actions/checkout@v4"}, true},
		{workflow.Step{Name: "Deploy to GitHub Pages", Uses: "actions/deploy-pages@v4"}, true},
		{workflow.Step{Name: "Commit and push changes", Run: "git push"}, true},
		{workflow.Step{Name: "Set up Python", Uses: "actions/setup-python@v5"}, true},
		{workflow.Step{Name: "Cache", Uses: "actions/cache@v4"}, true},
		{workflow.Step{Name: "Install uv", Uses: "astral-sh/setup-uv@v5"}, false},
		{workflow.Step{Name: "Node", Uses: "actions/setup-node@v4"}, false},
		{workflow.Step{Name: "Build docs", Run: "make html"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.step.Name, func(t *testing.T) {
			skip, reason := ShouldSkip(tt.step)
			assert.Equal(t, tt.skip, skip)
			if skip {
				assert.NotEmpty(t, reason)
			}
		})
	}
}

func TestPlanRun_Plain(t *testing.T) {
	cfg := newTestConfig(t)
	p := PlanRun(cfg, "  mkdir -p out\n", Vars{})
	assert.Equal(t, []string{"mkdir -p out"}, p.Commands)
	assert.False(t, p.ActivatesVenv)
}

func TestPlanRun_RendersPlaceholders(t *testing.T) {
	cfg := newTestConfig(t)
	vars, err := cfg.Vars()
	require.NoError(t, err)
	p := PlanRun(cfg, "cp -r build ${{ runner.temp }}/build", vars)
	assert.Equal(t, []string{"cp -r build " + cfg.TempDir + "/build"}, p.Commands)
}

func TestPlanRun_VenvCreation(t *testing.T) {
	cfg := newTestConfig(t)
	p := PlanRun(cfg, "uv venv\nsource .venv/bin/activate\nuv pip install -r requirements.txt\n", Vars{})
	assert.True(t, p.ActivatesVenv)
	assert.Equal(t, []string{
		"uv venv",
		"source .venv/bin/activate && uv pip install -r requirements.txt",
	}, p.Commands)
}

func TestPlanRun_VenvOnly(t *testing.T) {
	cfg := newTestConfig(t)
	p := PlanRun(cfg, "uv venv --python 3.12\nsource .venv/bin/activate", Vars{})
	assert.True(t, p.ActivatesVenv)
	assert.Equal(t, []string{"uv venv --python 3.12"}, p.Commands)
}

func TestPlanRun_ActiveVenvPrefixesPython(t *testing.T) {
	cfg := newTestConfig(t).WithVenv()
	p := PlanRun(cfg, "sphinx-build docs out", Vars{})
	assert.Equal(t, []string{"source .venv/bin/activate && sphinx-build docs out"}, p.Commands)

	p = PlanRun(cfg, "mkdir -p out", Vars{})
	assert.Equal(t, []string{"mkdir -p out"}, p.Commands)

	p = PlanRun(cfg, "source .venv/bin/activate && python x.py", Vars{})
	assert.Equal(t, []string{"source .venv/bin/activate && python x.py"}, p.Commands)
}

func TestPlanRun_InactiveVenvLeavesPython(t *testing.T) {
	cfg := newTestConfig(t)
	p := PlanRun(cfg, "python x.py", Vars{})
	assert.Equal(t, []string{"python x.py"}, p.Commands)
}

func TestPlanRun_SourcesEnvFile(t *testing.T) {
	cfg := newTestConfig(t)
	require.NoError(t, os.WriteFile(cfg.EnvFile, []byte("A=1\n"), 0644))
	p := PlanRun(cfg, "echo $A", Vars{})
	assert.Equal(t, []string{"source " + shellQuote(cfg.EnvFile) + " && echo $A"}, p.Commands)
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'a b'`, shellQuote("a b"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}
