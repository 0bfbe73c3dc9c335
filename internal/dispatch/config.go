package dispatch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Config is the run context threaded through every step. It is a value:
// steps that change it return an updated copy.
type Config struct {
	Workspace    string
	TempDir      string
	EnvFile      string
	InputVersion string
	RunID        string
	VenvActive   bool
	baseEnv      []string
}

// NewConfig creates the runner temp directory with an empty GITHUB_ENV file
// and snapshots the current process environment. The returned cleanup removes
// the temp directory.
func NewConfig(workspace, inputVersion string) (Config, func(), error) {
	tmp, err := os.MkdirTemp("", "workflow-runner-")
	if err != nil {
		return Config{}, nil, err
	}
	cleanup := func() { os.RemoveAll(tmp) }

	envFile := filepath.Join(tmp, "github_env")
	if err := os.WriteFile(envFile, nil, 0644); err != nil {
		cleanup()
		return Config{}, nil, err
	}

	if inputVersion == "" {
		inputVersion = DefaultInputVersion
	}
	return Config{
		Workspace:    workspace,
		TempDir:      tmp,
		EnvFile:      envFile,
		InputVersion: inputVersion,
		RunID:        uuid.NewString(),
		baseEnv:      os.Environ(),
	}, cleanup, nil
}

// DefaultInputVersion is used when no version input is given.
const DefaultInputVersion = "latest"

// WithVenv returns a copy of c with the Python virtualenv marked active.
func (c Config) WithVenv() Config {
	c.VenvActive = true
	return c
}

// Env returns the child process environment: the snapshotted base env plus
// the runner variables, which take precedence.
func (c Config) Env() []string {
	out := make([]string, 0, len(c.baseEnv)+6)
	out = append(out, c.baseEnv...)
	return append(out,
		"RUNNER_TEMP="+c.TempDir,
		"GITHUB_WORKSPACE="+c.Workspace,
		"CI=true",
		"GITHUB_ENV="+c.EnvFile,
		"INPUT_VERSION="+c.InputVersion,
		"GITHUB_RUN_ID="+c.RunID,
	)
}

// Vars builds the placeholder table from c and the current GITHUB_ENV file.
func (c Config) Vars() (Vars, error) {
	fileVars, err := ReadEnvFile(c.EnvFile)
	if err != nil {
		return nil, err
	}
	v := Vars{
		"runner.temp":                 c.TempDir,
		"github.workspace":            c.Workspace,
		"github.run_id":               c.RunID,
		"github.event.inputs.version": c.InputVersion,
		"inputs.version":              c.InputVersion,
	}
	for k, val := range fileVars {
		v["env."+k] = val
	}
	return v, nil
}

// EnvFileLoaded reports whether earlier steps wrote anything to GITHUB_ENV.
func (c Config) EnvFileLoaded() bool {
	if c.EnvFile == "" {
		return false
	}
	data, err := os.ReadFile(c.EnvFile)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) != ""
}
