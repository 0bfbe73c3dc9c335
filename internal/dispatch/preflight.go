package dispatch

import (
	"fmt"
	"os/exec"
	"strings"
)

// RequiredTools must be on PATH before a local workflow run.
var RequiredTools = []string{"bash", "git", "node", "npm"}

// Preflight checks that the given binaries are available on PATH.
func Preflight(tools []string) error {
	return preflight(tools, exec.LookPath)
}

func preflight(tools []string, lookPath func(string) (string, error)) error {
	var missing []string
	for _, bin := range tools {
		if _, err := lookPath(bin); err != nil {
			missing = append(missing, bin)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("required binaries not found in PATH: %s (Node.js 20+ provides node and npm: https://nodejs.org/)", strings.Join(missing, ", "))
	}
	return nil
}
