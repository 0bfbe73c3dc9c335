package workflow

import (
	"fmt"
	"strings"
)

// Validate checks the parts of the workflow the local runner depends on.
func Validate(wf *Workflow) error {
	if len(wf.Jobs) == 0 {
		return fmt.Errorf("workflow: no jobs found")
	}

	seen := make(map[string]bool)
	for _, job := range wf.Jobs {
		if seen[job.ID] {
			return fmt.Errorf("workflow: duplicate job id %q", job.ID)
		}
		seen[job.ID] = true
	}

	job := wf.Jobs[0]
	for i, s := range job.Steps {
		hasRun := strings.TrimSpace(s.Run) != ""
		hasUses := strings.TrimSpace(s.Uses) != ""
		switch {
		case !hasRun && !hasUses:
			return fmt.Errorf("workflow: job %q step %d (%s): one of 'run' or 'uses' is required", job.ID, i+1, s.DisplayName())
		case hasRun && hasUses:
			return fmt.Errorf("workflow: job %q step %d (%s): 'run' and 'uses' cannot be combined", job.ID, i+1, s.DisplayName())
		}
	}
	return nil
}
