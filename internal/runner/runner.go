package runner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jorge-barreto/docsite/internal/dispatch"
	"github.com/jorge-barreto/docsite/internal/ux"
	"github.com/jorge-barreto/docsite/internal/workflow"
)

// Runner executes the main job of a workflow step by step.
type Runner struct {
	Workflow   *workflow.Workflow
	Dispatcher dispatch.Dispatcher
}

// Run executes every step of the first job in order, threading cfg from one
// step to the next. It stops at the first failing step.
func (r *Runner) Run(ctx context.Context, cfg dispatch.Config) error {
	job, ok := r.Workflow.MainJob()
	if !ok {
		return fmt.Errorf("no jobs found in workflow")
	}
	ux.Info("Loaded workflow: %s", r.Workflow.DisplayName())
	ux.Info("Running job: %s", job.ID)

	total := len(job.Steps)
	for i, step := range job.Steps {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if skip, reason := dispatch.ShouldSkip(step); skip {
			ux.StepSkip(i, total, step.DisplayName(), reason)
			continue
		}

		ux.StepHeader(i, total, step.DisplayName(), strings.TrimSpace(step.Run))
		if step.If != "" {
			ux.StepNote("if: %s (not evaluated, running anyway)", step.If)
		}
		start := time.Now()
		next, err := r.dispatch(ctx, step, cfg)
		if err != nil {
			ux.StepFail(i, step.DisplayName(), err.Error())
			return fmt.Errorf("step %d (%s) failed: %w", i+1, step.DisplayName(), err)
		}
		cfg = next
		ux.StepComplete(i, time.Since(start))
	}

	ux.Success(total)
	return nil
}

func (r *Runner) dispatch(ctx context.Context, step workflow.Step, cfg dispatch.Config) (dispatch.Config, error) {
	if step.TimeoutMinutes > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(step.TimeoutMinutes)*time.Minute)
		defer cancel()
	}
	return r.Dispatcher.Dispatch(ctx, step, cfg)
}

// DryRunPrint prints the commands each step would run without executing them.
func (r *Runner) DryRunPrint(cfg dispatch.Config) error {
	job, ok := r.Workflow.MainJob()
	if !ok {
		return fmt.Errorf("no jobs found in workflow")
	}
	vars, err := cfg.Vars()
	if err != nil {
		return err
	}
	total := len(job.Steps)
	fmt.Printf("\n%sDry run: job %s, %d steps:%s\n", ux.Bold, job.ID, total, ux.Reset)
	fmt.Printf("%splaceholders: %s%s\n\n", ux.Dim, strings.Join(vars.Keys(), ", "), ux.Reset)
	for i, step := range job.Steps {
		fmt.Printf("  %s%d.%s %s%s%s", ux.Cyan, i+1, ux.Reset, ux.Bold, step.DisplayName(), ux.Reset)
		if skip, reason := dispatch.ShouldSkip(step); skip {
			fmt.Printf(" %s(skipped: %s)%s\n", ux.Dim, reason, ux.Reset)
			continue
		}
		fmt.Println()
		if step.If != "" {
			fmt.Printf("     if: %s (not evaluated)\n", step.If)
		}
		if step.Uses != "" {
			fmt.Printf("     uses: %s\n", step.Uses)
			continue
		}
		plan := dispatch.PlanRun(cfg, step.Run, vars)
		for _, c := range plan.Commands {
			fmt.Printf("     run: %s\n", c)
		}
		if plan.ActivatesVenv {
			cfg = cfg.WithVenv()
		}
	}
	fmt.Println()
	return nil
}
