package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jorge-barreto/docsite/internal/dispatch"
	"github.com/jorge-barreto/docsite/internal/runner"
	"github.com/jorge-barreto/docsite/internal/ux"
	"github.com/jorge-barreto/docsite/internal/workflow"
	cli "github.com/urfave/cli/v3"
)

func main() {
	app := &cli.Command{
		Name:  "run-workflow",
		Usage: "Run the docs GitHub Actions workflow locally",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "version",
				Value: dispatch.DefaultInputVersion,
				Usage: `Version to build (latest, v0.2.18, ... or "all")`,
			},
			&cli.StringFlag{Name: "workflow", Value: workflow.DefaultPath, Usage: "Workflow file to run"},
			&cli.BoolFlag{Name: "dry-run", Usage: "Print the commands without executing"},
			&cli.StringFlag{Name: "docs-dir", Value: "docs", Usage: "Published docs directory, for the preview hint"},
			&cli.IntFlag{Name: "port", Value: 8323, Usage: "Port for the preview hint"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	wfPath := cmd.String("workflow")
	dryRun := cmd.Bool("dry-run")

	if !dryRun {
		if err := dispatch.Preflight(dispatch.RequiredTools); err != nil {
			return err
		}
	}
	if _, err := os.Stat(wfPath); err != nil {
		return fmt.Errorf("workflow file not found: %s", wfPath)
	}

	wf, err := workflow.Load(wfPath)
	if err != nil {
		return fmt.Errorf("loading workflow: %w", err)
	}

	workspace, err := os.Getwd()
	if err != nil {
		return err
	}

	version := cmd.String("version")
	ux.Banner("GitHub Actions Workflow Runner")
	ux.Info("Building version: %s", version)

	cfg, cleanup, err := dispatch.NewConfig(workspace, version)
	if err != nil {
		return fmt.Errorf("setting up runner context: %w", err)
	}
	defer cleanup()
	ux.Info("Temp directory: %s", cfg.TempDir)

	r := &runner.Runner{
		Workflow:   wf,
		Dispatcher: &dispatch.DefaultDispatcher{Shell: &dispatch.BashShell{}},
	}

	if dryRun {
		return r.DryRunPrint(cfg)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	if err := r.Run(ctx, cfg); err != nil {
		return err
	}
	ux.NextSteps(cmd.String("docs-dir"), int(cmd.Int("port")))
	return nil
}
