package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jorge-barreto/docsite/internal/manifest"
	"github.com/jorge-barreto/docsite/internal/ux"
	cli "github.com/urfave/cli/v3"
)

const argsUsage = "<versions-json> <version> <docs-dir>"

var errUsage = errors.New("usage: update-versions " + argsUsage)

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "update-versions",
		Usage:     "Add a version to versions.json and repoint the 'latest' symlink",
		ArgsUsage: argsUsage,
		Action:    run,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	if cmd.NArg() != 3 {
		return errUsage
	}
	path := cmd.Args().Get(0)
	version := cmd.Args().Get(1)
	docsDir := cmd.Args().Get(2)

	res, err := manifest.Publish(path, version, docsDir)
	if res != nil {
		if res.Added {
			ux.VersionAdded(version, path)
		} else {
			ux.VersionExists(version, path)
		}
		if res.Reordered {
			ux.VersionsReordered(path)
		}
	}
	switch {
	case errors.Is(err, manifest.ErrNoValidVersion):
		ux.Warn("could not determine latest version for symlink update")
		return nil
	case err != nil:
		return err
	}
	ux.LatestUpdated(res.Latest)
	if res.AliasURL != "" {
		ux.AliasUpdated(res.AliasURL)
	}
	return nil
}
