package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jorge-barreto/docsite/internal/gitversion"
	"github.com/jorge-barreto/docsite/internal/manifest"
	"github.com/jorge-barreto/docsite/internal/ux"
	cli "github.com/urfave/cli/v3"
)

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "docs-version",
		Usage: "Print the release string for a docs build, derived from git tags",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "dir", Value: ".", Usage: "Directory inside the repository"},
			&cli.BoolFlag{Name: "tag", Usage: "Print the raw nearest tag and fail if there is none"},
			&cli.StringFlag{Name: "versions", Usage: "Print the version selector data for this versions.json as JSON"},
		},
		Action: run,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%serror:%s %v\n", ux.Red, ux.Reset, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	dir := cmd.String("dir")
	if cmd.Bool("tag") {
		tag, err := gitversion.Describe(dir)
		if err != nil {
			return err
		}
		fmt.Println(tag)
		return nil
	}

	release := gitversion.Version(dir)
	path := cmd.String("versions")
	if path == "" {
		fmt.Println(release)
		return nil
	}

	m, err := manifest.LoadOrDefault(path)
	if err != nil {
		ux.Warn("could not load %s: %v", path, err)
	}
	if release == gitversion.Unknown {
		release = ""
	}
	data, err := manifest.NewSiteContext(m, release).Marshal()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}
