package cli

import (
	"context"
	"os"

	"github.com/orgkit/orgkit/pkg/controller/issues"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newCreateIssuesCommand() *cli.Command {
	return &cli.Command{
		Name:  "create-issues",
		Usage: "Bulk create issues from a YAML spec file",
		Description: `Bulk create issues from a YAML spec file.

$ orgkit create-issues -o acme issues.yaml

The spec file lists issues and the repositories to open them in:

issues:
  - title: Migrate to actions/checkout v4
    body: Please update the workflow files.
    labels: [maintenance]
    repos: [app, lib]
`,
		ArgsUsage: "<spec file>",
		Action:    r.createIssuesAction,
	}
}

func (r *Runner) createIssuesAction(ctx context.Context, c *cli.Command) error {
	env, err := r.setup(ctx, c)
	if err != nil {
		return err
	}
	ctrl := issues.New(env.gh.Issues, env.fs, env.writer, os.Stdout, &issues.Param{
		Org:          env.org,
		SpecFilePath: c.Args().First(),
	})
	return ctrl.Run(ctx, r.LogE) //nolint:wrapcheck
}
