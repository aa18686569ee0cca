package cli

import (
	"context"
	"os"

	"github.com/orgkit/orgkit/pkg/controller/repos"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newReposCommand() *cli.Command {
	return &cli.Command{
		Name:  "repos",
		Usage: "List the repositories of an organization and write a CSV report",
		Description: `List the repositories of an organization and write a CSV report.

$ orgkit repos -o acme
`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "skip-archived",
				Usage: "Exclude archived repositories from the report",
				Value: true,
			},
		},
		Action: r.reposAction,
	}
}

func (r *Runner) reposAction(ctx context.Context, c *cli.Command) error {
	env, err := r.setup(ctx, c)
	if err != nil {
		return err
	}
	ctrl := repos.New(env.gh.Repositories, env.writer, os.Stdout, &repos.Param{
		Org:          env.org,
		SkipArchived: c.Bool("skip-archived"),
	})
	return ctrl.Run(ctx, r.LogE) //nolint:wrapcheck
}
