package cli

import (
	"context"
	"os"

	"github.com/orgkit/orgkit/pkg/controller/renovate"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newRenovateStatusCommand() *cli.Command {
	return &cli.Command{
		Name:  "renovate-status",
		Usage: "Check Renovate dependency dashboards across the organization",
		Description: `Check Renovate dependency dashboards across the organization and write a JSON report.

$ orgkit renovate-status -o acme
`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "dashboard-title",
				Usage: "Dashboard issue title",
				Value: "Dependency Dashboard",
			},
		},
		Action: r.renovateStatusAction,
	}
}

func (r *Runner) renovateStatusAction(ctx context.Context, c *cli.Command) error {
	env, err := r.setup(ctx, c)
	if err != nil {
		return err
	}
	ctrl := renovate.New(env.gh.Repositories, env.gh.Issues, env.writer, os.Stdout, &renovate.Param{
		Org:            env.org,
		DashboardTitle: c.String("dashboard-title"),
	})
	return ctrl.Run(ctx, r.LogE) //nolint:wrapcheck
}
