package cli

import (
	"context"
	"os"

	"github.com/orgkit/orgkit/pkg/controller/dependabot"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newDependabotAlertsCommand() *cli.Command {
	return &cli.Command{
		Name:  "dependabot-alerts",
		Usage: "Collect Dependabot alerts across the organization",
		Description: `Collect Dependabot alerts across the organization and write a JSON report.

$ orgkit dependabot-alerts -o acme
`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "state",
				Usage: "Alert state (open, fixed, dismissed)",
				Value: "open",
			},
		},
		Action: r.dependabotAlertsAction,
	}
}

func (r *Runner) dependabotAlertsAction(ctx context.Context, c *cli.Command) error {
	env, err := r.setup(ctx, c)
	if err != nil {
		return err
	}
	ctrl := dependabot.New(env.gh.Dependabot, env.writer, os.Stdout, &dependabot.Param{
		Org:   env.org,
		State: c.String("state"),
	})
	return ctrl.Run(ctx, r.LogE) //nolint:wrapcheck
}
