package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/orgkit/orgkit/pkg/controller/scanaction"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newScanActionCommand() *cli.Command {
	return &cli.Command{
		Name:  "scan-action",
		Usage: "Find where an action is used across the organization",
		Description: `Find where an action is used across the organization, directly or through
composite actions, and write a JSON report.

$ orgkit scan-action -o acme actions/checkout

The target is an action identifier in owner/repo[/subpath] form without a
version suffix.
`,
		ArgsUsage: "<target action>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "Number of repositories scanned in parallel",
				Value: 1,
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Show a progress bar",
			},
		},
		Action: r.scanActionAction,
	}
}

func (r *Runner) scanActionAction(ctx context.Context, c *cli.Command) error {
	target := c.Args().First()
	if target == "" {
		return errors.New("a target action is required")
	}
	env, err := r.setup(ctx, c)
	if err != nil {
		return err
	}
	ctrl := scanaction.New(env.gh.Repositories, &scanaction.Param{
		Org:         env.org,
		Target:      target,
		Concurrency: int(c.Int("concurrency")),
		Progress:    c.Bool("progress"),
	})
	rep, err := ctrl.Run(ctx, r.LogE)
	if err != nil {
		return err //nolint:wrapcheck
	}

	p, err := env.writer.WriteJSON(env.writer.FileName("action-usage", "json"), rep)
	if err != nil {
		return fmt.Errorf("write the usage report: %w", err)
	}

	fmt.Fprintf(os.Stdout, "%s %d/%d repositories, %s %d direct, %d indirect\n",
		color.GreenString("scanned"), rep.Summary.RepositoriesScanned, rep.Summary.TotalRepositories,
		color.GreenString("found"), rep.Summary.TotalDirectUsages, rep.Summary.TotalIndirectUsages)
	if n := len(rep.Errors.AccessErrors) + len(rep.Errors.ScanErrors); n > 0 {
		fmt.Fprintf(os.Stdout, "%s %d repositories could not be scanned\n", color.YellowString("warning:"), n)
	}
	fmt.Fprintf(os.Stdout, "report: %s\n", p)
	return nil
}
