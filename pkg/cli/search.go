package cli

import (
	"context"
	"errors"
	"os"

	"github.com/orgkit/orgkit/pkg/controller/search"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newSearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search code across the organization",
		Description: `Search code across the organization and write a JSON report.

$ orgkit search -o acme 'filename:Dockerfile FROM ubuntu'
`,
		ArgsUsage: "<query>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "max-pages",
				Usage: "Maximum number of result pages to fetch",
				Value: 10,
			},
		},
		Action: r.searchAction,
	}
}

func (r *Runner) searchAction(ctx context.Context, c *cli.Command) error {
	query := c.Args().First()
	if query == "" {
		return errors.New("a search query is required")
	}
	env, err := r.setup(ctx, c)
	if err != nil {
		return err
	}
	ctrl := search.New(env.gh.Search, env.writer, os.Stdout, &search.Param{
		Org:      env.org,
		Query:    query,
		MaxPages: int(c.Int("max-pages")),
	})
	return ctrl.Run(ctx, r.LogE) //nolint:wrapcheck
}
