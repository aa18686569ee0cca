package cli

import (
	"context"
	"os"

	"github.com/orgkit/orgkit/pkg/controller/labels"
	"github.com/urfave/cli/v3"
)

func (r *Runner) newAddLabelsCommand() *cli.Command {
	return &cli.Command{
		Name:  "add-labels",
		Usage: "Bulk create or update labels from a YAML spec file",
		Description: `Bulk create or update labels from a YAML spec file.

$ orgkit add-labels -o acme labels.yaml

The spec file lists labels and target repositories:

labels:
  - name: security
    color: d73a4a
    description: Security related
repos: [app, lib]
`,
		ArgsUsage: "<spec file>",
		Action:    r.addLabelsAction,
	}
}

func (r *Runner) addLabelsAction(ctx context.Context, c *cli.Command) error {
	env, err := r.setup(ctx, c)
	if err != nil {
		return err
	}
	ctrl := labels.New(env.gh.Issues, env.fs, env.writer, os.Stdout, &labels.Param{
		Org:          env.org,
		SpecFilePath: c.Args().First(),
	})
	return ctrl.Run(ctx, r.LogE) //nolint:wrapcheck
}
