// Package cli defines the command line interface. Each subcommand is thin:
// it resolves configuration, builds the GitHub client and the report writer,
// and hands off to its controller.
package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

type Runner struct {
	LogE    *logrus.Entry
	LDFlags *LDFlags
}

type LDFlags struct {
	Version string
	Commit  string
	Date    string
}

func (r *Runner) Run(ctx context.Context, args ...string) error {
	cmd := &cli.Command{
		Name:    "orgkit",
		Usage:   "GitHub organization housekeeping utilities",
		Version: r.LDFlags.Version + " (" + r.LDFlags.Commit + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level",
				Sources: cli.EnvVars("ORGKIT_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "org",
				Aliases: []string{"o"},
				Usage:   "GitHub organization login",
				Sources: cli.EnvVars("ORGKIT_ORG"),
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Usage:   "directory reports are written to",
				Sources: cli.EnvVars("ORGKIT_OUTPUT_DIR"),
			},
		},
		EnableShellCompletion: true,
		Commands: []*cli.Command{
			r.newReposCommand(),
			r.newCreateIssuesCommand(),
			r.newAddLabelsCommand(),
			r.newDependabotAlertsCommand(),
			r.newRenovateStatusCommand(),
			r.newSearchCommand(),
			r.newScanActionCommand(),
			r.newVersionCommand(),
		},
	}
	return cmd.Run(ctx, args) //nolint:wrapcheck
}
