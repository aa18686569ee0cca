package cli

import (
	"context"
	"errors"

	"github.com/orgkit/orgkit/pkg/config"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/orgkit/orgkit/pkg/log"
	"github.com/orgkit/orgkit/pkg/report"
	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"
)

// env holds everything a subcommand needs before handing off to its
// controller.
type env struct {
	org    string
	gh     *github.Client
	fs     afero.Fs
	writer *report.Writer
}

// setup resolves configuration and builds the GitHub client and report
// writer. The organization must come from --org or the environment.
func (r *Runner) setup(ctx context.Context, c *cli.Command) (*env, error) {
	log.SetLevel(c.String("log-level"), r.LogE)
	cfg := config.Load(r.LogE)

	org := c.String("org")
	if org == "" {
		org = cfg.Org
	}
	if org == "" {
		return nil, errors.New("organization is required (--org or ORGKIT_ORG)")
	}

	outputDir := c.String("output-dir")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	if cfg.Token == "" {
		r.LogE.Warn("GITHUB_TOKEN isn't set, the GitHub API is called without authentication")
	}

	fs := afero.NewOsFs()
	return &env{
		org:    org,
		gh:     github.New(ctx, cfg.Token),
		fs:     fs,
		writer: report.NewWriter(fs, outputDir),
	}, nil
}
