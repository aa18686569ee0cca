package repos

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/sirupsen/logrus"
)

const perPage = 100

var csvHeader = []string{"name", "full_name", "visibility", "archived", "language", "stars", "open_issues", "pushed_at"}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	repos, err := c.listRepositories(ctx)
	if err != nil {
		return fmt.Errorf("list repositories of %s: %w", c.param.Org, err)
	}

	rows := make([][]string, 0, len(repos))
	archived := 0
	for _, repo := range repos {
		if repo.GetArchived() {
			archived++
			if c.param.SkipArchived {
				continue
			}
		}
		rows = append(rows, csvRow(repo))
	}

	p, err := c.writer.WriteCSV(c.writer.FileName("repos", "csv"), csvHeader, rows)
	if err != nil {
		return fmt.Errorf("write the repository report: %w", err)
	}
	logE.WithField("report", p).Debug("wrote the repository report")

	fmt.Fprintf(c.stdout, "%s %d repositories (%d archived)\n", color.GreenString("listed"), len(repos), archived)
	fmt.Fprintf(c.stdout, "report: %s\n", p)
	return nil
}

func (c *Controller) listRepositories(ctx context.Context) ([]*github.Repository, error) {
	opts := &github.RepositoryListByOrgOptions{
		Type: "all",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}
	var all []*github.Repository
	for {
		repos, _, err := c.repos.ListByOrg(ctx, c.param.Org, opts)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		all = append(all, repos...)
		if len(repos) < perPage {
			return all, nil
		}
		opts.Page++
	}
}

func csvRow(repo *github.Repository) []string {
	pushedAt := ""
	if !repo.GetPushedAt().IsZero() {
		pushedAt = repo.GetPushedAt().Format(time.RFC3339)
	}
	return []string{
		repo.GetName(),
		repo.GetFullName(),
		repo.GetVisibility(),
		strconv.FormatBool(repo.GetArchived()),
		repo.GetLanguage(),
		strconv.Itoa(repo.GetStargazersCount()),
		strconv.Itoa(repo.GetOpenIssuesCount()),
		pushedAt,
	}
}
