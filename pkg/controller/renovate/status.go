package renovate

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

const perPage = 100

type RepoStatus struct {
	Repo           string          `json:"repo"`
	HasDashboard   bool            `json:"hasDashboard"`
	DashboardURL   string          `json:"dashboardUrl,omitempty"`
	RateLimited    bool            `json:"rateLimited"`
	PendingUpdates []PendingUpdate `json:"pendingUpdates,omitempty"`
}

type Summary struct {
	TotalRepositories   int `json:"totalRepositories"`
	WithDashboard       int `json:"withDashboard"`
	RateLimited         int `json:"rateLimited"`
	TotalPendingUpdates int `json:"totalPendingUpdates"`
}

type Report struct {
	Organization string       `json:"organization"`
	Timestamp    string       `json:"timestamp"`
	Summary      Summary      `json:"summary"`
	Repositories []RepoStatus `json:"repositories"`
	Errors       []string     `json:"errors"`
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	repos, err := c.listRepositories(ctx)
	if err != nil {
		return fmt.Errorf("list repositories of %s: %w", c.param.Org, err)
	}

	rep := &Report{
		Organization: c.param.Org,
		Timestamp:    time.Now().Format(time.RFC3339),
		Repositories: []RepoStatus{},
		Errors:       []string{},
	}
	rep.Summary.TotalRepositories = len(repos)
	for _, repo := range repos {
		if repo.GetArchived() {
			continue
		}
		logE := logE.WithField("repo", repo.GetFullName())
		status, err := c.repoStatus(ctx, repo)
		if err != nil {
			// One inaccessible repository must not stop the walk.
			logerr.WithError(logE, err).Warn("check the dashboard")
			rep.Errors = append(rep.Errors, repo.GetFullName())
			continue
		}
		if status.HasDashboard {
			rep.Summary.WithDashboard++
			if status.RateLimited {
				rep.Summary.RateLimited++
			}
			rep.Summary.TotalPendingUpdates += len(status.PendingUpdates)
		}
		rep.Repositories = append(rep.Repositories, *status)
	}

	p, err := c.writer.WriteJSON(c.writer.FileName("renovate-status", "json"), rep)
	if err != nil {
		return fmt.Errorf("write the status report: %w", err)
	}

	fmt.Fprintf(c.stdout, "%s %d/%d repositories have a dashboard, %d pending updates",
		color.GreenString("checked"),
		rep.Summary.WithDashboard, rep.Summary.TotalRepositories, rep.Summary.TotalPendingUpdates)
	if rep.Summary.RateLimited > 0 {
		fmt.Fprintf(c.stdout, " (%s)", color.YellowString("%d rate-limited", rep.Summary.RateLimited))
	}
	fmt.Fprintln(c.stdout)
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

// repoStatus finds the open dashboard issue of one repository and parses it.
func (c *Controller) repoStatus(ctx context.Context, repo *github.Repository) (*RepoStatus, error) {
	status := &RepoStatus{
		Repo: repo.GetFullName(),
	}
	issue, err := c.findDashboard(ctx, repo.GetOwner().GetLogin(), repo.GetName())
	if err != nil {
		return nil, err
	}
	if issue == nil {
		return status, nil
	}
	status.HasDashboard = true
	status.DashboardURL = issue.GetHTMLURL()
	status.PendingUpdates, status.RateLimited = parseDashboard(issue.GetBody())
	return status, nil
}

func (c *Controller) findDashboard(ctx context.Context, owner, repo string) (*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State: "open",
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}
	for {
		issues, _, err := c.issues.ListByRepo(ctx, owner, repo, opts)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		for _, issue := range issues {
			if issue.GetTitle() == c.param.DashboardTitle {
				return issue, nil
			}
		}
		if len(issues) < perPage {
			return nil, nil
		}
		opts.ListOptions.Page++
	}
}
