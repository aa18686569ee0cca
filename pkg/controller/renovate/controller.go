// Package renovate checks the status of Renovate dependency dashboards
// across an organization. For every repository it locates the open dashboard
// issue, extracts the pending updates from the issue body, and writes a JSON
// report.
package renovate

import (
	"context"
	"io"

	"github.com/orgkit/orgkit/pkg/github"
	"github.com/orgkit/orgkit/pkg/report"
)

// defaultDashboardTitle is the issue title Renovate uses unless overridden
// in the repository's Renovate configuration.
const defaultDashboardTitle = "Dependency Dashboard"

type RepositoriesService interface {
	ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error)
}

type IssuesService interface {
	ListByRepo(ctx context.Context, owner, repo string, opts *github.IssueListByRepoOptions) ([]*github.Issue, *github.Response, error)
}

type Controller struct {
	repos  RepositoriesService
	issues IssuesService
	writer *report.Writer
	stdout io.Writer
	param  *Param
}

type Param struct {
	Org string
	// DashboardTitle overrides the issue title to look for.
	DashboardTitle string
}

func New(repos RepositoriesService, issues IssuesService, writer *report.Writer, stdout io.Writer, param *Param) *Controller {
	if param.DashboardTitle == "" {
		param.DashboardTitle = defaultDashboardTitle
	}
	return &Controller{
		repos:  repos,
		issues: issues,
		writer: writer,
		stdout: stdout,
		param:  param,
	}
}
