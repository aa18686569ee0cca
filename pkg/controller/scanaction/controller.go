// Package scanaction implements the organization-wide GitHub Actions usage
// scan. It walks every repository of an organization, inspects the workflow
// files under .github/workflows, and reports where a target action is used,
// either directly or through nested composite actions.
package scanaction

import (
	"context"
	"time"

	"github.com/orgkit/orgkit/pkg/github"
)

// RepositoriesService is the subset of the GitHub Repositories API the scan
// depends on.
type RepositoriesService interface {
	ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

type Controller struct {
	repos   RepositoriesService
	param   *Param
	matcher *Matcher
	now     func() time.Time
}

type Param struct {
	// Org is the organization login.
	Org string
	// Target identifies the action to search for, in owner/repo[/subpath]
	// form without a version suffix.
	Target string
	// Concurrency is the number of repositories scanned in parallel.
	// Zero or one means sequential.
	Concurrency int
	// Progress enables a terminal progress bar.
	Progress bool
}

func New(repos RepositoriesService, param *Param) *Controller {
	return &Controller{
		repos:   repos,
		param:   param,
		matcher: NewMatcher(repos, param.Target),
		now:     time.Now,
	}
}
