// Package repos implements the repository inventory command. It lists every
// repository of an organization and writes a CSV report.
package repos

import (
	"context"
	"io"

	"github.com/orgkit/orgkit/pkg/github"
	"github.com/orgkit/orgkit/pkg/report"
)

type RepositoriesService interface {
	ListByOrg(ctx context.Context, org string, opts *github.RepositoryListByOrgOptions) ([]*github.Repository, *github.Response, error)
}

type Controller struct {
	repos  RepositoriesService
	writer *report.Writer
	stdout io.Writer
	param  *Param
}

type Param struct {
	Org string
	// SkipArchived drops archived repositories from the report.
	SkipArchived bool
}

func New(repos RepositoriesService, writer *report.Writer, stdout io.Writer, param *Param) *Controller {
	return &Controller{
		repos:  repos,
		writer: writer,
		stdout: stdout,
		param:  param,
	}
}
