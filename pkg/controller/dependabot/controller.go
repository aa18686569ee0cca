// Package dependabot collects Dependabot alerts across an organization and
// writes a JSON report with per-severity and per-ecosystem summaries.
package dependabot

import (
	"context"
	"io"

	"github.com/orgkit/orgkit/pkg/github"
	"github.com/orgkit/orgkit/pkg/report"
)

type DependabotService interface {
	ListOrgAlerts(ctx context.Context, org string, opts *github.ListAlertsOptions) ([]*github.DependabotAlert, *github.Response, error)
}

type Controller struct {
	dependabot DependabotService
	writer     *report.Writer
	stdout     io.Writer
	param      *Param
}

type Param struct {
	Org string
	// State filters alerts (open, fixed, dismissed). Defaults to open.
	State string
}

func New(dependabot DependabotService, writer *report.Writer, stdout io.Writer, param *Param) *Controller {
	if param.State == "" {
		param.State = "open"
	}
	return &Controller{
		dependabot: dependabot,
		writer:     writer,
		stdout:     stdout,
		param:      param,
	}
}
