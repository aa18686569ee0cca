// Package search implements organization-wide code search through the
// GitHub Search API and writes a JSON report of the hits.
package search

import (
	"context"
	"io"
	"time"

	"github.com/orgkit/orgkit/pkg/github"
	"github.com/orgkit/orgkit/pkg/report"
)

type SearchService interface {
	Code(ctx context.Context, query string, opts *github.SearchOptions) (*github.CodeSearchResult, *github.Response, error)
}

type Controller struct {
	search SearchService
	writer *report.Writer
	stdout io.Writer
	param  *Param
	sleep  func(ctx context.Context, d time.Duration) error
}

type Param struct {
	Org string
	// Query is the search expression. The org qualifier is appended
	// automatically.
	Query string
	// MaxPages bounds the number of result pages fetched. The Search API
	// only serves the first 1000 results anyway.
	MaxPages int
}

const defaultMaxPages = 10

func New(search SearchService, writer *report.Writer, stdout io.Writer, param *Param) *Controller {
	if param.MaxPages <= 0 {
		param.MaxPages = defaultMaxPages
	}
	return &Controller{
		search: search,
		writer: writer,
		stdout: stdout,
		param:  param,
		sleep:  sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-timer.C:
		return nil
	}
}
