package search

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/sirupsen/logrus"
)

const perPage = 100

type Item struct {
	Repo string `json:"repo"`
	Path string `json:"path"`
	URL  string `json:"url"`
}

type Report struct {
	Organization string `json:"organization"`
	Timestamp    string `json:"timestamp"`
	Query        string `json:"query"`
	Total        int    `json:"total"`
	Items        []Item `json:"items"`
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	query := fmt.Sprintf("%s org:%s", c.param.Query, c.param.Org)
	total, items, err := c.searchCode(ctx, logE, query)
	if err != nil {
		return fmt.Errorf("search code: %w", err)
	}

	rep := &Report{
		Organization: c.param.Org,
		Timestamp:    time.Now().Format(time.RFC3339),
		Query:        query,
		Total:        total,
		Items:        items,
	}
	p, err := c.writer.WriteJSON(c.writer.FileName("search", "json"), rep)
	if err != nil {
		return fmt.Errorf("write the search report: %w", err)
	}

	fmt.Fprintf(c.stdout, "%s %d hits (%d fetched)\n", color.GreenString("found"), total, len(items))
	fmt.Fprintf(c.stdout, "report: %s\n", p)
	return nil
}

// searchCode pages through the results. The Search API has a dedicated,
// much stricter rate limit, so a rate limit error pauses the walk until the
// reset time instead of failing the run.
func (c *Controller) searchCode(ctx context.Context, logE *logrus.Entry, query string) (int, []Item, error) {
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{
			Page:    1,
			PerPage: perPage,
		},
	}
	total := 0
	items := []Item{}
	for opts.Page <= c.param.MaxPages {
		result, _, err := c.search.Code(ctx, query, opts)
		if err != nil {
			rlerr, ok := github.AsRateLimit(err)
			if !ok {
				return 0, nil, err //nolint:wrapcheck
			}
			wait := time.Until(rlerr.Rate.Reset.Time) + time.Second
			logE.WithField("wait", wait.String()).Warn("search rate limit reached, waiting for the reset")
			if err := c.sleep(ctx, wait); err != nil {
				return 0, nil, err
			}
			continue
		}
		total = result.GetTotal()
		for _, hit := range result.CodeResults {
			items = append(items, Item{
				Repo: hit.GetRepository().GetFullName(),
				Path: hit.GetPath(),
				URL:  hit.GetHTMLURL(),
			})
		}
		if len(result.CodeResults) < perPage {
			break
		}
		opts.Page++
	}
	return total, items, nil
}
