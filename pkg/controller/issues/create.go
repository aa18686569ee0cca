package issues

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

// ErrAllFailed is returned when not a single issue could be created.
var ErrAllFailed = errors.New("all issue creations failed")

type CreatedIssue struct {
	Repo   string `json:"repo"`
	Number int    `json:"number"`
	URL    string `json:"url"`
	Title  string `json:"title"`
}

type Failure struct {
	Repo  string `json:"repo"`
	Title string `json:"title"`
	Error string `json:"error"`
}

type Report struct {
	Organization string         `json:"organization"`
	Timestamp    string         `json:"timestamp"`
	Created      []CreatedIssue `json:"created"`
	Failures     []Failure      `json:"failures"`
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	spec, err := c.readSpec()
	if err != nil {
		return err
	}

	rep := &Report{
		Organization: c.param.Org,
		Timestamp:    time.Now().Format(time.RFC3339),
		Created:      []CreatedIssue{},
		Failures:     []Failure{},
	}
	for _, issue := range spec.Issues {
		for _, repoName := range issue.Repos {
			owner, repo := splitRepo(c.param.Org, repoName)
			logE := logE.WithFields(logrus.Fields{
				"repo":  owner + "/" + repo,
				"title": issue.Title,
			})
			created, err := c.createIssue(ctx, owner, repo, issue)
			if err != nil {
				// One failed repository must not stop the batch.
				logerr.WithError(logE, err).Error("create an issue")
				rep.Failures = append(rep.Failures, Failure{
					Repo:  owner + "/" + repo,
					Title: issue.Title,
					Error: err.Error(),
				})
				continue
			}
			logE.WithField("url", created.URL).Info("created an issue")
			rep.Created = append(rep.Created, *created)
		}
	}

	p, err := c.writer.WriteJSON(c.writer.FileName("created-issues", "json"), rep)
	if err != nil {
		return fmt.Errorf("write the issue report: %w", err)
	}

	fmt.Fprintf(c.stdout, "%s %d issues, %s %d\n",
		color.GreenString("created"), len(rep.Created),
		color.RedString("failed"), len(rep.Failures))
	fmt.Fprintf(c.stdout, "report: %s\n", p)
	if len(rep.Created) == 0 && len(rep.Failures) > 0 {
		return ErrAllFailed
	}
	return nil
}

func (c *Controller) createIssue(ctx context.Context, owner, repo string, spec *IssueSpec) (*CreatedIssue, error) {
	req := &github.IssueRequest{
		Title: github.Ptr(spec.Title),
	}
	if spec.Body != "" {
		req.Body = github.Ptr(spec.Body)
	}
	if len(spec.Labels) != 0 {
		req.Labels = &spec.Labels
	}
	issue, _, err := c.issues.Create(ctx, owner, repo, req)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &CreatedIssue{
		Repo:   owner + "/" + repo,
		Number: issue.GetNumber(),
		URL:    issue.GetHTMLURL(),
		Title:  spec.Title,
	}, nil
}
