package labels

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/sirupsen/logrus"
	"github.com/suzuki-shunsuke/logrus-error/logerr"
)

type Result struct {
	Repo  string `json:"repo"`
	Label string `json:"label"`
	// Outcome is "created", "updated", or "failed".
	Outcome string `json:"outcome"`
	Error   string `json:"error,omitempty"`
}

type Report struct {
	Organization string   `json:"organization"`
	Timestamp    string   `json:"timestamp"`
	Results      []Result `json:"results"`
	Created      int      `json:"created"`
	Updated      int      `json:"updated"`
	Failed       int      `json:"failed"`
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	spec, err := c.readSpec()
	if err != nil {
		return err
	}

	rep := &Report{
		Organization: c.param.Org,
		Timestamp:    time.Now().Format(time.RFC3339),
		Results:      []Result{},
	}
	for _, repo := range spec.Repos {
		for _, label := range spec.Labels {
			result := c.applyLabel(ctx, logE, repo, label)
			switch result.Outcome {
			case outcomeCreated:
				rep.Created++
			case outcomeUpdated:
				rep.Updated++
			default:
				rep.Failed++
			}
			rep.Results = append(rep.Results, result)
		}
	}

	p, err := c.writer.WriteJSON(c.writer.FileName("labels", "json"), rep)
	if err != nil {
		return fmt.Errorf("write the label report: %w", err)
	}

	fmt.Fprintf(c.stdout, "%s %d, %s %d, %s %d\n",
		color.GreenString("created"), rep.Created,
		color.YellowString("updated"), rep.Updated,
		color.RedString("failed"), rep.Failed)
	fmt.Fprintf(c.stdout, "report: %s\n", p)
	return nil
}

const (
	outcomeCreated = "created"
	outcomeUpdated = "updated"
	outcomeFailed  = "failed"
)

// applyLabel creates the label, falling back to an in-place update when the
// API answers 422 because the label already exists.
func (c *Controller) applyLabel(ctx context.Context, logE *logrus.Entry, repo string, spec *LabelSpec) Result {
	logE = logE.WithFields(logrus.Fields{
		"repo":  repo,
		"label": spec.Name,
	})
	label := &github.Label{
		Name: github.Ptr(spec.Name),
	}
	if spec.Color != "" {
		label.Color = github.Ptr(spec.Color)
	}
	if spec.Description != "" {
		label.Description = github.Ptr(spec.Description)
	}

	_, _, err := c.labels.CreateLabel(ctx, c.param.Org, repo, label)
	if err == nil {
		logE.Info("created a label")
		return Result{Repo: repo, Label: spec.Name, Outcome: outcomeCreated}
	}
	if !github.IsAlreadyExists(err) {
		logerr.WithError(logE, err).Error("create a label")
		return Result{Repo: repo, Label: spec.Name, Outcome: outcomeFailed, Error: err.Error()}
	}

	if _, _, err := c.labels.EditLabel(ctx, c.param.Org, repo, spec.Name, label); err != nil {
		logerr.WithError(logE, err).Error("update a label")
		return Result{Repo: repo, Label: spec.Name, Outcome: outcomeFailed, Error: err.Error()}
	}
	logE.Info("updated a label")
	return Result{Repo: repo, Label: spec.Name, Outcome: outcomeUpdated}
}
