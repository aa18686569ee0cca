package dependabot

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/orgkit/orgkit/pkg/github"
	"github.com/sirupsen/logrus"
)

const perPage = 100

type Alert struct {
	Repo      string `json:"repo"`
	Number    int    `json:"number"`
	Package   string `json:"package"`
	Ecosystem string `json:"ecosystem"`
	Severity  string `json:"severity"`
	GHSAID    string `json:"ghsaId,omitempty"`
	CVEID     string `json:"cveId,omitempty"`
	Summary   string `json:"summary"`
	URL       string `json:"url"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type Report struct {
	Organization string         `json:"organization"`
	Timestamp    string         `json:"timestamp"`
	State        string         `json:"state"`
	Total        int            `json:"total"`
	BySeverity   map[string]int `json:"bySeverity"`
	ByEcosystem  map[string]int `json:"byEcosystem"`
	Alerts       []Alert        `json:"alerts"`
}

func (c *Controller) Run(ctx context.Context, logE *logrus.Entry) error {
	alerts, err := c.listAlerts(ctx)
	if err != nil {
		return fmt.Errorf("list Dependabot alerts of %s: %w", c.param.Org, err)
	}

	rep := &Report{
		Organization: c.param.Org,
		Timestamp:    time.Now().Format(time.RFC3339),
		State:        c.param.State,
		Total:        len(alerts),
		BySeverity:   map[string]int{},
		ByEcosystem:  map[string]int{},
		Alerts:       make([]Alert, 0, len(alerts)),
	}
	for _, alert := range alerts {
		a := convert(alert)
		rep.BySeverity[a.Severity]++
		rep.ByEcosystem[a.Ecosystem]++
		rep.Alerts = append(rep.Alerts, a)
	}
	sort.Slice(rep.Alerts, func(i, j int) bool {
		if rep.Alerts[i].Repo != rep.Alerts[j].Repo {
			return rep.Alerts[i].Repo < rep.Alerts[j].Repo
		}
		return rep.Alerts[i].Number < rep.Alerts[j].Number
	})

	p, err := c.writer.WriteJSON(c.writer.FileName("dependabot-alerts", "json"), rep)
	if err != nil {
		return fmt.Errorf("write the alert report: %w", err)
	}
	logE.WithField("report", p).Debug("wrote the alert report")

	fmt.Fprintf(c.stdout, "%s %d %s alerts", color.GreenString("collected"), rep.Total, rep.State)
	if n := rep.BySeverity["critical"]; n > 0 {
		fmt.Fprintf(c.stdout, " (%s)", color.RedString("%d critical", n))
	}
	fmt.Fprintln(c.stdout)
	fmt.Fprintf(c.stdout, "report: %s\n", p)
	return nil
}

// listAlerts pages through the organization alerts with cursor pagination.
func (c *Controller) listAlerts(ctx context.Context) ([]*github.DependabotAlert, error) {
	opts := &github.ListAlertsOptions{
		State: github.Ptr(c.param.State),
	}
	opts.ListCursorOptions.PerPage = perPage
	var all []*github.DependabotAlert
	for {
		alerts, resp, err := c.dependabot.ListOrgAlerts(ctx, c.param.Org, opts)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		all = append(all, alerts...)
		if resp == nil || resp.After == "" {
			return all, nil
		}
		opts.ListCursorOptions.After = resp.After
	}
}

func convert(alert *github.DependabotAlert) Alert {
	a := Alert{
		Number:   alert.GetNumber(),
		URL:      alert.GetHTMLURL(),
		Repo:     alert.GetRepository().GetFullName(),
		Severity: alert.GetSecurityAdvisory().GetSeverity(),
		GHSAID:   alert.GetSecurityAdvisory().GetGHSAID(),
		CVEID:    alert.GetSecurityAdvisory().GetCVEID(),
		Summary:  alert.GetSecurityAdvisory().GetSummary(),
	}
	if pkg := alert.GetDependency().GetPackage(); pkg != nil {
		a.Package = pkg.GetName()
		a.Ecosystem = pkg.GetEcosystem()
	}
	if !alert.GetCreatedAt().IsZero() {
		a.CreatedAt = alert.GetCreatedAt().Format(time.RFC3339)
	}
	return a
}
